package strategyio

import (
	"testing"

	"daybt/internal/domain"
)

func TestDecodeSimpleIndicatorComparison(t *testing.T) {
	doc := []byte(`{
		"bias": "long",
		"entry_logic": {
			"timeframe": "1m",
			"root_condition": {
				"type": "indicator_comparison",
				"source": {"name": "RSI", "period": 14},
				"target": 70,
				"comparator": "GREATER_THAN"
			}
		},
		"exit_logic": {"timeframe": "1m"},
		"risk_management": {}
	}`)

	def, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if def.Bias != domain.BiasLong {
		t.Errorf("expected long bias, got %s", def.Bias)
	}

	cond, ok := def.EntryLogic.RootCondition.(*domain.Condition)
	if !ok {
		t.Fatalf("expected leaf Condition, got %T", def.EntryLogic.RootCondition)
	}
	if cond.Kind != domain.ConditionIndicatorComparison || cond.Source.Name != "RSI" || cond.Source.Period != 14 {
		t.Errorf("unexpected condition: %+v", cond)
	}
	if cond.Target.Literal == nil || *cond.Target.Literal != 70 {
		t.Errorf("expected literal target 70, got %+v", cond.Target)
	}
	if cond.Comparator != domain.GreaterThan {
		t.Errorf("expected GREATER_THAN, got %s", cond.Comparator)
	}
}

func TestDecodeNestedGroup(t *testing.T) {
	doc := []byte(`{
		"bias": "short",
		"entry_logic": {
			"timeframe": "1m",
			"root_condition": {
				"operator": "AND",
				"conditions": [
					{
						"type": "indicator_comparison",
						"source": {"name": "Close"},
						"target": {"name": "SMA", "period": 20},
						"comparator": "LESS_THAN"
					},
					{
						"operator": "OR",
						"conditions": [
							{"type": "candle_pattern", "pattern": "DOJI"},
							{"type": "candle_pattern", "pattern": "HAMMER", "consecutive_count": 2}
						]
					}
				]
			}
		},
		"exit_logic": {"timeframe": "1m"},
		"risk_management": {
			"use_hard_stop": true,
			"hard_stop": {"type": "Percentage", "value": 2},
			"use_take_profit": true,
			"take_profit": {"type": "Percentage", "value": 5}
		}
	}`)

	def, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	root, ok := def.EntryLogic.RootCondition.(*domain.ConditionGroup)
	if !ok {
		t.Fatalf("expected ConditionGroup root, got %T", def.EntryLogic.RootCondition)
	}
	if root.Operator != "AND" || len(root.Conditions) != 2 {
		t.Fatalf("unexpected root group: %+v", root)
	}

	nested, ok := root.Conditions[1].(*domain.ConditionGroup)
	if !ok {
		t.Fatalf("expected nested group, got %T", root.Conditions[1])
	}
	if nested.Operator != "OR" || len(nested.Conditions) != 2 {
		t.Fatalf("unexpected nested group: %+v", nested)
	}

	if !def.RiskManagement.UseHardStop || def.RiskManagement.HardStop.Value != 2 {
		t.Errorf("unexpected risk management: %+v", def.RiskManagement)
	}
	if !def.RiskManagement.UseTakeProfit || def.RiskManagement.TakeProfit.Value != 5 {
		t.Errorf("unexpected take profit: %+v", def.RiskManagement)
	}
}

func TestDecodePriceLevelDistanceDefaults(t *testing.T) {
	doc := []byte(`{
		"bias": "long",
		"entry_logic": {
			"timeframe": "1m",
			"root_condition": {"type": "price_level_distance"}
		},
		"exit_logic": {"timeframe": "1m"},
		"risk_management": {}
	}`)

	def, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cond := def.EntryLogic.RootCondition.(*domain.Condition)
	if cond.DistanceSource != "Close" || cond.DistanceLevel != "Pre-Market High" {
		t.Errorf("unexpected defaults: %+v", cond)
	}
	if cond.DistanceComparator != domain.DistanceLessThan || cond.ValuePct != 1.0 {
		t.Errorf("unexpected defaults: %+v", cond)
	}
}

func TestDecodeUnknownConditionTypeErrors(t *testing.T) {
	doc := []byte(`{
		"bias": "long",
		"entry_logic": {"timeframe": "1m", "root_condition": {"type": "bogus"}},
		"exit_logic": {"timeframe": "1m"},
		"risk_management": {}
	}`)
	if _, err := Decode(doc); err == nil {
		t.Fatal("expected error for unknown condition type")
	}
}
