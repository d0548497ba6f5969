// Package strategyio is the JSON wire layer for the cmd binaries: decoding
// a strategy definition (spec.md §4.2's "Strategy JSON") and bar/stats
// input, and encoding/decoding the result document. Most domain types carry
// their own json tags and round-trip through encoding/json directly; this
// package exists for the two shapes that can't: ConditionNode is an
// interface with no natural struct target for encoding/json, and
// DailyStats's presence-vs-zero pointer semantics need explicit probing.
package strategyio

import (
	"encoding/json"
	"fmt"

	"daybt/internal/domain"
)

// wireDefinition mirrors the JSON shape of a full strategy document.
type wireDefinition struct {
	Bias           string    `json:"bias"`
	EntryLogic     wireBlock `json:"entry_logic"`
	ExitLogic      wireBlock `json:"exit_logic"`
	RiskManagement wireRisk  `json:"risk_management"`
}

type wireBlock struct {
	Timeframe string          `json:"timeframe"`
	Root      json.RawMessage `json:"root_condition"`
}

type wireNode struct {
	Type       string          `json:"type"`
	Operator   string          `json:"operator"`
	Conditions json.RawMessage `json:"conditions"`

	Source     json.RawMessage `json:"source"`
	Target     json.RawMessage `json:"target"`
	Comparator string          `json:"comparator"`

	Level    string  `json:"level"`
	ValuePct float64 `json:"value_pct"`

	Pattern          string `json:"pattern"`
	Lookback         int    `json:"lookback"`
	ConsecutiveCount int    `json:"consecutive_count"`
}

type wireIndicatorRef struct {
	Name   string `json:"name"`
	Period int    `json:"period"`
	Offset int    `json:"offset"`
}

type wireRisk struct {
	UseHardStop  bool           `json:"use_hard_stop"`
	HardStop     wireHardStop   `json:"hard_stop"`
	TrailingStop wireTrailing   `json:"trailing_stop"`
	UseTP        bool           `json:"use_take_profit"`
	TakeProfit   wireTakeProfit `json:"take_profit"`
	Reentries    bool           `json:"accept_reentries"`
}

type wireHardStop struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type wireTrailing struct {
	Active    bool    `json:"active"`
	Type      string  `json:"type"`
	BufferPct float64 `json:"buffer_pct"`
}

type wireTakeProfit struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// Decode parses a strategy JSON document into a domain.StrategyDefinition.
func Decode(data []byte) (domain.StrategyDefinition, error) {
	var w wireDefinition
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.StrategyDefinition{}, fmt.Errorf("decoding strategy: %w", err)
	}

	entry, err := decodeBlock(w.EntryLogic)
	if err != nil {
		return domain.StrategyDefinition{}, fmt.Errorf("entry_logic: %w", err)
	}
	exit, err := decodeBlock(w.ExitLogic)
	if err != nil {
		return domain.StrategyDefinition{}, fmt.Errorf("exit_logic: %w", err)
	}

	return domain.StrategyDefinition{
		Bias:           domain.Bias(w.Bias),
		EntryLogic:     entry,
		ExitLogic:      exit,
		RiskManagement: decodeRisk(w.RiskManagement),
	}, nil
}

func decodeBlock(b wireBlock) (domain.ConditionBlock, error) {
	block := domain.ConditionBlock{Timeframe: domain.Timeframe(b.Timeframe)}
	if len(b.Root) == 0 {
		return block, nil
	}
	node, err := decodeNode(b.Root)
	if err != nil {
		return block, err
	}
	block.RootCondition = node
	return block, nil
}

// decodeNode discriminates a ConditionGroup from a leaf Condition the same
// way the original engine does: a group has both "operator" and
// "conditions"; anything else is a leaf keyed by "type".
func decodeNode(raw json.RawMessage) (domain.ConditionNode, error) {
	var probe struct {
		Operator   *string          `json:"operator"`
		Conditions *json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	if probe.Operator != nil && probe.Conditions != nil {
		return decodeGroup(raw)
	}
	return decodeCondition(raw)
}

func decodeGroup(raw json.RawMessage) (*domain.ConditionGroup, error) {
	var w wireNode
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	var rawChildren []json.RawMessage
	if len(w.Conditions) > 0 {
		if err := json.Unmarshal(w.Conditions, &rawChildren); err != nil {
			return nil, err
		}
	}

	operator := w.Operator
	if operator == "" {
		operator = "AND"
	}

	group := &domain.ConditionGroup{Operator: operator}
	for _, childRaw := range rawChildren {
		child, err := decodeNode(childRaw)
		if err != nil {
			return nil, err
		}
		group.Conditions = append(group.Conditions, child)
	}
	return group, nil
}

func decodeCondition(raw json.RawMessage) (*domain.Condition, error) {
	var w wireNode
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	switch domain.ConditionKind(w.Type) {
	case domain.ConditionIndicatorComparison:
		source, err := decodeIndicatorRef(w.Source, "Close")
		if err != nil {
			return nil, err
		}
		target, err := decodeComparisonTarget(w.Target)
		if err != nil {
			return nil, err
		}
		comparator := w.Comparator
		if comparator == "" {
			comparator = string(domain.GreaterThan)
		}
		return &domain.Condition{
			Kind:       domain.ConditionIndicatorComparison,
			Source:     source,
			Target:     target,
			Comparator: domain.Comparator(comparator),
		}, nil

	case domain.ConditionPriceLevelDistance:
		var sourceName string
		if len(w.Source) > 0 {
			_ = json.Unmarshal(w.Source, &sourceName)
		}
		if sourceName == "" {
			sourceName = "Close"
		}
		level := w.Level
		if level == "" {
			level = "Pre-Market High"
		}
		comparator := w.Comparator
		if comparator == "" {
			comparator = string(domain.DistanceLessThan)
		}
		valuePct := w.ValuePct
		if valuePct == 0 {
			valuePct = 1.0
		}
		return &domain.Condition{
			Kind:               domain.ConditionPriceLevelDistance,
			DistanceSource:     sourceName,
			DistanceLevel:      level,
			DistanceComparator: domain.Comparator(comparator),
			ValuePct:           valuePct,
		}, nil

	case domain.ConditionCandlePattern:
		pattern := w.Pattern
		if pattern == "" {
			pattern = string(domain.PatternGreenVolume)
		}
		consecutive := w.ConsecutiveCount
		if consecutive == 0 {
			consecutive = 1
		}
		return &domain.Condition{
			Kind:             domain.ConditionCandlePattern,
			Pattern:          domain.CandlePattern(pattern),
			Lookback:         w.Lookback,
			ConsecutiveCount: consecutive,
		}, nil

	default:
		return nil, fmt.Errorf("unknown condition type %q", w.Type)
	}
}

func decodeIndicatorRef(raw json.RawMessage, defaultName string) (domain.IndicatorRef, error) {
	if len(raw) == 0 {
		return domain.IndicatorRef{Name: defaultName}, nil
	}
	var w wireIndicatorRef
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.IndicatorRef{}, err
	}
	if w.Name == "" {
		w.Name = defaultName
	}
	return domain.IndicatorRef{Name: w.Name, Period: w.Period, Offset: w.Offset}, nil
}

// decodeComparisonTarget accepts either a bare JSON number (a literal) or
// an object (another indicator reference), matching the Python engine's
// `isinstance(target_cfg, (int, float))` branch.
func decodeComparisonTarget(raw json.RawMessage) (domain.ComparisonTarget, error) {
	if len(raw) == 0 {
		return domain.ComparisonTarget{}, nil
	}

	var literal float64
	if err := json.Unmarshal(raw, &literal); err == nil {
		return domain.ComparisonTarget{Literal: &literal}, nil
	}

	ref, err := decodeIndicatorRef(raw, "Close")
	if err != nil {
		return domain.ComparisonTarget{}, err
	}
	return domain.ComparisonTarget{Ref: &ref}, nil
}

func decodeRisk(w wireRisk) domain.RiskConfig {
	hsType := w.HardStop.Type
	if hsType == "" {
		hsType = string(domain.HardStopPercentage)
	}
	tpType := w.TakeProfit.Type
	if tpType == "" {
		tpType = "Percentage"
	}
	trailType := w.TrailingStop.Type
	if trailType == "" {
		trailType = "Percentage"
	}

	return domain.RiskConfig{
		UseHardStop: w.UseHardStop,
		HardStop: domain.HardStopConfig{
			Type:  domain.HardStopType(hsType),
			Value: w.HardStop.Value,
		},
		TrailingStop: domain.TrailingStopConfig{
			Active:    w.TrailingStop.Active,
			Type:      trailType,
			BufferPct: w.TrailingStop.BufferPct,
		},
		UseTakeProfit: w.UseTP,
		TakeProfit: domain.TakeProfitConfig{
			Type:  tpType,
			Value: w.TakeProfit.Value,
		},
		AcceptReentries: w.Reentries,
	}
}
