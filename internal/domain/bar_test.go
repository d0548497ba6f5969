package domain

import "testing"

func TestBarZeroValue(t *testing.T) {
	var b Bar
	if b.Open != 0 || b.High != 0 || b.Low != 0 || b.Close != 0 {
		t.Error("expected zero OHLC for zero-value Bar")
	}
	if b.Volume != 0 || b.Timestamp != 0 {
		t.Error("expected zero Volume/Timestamp for zero-value Bar")
	}
}

func TestConditionNodeDiscriminates(t *testing.T) {
	var group ConditionNode = &ConditionGroup{Operator: "AND"}
	var leaf ConditionNode = &Condition{Kind: ConditionCandlePattern, Pattern: PatternDoji}

	switch group.(type) {
	case *ConditionGroup:
	default:
		t.Error("expected group to be a *ConditionGroup")
	}
	switch leaf.(type) {
	case *Condition:
	default:
		t.Error("expected leaf to be a *Condition")
	}
}

func TestDefaultBacktestConfig(t *testing.T) {
	cfg := DefaultBacktestConfig()
	if cfg.InitCash != 10000 || cfg.Fees != 0 || cfg.Slippage != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
