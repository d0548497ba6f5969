package strategy

import (
	"math"

	"daybt/internal/domain"
	"daybt/internal/indicator"
)

// convertRiskManagement translates a StrategyDefinition's risk config into
// the simulator's scalar sl_stop/sl_trail/tp_stop parameters (spec.md §4.2).
// All stop/target values are returned as fractions of entry price (e.g.
// 0.02 for 2%), never as absolute prices.
func convertRiskManagement(risk domain.RiskConfig, bars []domain.Bar, stats domain.DailyStats, cache indicator.Cache) (slStop *float64, slTrail bool, tpStop *float64) {
	if risk.UseHardStop {
		switch risk.HardStop.Type {
		case domain.HardStopPercentage:
			v := risk.HardStop.Value / 100.0
			slStop = &v
		case domain.HardStopFixedAmount:
			firstClose := firstCloseOrOne(bars)
			if firstClose > 0 {
				v := risk.HardStop.Value / firstClose
				slStop = &v
			}
		case domain.HardStopATRMultiplier:
			atr := indicator.Compute("ATR", bars, stats, 14, 0, cache)
			avgATR := meanIgnoringNaN(atr)
			firstClose := firstCloseOrOne(bars)
			if firstClose > 0 {
				v := (avgATR * risk.HardStop.Value) / firstClose
				slStop = &v
			}
		case domain.HardStopMarketStructure:
			slStop = nil
		}
	}

	if risk.TrailingStop.Active {
		slTrail = true
		if risk.TrailingStop.Type == "Percentage" && risk.TrailingStop.BufferPct != 0 {
			v := risk.TrailingStop.BufferPct / 100.0
			slStop = &v
		}
	}

	if risk.UseTakeProfit && risk.TakeProfit.Type == "Percentage" {
		v := risk.TakeProfit.Value / 100.0
		tpStop = &v
	}

	return slStop, slTrail, tpStop
}

func firstCloseOrOne(bars []domain.Bar) float64 {
	if len(bars) == 0 {
		return 1
	}
	return bars[0].Close
}

func meanIgnoringNaN(s indicator.Series) float64 {
	sum := 0.0
	count := 0
	for _, v := range s {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
