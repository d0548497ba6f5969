package stats

import (
	"math"

	"daybt/internal/domain"
)

// Aggregate rolls up per-day DayStats and the flat trade list into the
// cross-day summary (spec.md §4.5). Per-day total_return_pct values compound
// geometrically into TotalReturnPct; win rate and TotalPnL (a sum) come from
// the flat trade list; Sharpe, drawdown and per-day return are arithmetic
// means over days; profit factor is averaged only over days where it is
// above 0.
func Aggregate(days []domain.DayStats, trades []domain.Trade) domain.AggregateMetrics {
	if len(days) == 0 {
		return domain.AggregateMetrics{}
	}

	totalTrades := 0
	for _, d := range days {
		totalTrades += d.TotalTrades
	}

	winningTrades := 0
	for _, t := range trades {
		if t.PnL > 0 {
			winningTrades++
		}
	}
	winRate := 0.0
	if len(trades) > 0 {
		winRate = float64(winningTrades) / float64(len(trades)) * 100
	}

	avgReturn := 0.0
	compound := 1.0
	for _, d := range days {
		r := derefOr(d.TotalReturnPct, 0)
		avgReturn += r
		compound *= 1 + r/100
	}
	avgReturn /= float64(len(days))
	totalReturn := compound*100 - 100

	avgSharpe := 0.0
	for _, d := range days {
		avgSharpe += derefOr(d.SharpeRatio, 0)
	}
	avgSharpe /= float64(len(days))

	avgDD := 0.0
	for _, d := range days {
		avgDD += derefOr(d.MaxDrawdownPct, 0)
	}
	avgDD /= float64(len(days))

	pfSum, pfCount := 0.0, 0
	for _, d := range days {
		if d.ProfitFactor != nil && *d.ProfitFactor > 0 {
			pfSum += *d.ProfitFactor
			pfCount++
		}
	}
	avgPF := 0.0
	if pfCount > 0 {
		avgPF = pfSum / float64(pfCount)
	}

	totalPnL := 0.0
	for _, t := range trades {
		totalPnL += t.PnL
	}
	avgPnL := 0.0
	if len(trades) > 0 {
		avgPnL = totalPnL / float64(len(trades))
	}

	return domain.AggregateMetrics{
		TotalDays:          len(days),
		TotalTrades:        totalTrades,
		WinRatePct:         round2(winRate),
		AvgReturnPerDayPct: round4(avgReturn),
		TotalReturnPct:     round4(totalReturn),
		AvgSharpe:          round4(avgSharpe),
		AvgMaxDDPct:        round4(avgDD),
		AvgProfitFactor:    round4(avgPF),
		AvgPnL:             round2(avgPnL),
		TotalPnL:           round2(totalPnL),
	}
}

func derefOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
