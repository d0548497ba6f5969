// Package stats extracts per-day statistics from a simulator run, rolls
// them up across days, and chains per-day equity curves into one global
// curve with drawdown (spec.md §4.4-§4.6).
package stats

import (
	"math"

	"daybt/internal/domain"
)

var annFactor = math.Sqrt(252 * 390)

// ExtractDay computes one day's DayStats from its equity series and closed
// trades. Every ratio-like field passes through the "safe-float filter":
// NaN/Inf collapse to nil rather than propagating into the result document.
func ExtractDay(ticker, date string, equity []float64, trades []domain.Trade) domain.DayStats {
	if len(equity) == 0 {
		return domain.DayStats{Ticker: ticker, Date: date}
	}

	startVal := equity[0]
	endVal := equity[len(equity)-1]
	totalRet := 0.0
	if startVal > 0 {
		totalRet = (endVal/startVal - 1) * 100
	}

	maxDD := maxDrawdownPct(equity)

	nTrades := len(trades)
	var pnls, rets []float64
	for _, tr := range trades {
		pnls = append(pnls, tr.PnL)
		rets = append(rets, tr.ReturnPct)
	}

	winRate := 0.0
	sumWins, sumLosses := 0.0, 0.0
	wins := 0
	for _, p := range pnls {
		if p > 0 {
			sumWins += p
			wins++
		} else {
			sumLosses += -p
		}
	}
	if nTrades > 0 {
		winRate = float64(wins) / float64(nTrades) * 100
	}
	profitFactor := 0.0
	if sumLosses > 0 {
		profitFactor = sumWins / sumLosses
	}
	expectancy := meanOf(pnls)

	bestTrade, worstTrade := 0.0, 0.0
	if len(rets) > 0 {
		bestTrade, worstTrade = rets[0], rets[0]
		for _, r := range rets[1:] {
			if r > bestTrade {
				bestTrade = r
			}
			if r < worstTrade {
				worstTrade = r
			}
		}
	}

	barReturns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1]
		denom := prev
		if denom == 0 {
			denom = 1
		}
		barReturns = append(barReturns, (equity[i]-equity[i-1])/denom)
	}

	meanR := meanOf(barReturns)
	std := stdDevOf(barReturns)
	sharpe := 0.0
	if std > 0 {
		sharpe = meanR / std * annFactor
	}

	var downReturns []float64
	for _, r := range barReturns {
		if r < 0 {
			downReturns = append(downReturns, r)
		}
	}
	downStd := stdDevOf(downReturns)
	sortino := 0.0
	if downStd > 0 {
		sortino = meanR / downStd * annFactor
	}

	return domain.DayStats{
		Ticker:         ticker,
		Date:           date,
		TotalReturnPct: safeFloat(totalRet),
		MaxDrawdownPct: safeFloat(maxDD),
		WinRatePct:     safeFloat(winRate),
		TotalTrades:    nTrades,
		ProfitFactor:   safeFloat(profitFactor),
		SharpeRatio:    safeFloat(sharpe),
		SortinoRatio:   safeFloat(sortino),
		Expectancy:     safeFloat(expectancy),
		BestTradePct:   safeFloat(bestTrade),
		WorstTradePct:  safeFloat(worstTrade),
		InitValue:      startVal,
		EndValue:       endVal,
	}
}

// maxDrawdownPct returns the most negative running drawdown percentage
// over a value series; 0 wherever the running peak is non-positive.
func maxDrawdownPct(values []float64) float64 {
	runningMax := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v > runningMax {
			runningMax = v
		}
		dd := 0.0
		if runningMax > 0 {
			dd = (v/runningMax - 1) * 100
		}
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDevOf returns the population standard deviation (ddof=0, matching
// numpy's default), or 0 for fewer than 2 samples.
func stdDevOf(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := meanOf(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

func safeFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
