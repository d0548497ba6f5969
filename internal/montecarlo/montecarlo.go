// Package montecarlo implements the trade-shuffle bootstrap engine
// (spec.md §4.7): permute realized trade PnLs many times and report
// percentile equity curves and risk metrics over the resulting paths.
package montecarlo

import (
	"math"
	"math/rand/v2"
	"sort"

	"daybt/internal/domain"
)

const (
	MinSimulations = 100
	MaxSimulations = 10000
)

var percentileKeys = []int{5, 25, 50, 75, 95}

// Run bootstraps simulations random permutations of pnls, each producing a
// cumulative equity curve of length len(pnls)+1 starting at initCash. It
// returns per-index percentile curves, drawdown summaries over each
// simulation's own path, a ruin probability, and final-balance percentiles.
// Each call draws a fresh, non-reproducible seed — for a reproducible run
// (e.g. a CLI demo), use RunSeeded.
//
// Returns domain.ErrEmptyPnLs if pnls is empty, or domain.ErrSimulationCount
// if simulations falls outside [MinSimulations, MaxSimulations].
func Run(pnls []float64, initCash float64, simulations int) (domain.MonteCarloResult, error) {
	return run(pnls, initCash, simulations, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// RunSeeded is Run with a caller-supplied seed, for reproducible demo runs
// (the CLI's -seed flag). The seed is split into a PCG's two required
// 64-bit halves via a fixed-increment mix so distinct seeds still produce
// well-separated streams.
func RunSeeded(pnls []float64, initCash float64, simulations int, seed uint64) (domain.MonteCarloResult, error) {
	hi := seed
	lo := seed*0x9E3779B97F4A7C15 + 1
	return run(pnls, initCash, simulations, rand.New(rand.NewPCG(hi, lo)))
}

func run(pnls []float64, initCash float64, simulations int, src *rand.Rand) (domain.MonteCarloResult, error) {
	if len(pnls) == 0 {
		return domain.MonteCarloResult{}, domain.ErrEmptyPnLs
	}
	if simulations < MinSimulations || simulations > MaxSimulations {
		return domain.MonteCarloResult{}, domain.ErrSimulationCount
	}

	nTrades := len(pnls)
	curveLen := nTrades + 1

	curves := make([][]float64, simulations)

	shuffled := make([]float64, nTrades)
	for i := 0; i < simulations; i++ {
		copy(shuffled, pnls)
		src.Shuffle(nTrades, func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		curve := make([]float64, curveLen)
		curve[0] = initCash
		running := initCash
		for j, pnl := range shuffled {
			running += pnl
			curve[j+1] = running
		}
		curves[i] = curve
	}

	percentiles := make(map[string][]domain.EquityPoint, len(percentileKeys))
	baseTS := int64(1_000_000_000)
	for _, q := range percentileKeys {
		column := make([]float64, simulations)
		points := make([]domain.EquityPoint, curveLen)
		for idx := 0; idx < curveLen; idx++ {
			for s := 0; s < simulations; s++ {
				column[s] = curves[s][idx]
			}
			points[idx] = domain.EquityPoint{
				Time:  baseTS + int64(idx)*86400,
				Value: round2(percentile(column, float64(q))),
			}
		}
		percentiles[percentileKey(q)] = points
	}

	maxDDs := make([]float64, simulations)
	finalBalances := make([]float64, simulations)
	ruinThreshold := initCash * 0.1
	ruinCount := 0

	for s, curve := range curves {
		maxDDs[s] = maxDrawdownFraction(curve) * 100
		finalBalances[s] = curve[len(curve)-1]

		ruined := false
		for _, v := range curve {
			if v < ruinThreshold {
				ruined = true
				break
			}
		}
		if ruined {
			ruinCount++
		}
	}

	sortedDDs := append([]float64(nil), maxDDs...)
	sort.Float64s(sortedDDs)

	finalBalancePercentiles := make(map[string]float64, len(percentileKeys))
	sortedFinal := append([]float64(nil), finalBalances...)
	sort.Float64s(sortedFinal)
	for _, q := range percentileKeys {
		finalBalancePercentiles[percentileKey(q)] = round2(percentileSorted(sortedFinal, float64(q)))
	}

	return domain.MonteCarloResult{
		Percentiles:             percentiles,
		RuinProbabilityPct:      round2(float64(ruinCount) / float64(simulations) * 100),
		WorstDrawdownPct:        round2(sortedDDs[0]),
		MedianDrawdownPct:       round2(percentileSorted(sortedDDs, 50)),
		FinalBalancePercentiles: finalBalancePercentiles,
	}, nil
}

func percentileKey(q int) string {
	switch q {
	case 5:
		return "p5"
	case 25:
		return "p25"
	case 50:
		return "p50"
	case 75:
		return "p75"
	case 95:
		return "p95"
	default:
		return ""
	}
}

// maxDrawdownFraction returns min((curve-running_max)/running_max) over one
// simulation's path, matching the original engine's per-sim drawdown
// definition (fraction, not percent; caller multiplies by 100).
func maxDrawdownFraction(curve []float64) float64 {
	runningMax := curve[0]
	worst := 0.0
	for _, v := range curve {
		if v > runningMax {
			runningMax = v
		}
		denom := runningMax
		if denom <= 0 {
			denom = 1
		}
		dd := (v - runningMax) / denom
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// percentile computes the q-th percentile (0-100) of values using the same
// linear-interpolation convention as numpy.percentile's default method.
func percentile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return percentileSorted(sorted, q)
}

func percentileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	rank := (q / 100) * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
