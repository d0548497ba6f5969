package indicator

import (
	"math"

	"daybt/internal/domain"
)

const dojiEpsilon = 1e-10

// DetectPattern returns the boolean series for one candle pattern detector
// (spec.md §4.1), after applying lookback (forward shift) and
// consecutive_count (run-length requirement).
func DetectPattern(bars []domain.Bar, pattern domain.CandlePattern, lookback, consecutiveCount int) BoolSeries {
	signal := detectRaw(bars, pattern)
	if lookback > 0 {
		signal = shiftBoolForward(signal, lookback)
	}
	if consecutiveCount > 1 {
		signal = requireConsecutive(signal, consecutiveCount)
	}
	return signal
}

func detectRaw(bars []domain.Bar, pattern domain.CandlePattern) BoolSeries {
	n := len(bars)
	out := make(BoolSeries, n)

	for i, b := range bars {
		body := math.Abs(b.Close - b.Open)
		fullRange := b.High - b.Low + dojiEpsilon

		switch pattern {
		case domain.PatternGreenVolume:
			out[i] = b.Close > b.Open
		case domain.PatternGreenVolumePlus:
			out[i] = b.Close > b.Open && i > 0 && b.Volume > bars[i-1].Volume
		case domain.PatternRedVolume:
			out[i] = b.Close < b.Open
		case domain.PatternRedVolumePlus:
			out[i] = b.Close < b.Open && i > 0 && b.Volume > bars[i-1].Volume
		case domain.PatternDoji:
			out[i] = body/fullRange < 0.1
		case domain.PatternHammer:
			lowerWick := math.Min(b.Open, b.Close) - b.Low
			out[i] = lowerWick >= 2*body && body/fullRange < 0.4
		case domain.PatternShootingStar:
			upperWick := b.High - math.Max(b.Open, b.Close)
			out[i] = upperWick >= 2*body && body/fullRange < 0.4
		default:
			out[i] = false
		}
	}
	return out
}

// shiftBoolForward shifts a boolean series forward (lags it) by n bars,
// filling the front with false.
func shiftBoolForward(src BoolSeries, n int) BoolSeries {
	out := make(BoolSeries, len(src))
	for i := n; i < len(src); i++ {
		out[i] = src[i-n]
	}
	return out
}

// requireConsecutive returns true at bar i only when signal held true for
// k consecutive bars ending at i.
func requireConsecutive(src BoolSeries, k int) BoolSeries {
	out := make(BoolSeries, len(src))
	run := 0
	for i, v := range src {
		if v {
			run++
		} else {
			run = 0
		}
		out[i] = run >= k
	}
	return out
}
