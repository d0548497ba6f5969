package indicator

import (
	"math"

	"daybt/internal/domain"
)

// trueRange computes the true-range series: bar 0 is high-low; subsequent
// bars are max(h-l, |h-prevClose|, |l-prevClose|).
func trueRange(bars []domain.Bar) Series {
	n := len(bars)
	tr := make(Series, n)
	if n == 0 {
		return tr
	}
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < n; i++ {
		h, l := bars[i].High, bars[i].Low
		prevClose := bars[i-1].Close
		tr[i] = math.Max(h-l, math.Max(math.Abs(h-prevClose), math.Abs(l-prevClose)))
	}
	return tr
}

// atr smooths the true-range series with EMA(p), per spec.md §4.1.
func atr(bars []domain.Bar, p int) Series {
	return ema(trueRange(bars), p)
}
