package indicator

import (
	"math"

	"daybt/internal/domain"
)

// adx is the standard Wilder Average Directional Index: directional
// movement and true range are Wilder-smoothed over p bars, DX is derived
// from the smoothed +DI/-DI, and ADX is the Wilder-smoothed average of DX.
func adx(bars []domain.Bar, p int) Series {
	n := len(bars)
	out := nanSeries(n)
	if p <= 0 || n <= 2*p {
		return out
	}

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := trueRange(bars)

	for i := 1; i < n; i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	smoothTR := wilderSum(tr, p)
	smoothPlusDM := wilderSum(plusDM, p)
	smoothMinusDM := wilderSum(minusDM, p)

	dx := nanSeries(n)
	for i := p; i < n; i++ {
		if math.IsNaN(smoothTR[i]) || smoothTR[i] == 0 {
			continue
		}
		plusDI := 100 * smoothPlusDM[i] / smoothTR[i]
		minusDI := 100 * smoothMinusDM[i] / smoothTR[i]
		sum := plusDI + minusDI
		if sum == 0 {
			dx[i] = 0
			continue
		}
		dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
	}

	// ADX: Wilder-smoothed average of DX, seeded with the simple average of
	// the first p valid DX values starting at index p.
	firstDXIdx := p
	lastSeedIdx := firstDXIdx + p - 1
	if lastSeedIdx >= n {
		return out
	}
	seed := 0.0
	for i := firstDXIdx; i <= lastSeedIdx; i++ {
		seed += dx[i]
	}
	seed /= float64(p)
	out[lastSeedIdx] = seed
	prev := seed
	for i := lastSeedIdx + 1; i < n; i++ {
		prev = (prev*float64(p-1) + dx[i]) / float64(p)
		out[i] = prev
	}
	return out
}

// wilderSum applies Wilder's smoothing technique (a sum-based EMA variant):
// the seed at index p is the sum of the first p values (indices 1..p), and
// each subsequent value is smoothed[i-1] - smoothed[i-1]/p + v[i].
func wilderSum(v Series, p int) Series {
	n := len(v)
	out := nanSeries(n)
	if p <= 0 || n <= p {
		return out
	}
	sum := 0.0
	for i := 1; i <= p; i++ {
		sum += v[i]
	}
	out[p] = sum
	for i := p + 1; i < n; i++ {
		sum = sum - sum/float64(p) + v[i]
		out[i] = sum
	}
	return out
}

// williamsR is the standard Williams %R: -100 * (highestHigh-close) /
// (highestHigh-lowestLow) over a rolling window of p bars.
func williamsR(bars []domain.Bar, p int) Series {
	n := len(bars)
	out := nanSeries(n)
	if p <= 0 || n < p {
		return out
	}
	for i := p - 1; i < n; i++ {
		hh := bars[i-p+1].High
		ll := bars[i-p+1].Low
		for j := i - p + 2; j <= i; j++ {
			if bars[j].High > hh {
				hh = bars[j].High
			}
			if bars[j].Low < ll {
				ll = bars[j].Low
			}
		}
		rng := hh - ll
		if rng == 0 {
			out[i] = 0
			continue
		}
		out[i] = -100 * (hh - bars[i].Close) / rng
	}
	return out
}
