package indicator

import "math"

// sma computes the simple moving average over period p; the first p-1
// values are NaN.
func sma(src Series, p int) Series {
	n := len(src)
	out := nanSeries(n)
	if p <= 0 || n < p {
		return out
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += src[i]
		if i >= p {
			sum -= src[i-p]
		}
		if i >= p-1 {
			out[i] = sum / float64(p)
		}
	}
	return out
}

// ema seeds with the SMA of the first window, then recursively updates
// out[i] = alpha*v[i] + (1-alpha)*out[i-1]; alpha = 2/(p+1). The first p-1
// values are NaN, matching the SMA warmup.
func ema(src Series, p int) Series {
	n := len(src)
	out := nanSeries(n)
	if p <= 0 || n < p {
		return out
	}
	alpha := 2.0 / (float64(p) + 1.0)

	seed := 0.0
	for i := 0; i < p; i++ {
		seed += src[i]
	}
	seed /= float64(p)
	out[p-1] = seed

	for i := p; i < n; i++ {
		out[i] = alpha*src[i] + (1-alpha)*out[i-1]
	}
	return out
}

// wma is the linearly-weighted moving average: weight j+1 given to the
// j-th oldest bar in the window, counting from 0 (most recent bar gets
// weight p).
func wma(src Series, p int) Series {
	n := len(src)
	out := nanSeries(n)
	if p <= 0 || n < p {
		return out
	}
	denom := float64(p*(p+1)) / 2
	for i := p - 1; i < n; i++ {
		sum := 0.0
		for j := 0; j < p; j++ {
			weight := float64(j + 1)
			sum += weight * src[i-p+1+j]
		}
		out[i] = sum / denom
	}
	return out
}

func macd(close Series) Series {
	fast := ema(close, 12)
	slow := ema(close, 26)
	n := len(close)
	out := nanSeries(n)
	for i := 0; i < n; i++ {
		if !math.IsNaN(fast[i]) && !math.IsNaN(slow[i]) {
			out[i] = fast[i] - slow[i]
		}
	}
	return out
}
