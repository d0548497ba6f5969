package indicator

import (
	"time"

	"daybt/internal/domain"
)

func retPM(n int, stats domain.DailyStats) Series {
	if !stats.HasPMHigh || !stats.HasPreviousClose || stats.PreviousClose <= 0 {
		return nanSeries(n)
	}
	val := (stats.PMHigh - stats.PreviousClose) / stats.PreviousClose * 100
	return broadcast(n, true, val)
}

func retFromFirstOpen(bars []domain.Bar) Series {
	n := len(bars)
	if n == 0 || bars[0].Open <= 0 {
		return nanSeries(n)
	}
	firstOpen := bars[0].Open
	out := make(Series, n)
	for i, b := range bars {
		out[i] = (b.Close - firstOpen) / firstOpen * 100
	}
	return out
}

func timeOfDay(bars []domain.Bar) Series {
	out := make(Series, len(bars))
	for i, b := range bars {
		t := time.Unix(b.Timestamp, 0).UTC()
		out[i] = float64(t.Hour()*60 + t.Minute())
	}
	return out
}

func maxNBars(n int) Series {
	out := make(Series, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
