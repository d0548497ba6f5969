package strategy

import (
	"time"

	"daybt/internal/domain"
)

// resampleIfNeeded aggregates 1-minute bars into a coarser timeframe.
// 1m is a no-op; anything else buckets bars into fixed-width windows keyed
// by the bucket's start time (UTC), using first/max/min/last/sum.
func resampleIfNeeded(bars []domain.Bar, tf domain.Timeframe) []domain.Bar {
	width, ok := bucketWidth(tf)
	if !ok {
		return bars
	}

	var out []domain.Bar
	for _, b := range bars {
		start := bucketStart(b.Timestamp, width)
		if len(out) == 0 || bucketStart(out[len(out)-1].Timestamp, width) != start {
			out = append(out, domain.Bar{
				Timestamp: b.Timestamp,
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Volume:    b.Volume,
			})
			continue
		}
		last := &out[len(out)-1]
		if b.High > last.High {
			last.High = b.High
		}
		if b.Low < last.Low {
			last.Low = b.Low
		}
		last.Close = b.Close
		last.Volume += b.Volume
	}
	return out
}

func bucketWidth(tf domain.Timeframe) (time.Duration, bool) {
	switch tf {
	case domain.Timeframe5m:
		return 5 * time.Minute, true
	case domain.Timeframe15m:
		return 15 * time.Minute, true
	case domain.Timeframe30m:
		return 30 * time.Minute, true
	case domain.Timeframe1h:
		return time.Hour, true
	case domain.Timeframe1d:
		return 24 * time.Hour, true
	default:
		return 0, false
	}
}

func bucketStart(unixSeconds int64, width time.Duration) int64 {
	secs := int64(width.Seconds())
	return (unixSeconds / secs) * secs
}

// reindexForwardFill expands a resampled boolean series back onto the
// original 1-minute bar timestamps, forward-filling each bucket's value
// across the original bars it covers and defaulting to false before the
// first resampled timestamp.
func reindexForwardFill(resampledBars []domain.Bar, resampledSignal []bool, originalBars []domain.Bar) []bool {
	out := make([]bool, len(originalBars))
	if len(resampledBars) == 0 {
		return out
	}
	j := 0
	current := false
	haveCurrent := false
	for i, b := range originalBars {
		for j < len(resampledBars) && resampledBars[j].Timestamp <= b.Timestamp {
			current = resampledSignal[j]
			haveCurrent = true
			j++
		}
		if haveCurrent {
			out[i] = current
		} else {
			out[i] = false
		}
	}
	return out
}
