package indicator

import "daybt/internal/domain"

func closeSeries(bars []domain.Bar) Series {
	s := make(Series, len(bars))
	for i, b := range bars {
		s[i] = b.Close
	}
	return s
}

func openSeries(bars []domain.Bar) Series {
	s := make(Series, len(bars))
	for i, b := range bars {
		s[i] = b.Open
	}
	return s
}

func highSeries(bars []domain.Bar) Series {
	s := make(Series, len(bars))
	for i, b := range bars {
		s[i] = b.High
	}
	return s
}

func lowSeries(bars []domain.Bar) Series {
	s := make(Series, len(bars))
	for i, b := range bars {
		s[i] = b.Low
	}
	return s
}

func volumeSeries(bars []domain.Bar) Series {
	s := make(Series, len(bars))
	for i, b := range bars {
		s[i] = float64(b.Volume)
	}
	return s
}
