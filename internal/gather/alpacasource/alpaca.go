// Package alpacasource is an optional domain.DayGroup source backed by the
// Alpaca market-data API. It is a convenience for callers who don't already
// have bar data materialized — the simulator and everything downstream only
// ever depend on domain.DayGroup, never on this package.
package alpacasource

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"daybt/internal/domain"
	"daybt/internal/util"
)

// maxFetchAttempts/fetchBaseDelay bound the retry policy for transient
// GetMultiBars failures (rate limits, connection resets).
const (
	maxFetchAttempts = 3
	fetchBaseDelay   = 500 * time.Millisecond
)

// Source fetches 1-minute bars from Alpaca and groups them into per-day
// DayGroups ready for the backtest driver.
type Source struct {
	client *marketdata.Client
	feed   marketdata.Feed
	loc    *time.Location
}

// Config holds the credentials and endpoint used to build a Source.
type Config struct {
	APIKey    string
	APISecret string
	DataURL   string // optional override; empty uses the SDK default
}

// New creates a Source configured with the given Alpaca credentials.
func New(cfg Config) *Source {
	opts := marketdata.ClientOpts{
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
	}
	if cfg.DataURL != "" {
		opts.BaseURL = cfg.DataURL
	}

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}

	return &Source{
		client: marketdata.NewClient(opts),
		feed:   marketdata.SIP,
		loc:    loc,
	}
}

// FetchRange fetches 1-minute bars for symbols between the trading dates
// of start and end (both inclusive), and returns one DayGroup per
// (ticker, date) pair found, sorted into canonical (ticker, date) order.
// DailyStats is left zero-valued — callers that need PM/Yesterday levels
// populate DayGroup.Stats themselves from a separate source.
func (s *Source) FetchRange(ctx context.Context, symbols []string, start, end time.Time) ([]domain.DayGroup, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var multiBars map[string][]marketdata.Bar
	err := util.Retry(ctx, maxFetchAttempts, fetchBaseDelay, func() error {
		var fetchErr error
		multiBars, fetchErr = s.client.GetMultiBars(symbols, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneMin,
			Start:     start,
			End:       end.AddDate(0, 0, 1),
			Feed:      s.feed,
		})
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("GetMultiBars: %w", err)
	}

	return groupMultiBarsByDay(multiBars, s.loc), nil
}

// FetchDay fetches one (ticker, date) pair's 1-minute bars. DailyStats
// comes back zero-valued, for the same reason as FetchRange: PM/Yesterday
// session levels aren't in Alpaca's bars endpoint, so callers that need
// them populate DayGroup.Stats from a separate source (e.g. -stats on
// cmd/daybt-run).
func (s *Source) FetchDay(ctx context.Context, ticker, date string) ([]domain.Bar, domain.DailyStats, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, domain.DailyStats{}, fmt.Errorf("parsing date %q: %w", date, err)
	}

	groups, err := s.FetchRange(ctx, []string{ticker}, day, day)
	if err != nil {
		return nil, domain.DailyStats{}, err
	}

	upper := strings.ToUpper(ticker)
	for _, g := range groups {
		if g.Ticker == upper && g.Date == date {
			return g.Bars, g.Stats, nil
		}
	}
	return nil, domain.DailyStats{}, nil
}

// groupMultiBarsByDay buckets Alpaca's per-symbol bar slices into DayGroups
// keyed by (ticker, ET trading date), sorted into canonical order. Split out
// from FetchRange so the grouping logic is testable without a live client.
func groupMultiBarsByDay(multiBars map[string][]marketdata.Bar, loc *time.Location) []domain.DayGroup {
	type key struct{ ticker, date string }
	grouped := make(map[key][]domain.Bar)

	for symbol, alpacaBars := range multiBars {
		ticker := strings.ToUpper(symbol)
		for _, ab := range alpacaBars {
			et := ab.Timestamp.In(loc)
			date := et.Format("2006-01-02")
			k := key{ticker, date}
			grouped[k] = append(grouped[k], domain.Bar{
				Timestamp: ab.Timestamp.Unix(),
				Open:      ab.Open,
				High:      ab.High,
				Low:       ab.Low,
				Close:     ab.Close,
				Volume:    int64(ab.Volume),
			})
		}
	}

	groups := make([]domain.DayGroup, 0, len(grouped))
	for k, bars := range grouped {
		sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp < bars[j].Timestamp })
		groups = append(groups, domain.DayGroup{Ticker: k.ticker, Date: k.date, Bars: bars})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Ticker != groups[j].Ticker {
			return groups[i].Ticker < groups[j].Ticker
		}
		return groups[i].Date < groups[j].Date
	})

	return groups
}
