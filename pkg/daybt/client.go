// Package daybt is the public Go SDK for running intraday backtests
// in-process: run one strategy definition across many
// (ticker, trading_date) groups.
package daybt

import (
	"context"

	"daybt/internal/domain"
	"daybt/internal/driver"
)

// Client runs backtests against in-memory bar data. It holds no network
// connection — unlike an HTTP API client, Run executes the full pipeline
// in the calling process.
type Client struct {
	cfg        domain.BacktestConfig
	maxWorkers int
}

// Option configures a Client.
type Option func(*Client)

// WithBacktestConfig overrides the default init_cash/fees/slippage.
func WithBacktestConfig(cfg domain.BacktestConfig) Option {
	return func(c *Client) { c.cfg = cfg }
}

// WithMaxWorkers bounds how many (ticker,date) groups are simulated
// concurrently. 0 or 1 runs sequentially.
func WithMaxWorkers(n int) Option {
	return func(c *Client) { c.maxWorkers = n }
}

// NewClient creates a Client with the documented defaults
// (init_cash=10000, fees=0, slippage=0, sequential execution), as modified
// by opts.
func NewClient(opts ...Option) *Client {
	c := &Client{cfg: domain.DefaultBacktestConfig(), maxWorkers: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the full backtest pipeline over groups for the strategy
// def, returning the complete result document.
func (c *Client) Run(ctx context.Context, groups []domain.DayGroup, def domain.StrategyDefinition) (domain.ResultDocument, error) {
	return driver.Run(ctx, groups, def, driver.Options{
		Config:     c.cfg,
		MaxWorkers: c.maxWorkers,
	})
}

// SortGroups orders groups into the canonical (ticker, date) ordering the
// result document preserves.
func SortGroups(groups []domain.DayGroup) {
	driver.SortGroups(groups)
}
