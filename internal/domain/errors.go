package domain

import "errors"

// ErrEmptyInput is returned when the driver is given no intraday bars at
// all (spec.md §7, "input-validation fatal").
var ErrEmptyInput = errors.New("no intraday bars provided")

// ErrEmptyPnLs is returned when the Monte Carlo engine is called with an
// empty trade PnL list.
var ErrEmptyPnLs = errors.New("monte carlo: empty pnl list")

// ErrSimulationCount is returned when the Monte Carlo simulation count is
// outside [100, 10000].
var ErrSimulationCount = errors.New("monte carlo: simulations must be between 100 and 10000")
