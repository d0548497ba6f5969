// Package simulator runs the Portfolio Simulator: a single-position,
// single-instrument per-bar state machine over one day's bars (spec.md
// §4.3).
package simulator

import (
	"math"

	"daybt/internal/domain"
)

// Simulate walks bars in order, applying entries/exits/direction from
// Signals under cfg's cash/fees/slippage and the signals' stop-loss and
// take-profit parameters. Exit priority per bar is SL > TP > Signal > EOD;
// see domain.Trade for the output shape.
func Simulate(bars []domain.Bar, sig domain.Signals, cfg domain.BacktestConfig) domain.SimResult {
	n := len(bars)
	equity := make([]float64, n)
	var trades []domain.Trade

	isLong := sig.Direction == domain.DirectionLongOnly

	var (
		realizedPnL    float64
		inPosition     bool
		entryPrice     float64
		entryIdx       int
		entryFeeAmount float64
		size           float64
		trailExtreme   float64
	)

	for i := 0; i < n; i++ {
		b := bars[i]

		if inPosition {
			exitTriggered := false
			exitPrice := b.Close
			reason := domain.ExitSignal

			var priceForSL, priceForTP float64
			if isLong {
				priceForSL, priceForTP = b.Low, b.High
			} else {
				priceForSL, priceForTP = b.High, b.Low
			}

			if sig.SLStop != nil {
				slStop := *sig.SLStop
				if sig.SLTrail {
					if isLong {
						trailExtreme = math.Max(trailExtreme, b.High)
						slLevel := trailExtreme * (1 - slStop)
						if priceForSL <= slLevel {
							exitTriggered = true
							exitPrice = math.Max(slLevel, b.Low)
							reason = domain.ExitTrailing
						}
					} else {
						trailExtreme = math.Min(trailExtreme, b.Low)
						slLevel := trailExtreme * (1 + slStop)
						if priceForSL >= slLevel {
							exitTriggered = true
							exitPrice = math.Min(slLevel, b.High)
							reason = domain.ExitTrailing
						}
					}
				} else {
					if isLong {
						slLevel := entryPrice * (1 - slStop)
						if priceForSL <= slLevel {
							exitTriggered = true
							exitPrice = math.Max(slLevel, b.Low)
							reason = domain.ExitSL
						}
					} else {
						slLevel := entryPrice * (1 + slStop)
						if priceForSL >= slLevel {
							exitTriggered = true
							exitPrice = math.Min(slLevel, b.High)
							reason = domain.ExitSL
						}
					}
				}
			}

			if !exitTriggered && sig.TPStop != nil {
				tpStop := *sig.TPStop
				if isLong {
					tpLevel := entryPrice * (1 + tpStop)
					if priceForTP >= tpLevel {
						exitTriggered = true
						exitPrice = math.Min(tpLevel, b.High)
						reason = domain.ExitTP
					}
				} else {
					tpLevel := entryPrice * (1 - tpStop)
					if priceForTP <= tpLevel {
						exitTriggered = true
						exitPrice = math.Max(tpLevel, b.Low)
						reason = domain.ExitTP
					}
				}
			}

			if !exitTriggered && i < len(sig.Exits) && sig.Exits[i] {
				exitTriggered = true
				exitPrice = b.Close
				reason = domain.ExitSignal
			}

			if !exitTriggered && i == n-1 {
				exitTriggered = true
				exitPrice = b.Close
				reason = domain.ExitEOD
			}

			if exitTriggered {
				slip := exitPrice * cfg.Slippage
				var netExit float64
				if isLong {
					netExit = exitPrice - slip
				} else {
					netExit = exitPrice + slip
				}
				exitFee := math.Abs(netExit*size) * cfg.Fees

				var pnl float64
				if isLong {
					pnl = (netExit-entryPrice)*size - exitFee - entryFeeAmount
				} else {
					pnl = (entryPrice-netExit)*size - exitFee - entryFeeAmount
				}

				realizedPnL += pnl
				capitalAtRisk := entryPrice*size + entryFeeAmount
				retPct := 0.0
				if capitalAtRisk > 0 {
					retPct = pnl / capitalAtRisk * 100
				}

				direction := domain.TradeLong
				if !isLong {
					direction = domain.TradeShort
				}

				trades = append(trades, domain.Trade{
					EntryIdx:   entryIdx,
					ExitIdx:    i,
					EntryPrice: round6(entryPrice),
					ExitPrice:  round6(netExit),
					PnL:        round4(pnl),
					ReturnPct:  round4(retPct),
					Direction:  direction,
					Status:     "Closed",
					Size:       round6(size),
					ExitReason: reason,
				})

				inPosition = false
				size = 0
				entryFeeAmount = 0
			}
		}

		if !inPosition && i < len(sig.Entries) && sig.Entries[i] && i < n-1 {
			availableCash := cfg.InitCash + realizedPnL
			if availableCash > 0 {
				nextOpen := bars[i+1].Open
				slip := nextOpen * cfg.Slippage
				var price float64
				if isLong {
					price = nextOpen + slip
				} else {
					price = nextOpen - slip
				}
				if price > 0 {
					s := availableCash / (price * (1 + cfg.Fees))
					if s > 0 {
						entryPrice = price
						size = s
						entryFeeAmount = math.Abs(entryPrice*size) * cfg.Fees
						realizedPnL -= entryFeeAmount
						inPosition = true
						entryIdx = i + 1
						trailExtreme = entryPrice
					}
				}
			}
		}

		if inPosition {
			var unrealized float64
			if isLong {
				unrealized = (b.Close - entryPrice) * size
			} else {
				unrealized = (entryPrice - b.Close) * size
			}
			equity[i] = cfg.InitCash + realizedPnL + unrealized
		} else {
			equity[i] = cfg.InitCash + realizedPnL
		}
	}

	return domain.SimResult{Equity: equity, Trades: trades}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
