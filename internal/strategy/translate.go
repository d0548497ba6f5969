// Package strategy translates a declarative StrategyDefinition into the
// per-bar Signals the Portfolio Simulator consumes (spec.md §4.2).
package strategy

import (
	"daybt/internal/domain"
	"daybt/internal/indicator"
)

// Translate evaluates a strategy's entry/exit condition trees and risk
// management block over one day's bars, returning an aligned Signals.
// bars and stats describe a single (ticker, trading_date) group; cache
// scoping for resampled timeframes follows the original engine: entry and
// exit share one indicator cache only when both evaluate on "1m".
func Translate(def domain.StrategyDefinition, bars []domain.Bar, stats domain.DailyStats) (domain.Signals, error) {
	direction := domain.DirectionLongOnly
	if def.Bias == domain.BiasShort {
		direction = domain.DirectionShortOnly
	}

	entryTF := def.EntryLogic.Timeframe
	if entryTF == "" {
		entryTF = domain.Timeframe1m
	}
	exitTF := def.ExitLogic.Timeframe
	if exitTF == "" {
		exitTF = domain.Timeframe1m
	}

	entryBars := resampleIfNeeded(bars, entryTF)
	exitBars := resampleIfNeeded(bars, exitTF)

	entryCache := indicator.NewCache()
	exitCache := entryCache
	if entryTF != domain.Timeframe1m || exitTF != domain.Timeframe1m {
		exitCache = indicator.NewCache()
	}

	entries := evalConditionNode(def.EntryLogic.RootCondition, entryBars, stats, entryCache)
	exits := evalConditionNode(def.ExitLogic.RootCondition, exitBars, stats, exitCache)

	if entryTF != domain.Timeframe1m {
		entries = reindexForwardFill(entryBars, entries, bars)
	}
	if exitTF != domain.Timeframe1m {
		exits = reindexForwardFill(exitBars, exits, bars)
	}

	riskCache := indicator.NewCache()
	if entryTF == domain.Timeframe1m {
		riskCache = entryCache
	}
	slStop, slTrail, tpStop := convertRiskManagement(def.RiskManagement, bars, stats, riskCache)

	return domain.Signals{
		Entries:         entries,
		Exits:           exits,
		Direction:       direction,
		SLStop:          slStop,
		SLTrail:         slTrail,
		TPStop:          tpStop,
		AcceptReentries: def.RiskManagement.AcceptReentries,
	}, nil
}
