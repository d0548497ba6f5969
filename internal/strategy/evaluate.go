package strategy

import (
	"daybt/internal/domain"
	"daybt/internal/indicator"
)

// evalConditionNode recursively evaluates a ConditionNode over bars, sharing
// an indicator cache across the whole tree (§4.1: the cache is per
// condition block, not per leaf).
func evalConditionNode(node domain.ConditionNode, bars []domain.Bar, stats domain.DailyStats, cache indicator.Cache) []bool {
	n := len(bars)
	if node == nil {
		return allTrue(n)
	}

	switch v := node.(type) {
	case *domain.ConditionGroup:
		return evalConditionGroup(v, bars, stats, cache)
	case *domain.Condition:
		return evalCondition(v, bars, stats, cache)
	default:
		return allTrue(n)
	}
}

func evalConditionGroup(group *domain.ConditionGroup, bars []domain.Bar, stats domain.DailyStats, cache indicator.Cache) []bool {
	n := len(bars)
	if group == nil || len(group.Conditions) == 0 {
		return allTrue(n)
	}

	combined := evalConditionNode(group.Conditions[0], bars, stats, cache)
	for _, child := range group.Conditions[1:] {
		r := evalConditionNode(child, bars, stats, cache)
		if group.Operator == "OR" {
			combined = orBool(combined, r)
		} else {
			combined = andBool(combined, r)
		}
	}
	return combined
}

func evalCondition(cond *domain.Condition, bars []domain.Bar, stats domain.DailyStats, cache indicator.Cache) []bool {
	switch cond.Kind {
	case domain.ConditionIndicatorComparison:
		return evalIndicatorComparison(cond, bars, stats, cache)
	case domain.ConditionPriceLevelDistance:
		return evalPriceLevelDistance(cond, bars, stats, cache)
	case domain.ConditionCandlePattern:
		return []bool(indicator.DetectPattern(bars, cond.Pattern, cond.Lookback, cond.ConsecutiveCount))
	default:
		return allTrue(len(bars))
	}
}

func evalIndicatorComparison(cond *domain.Condition, bars []domain.Bar, stats domain.DailyStats, cache indicator.Cache) []bool {
	n := len(bars)
	source := indicator.Compute(cond.Source.Name, bars, stats, cond.Source.Period, cond.Source.Offset, cache)

	var target indicator.Series
	switch {
	case cond.Target.Literal != nil:
		target = constSeries(n, *cond.Target.Literal)
	case cond.Target.Ref != nil:
		ref := cond.Target.Ref
		target = indicator.Compute(ref.Name, bars, stats, ref.Period, ref.Offset, cache)
	default:
		target = constSeries(n, 0)
	}

	return applyComparator(source, target, cond.Comparator)
}

func evalPriceLevelDistance(cond *domain.Condition, bars []domain.Bar, stats domain.DailyStats, cache indicator.Cache) []bool {
	n := len(bars)
	source := indicator.Compute(cond.DistanceSource, bars, stats, 0, 0, cache)
	level := indicator.Compute(cond.DistanceLevel, bars, stats, 0, 0, cache)

	distance := make(indicator.Series, n)
	for i := range distance {
		distance[i] = distancePct(source[i], level[i])
	}

	out := make([]bool, n)
	switch cond.DistanceComparator {
	case domain.DistanceLessThan:
		for i := range out {
			out[i] = distance[i] <= cond.ValuePct
		}
	case domain.DistanceGreaterThan:
		for i := range out {
			out[i] = distance[i] >= cond.ValuePct
		}
	default:
		return applyComparator(distance, constSeries(n, cond.ValuePct), cond.DistanceComparator)
	}
	return out
}

func allTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func andBool(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range out {
		out[i] = a[i] && b[i]
	}
	return out
}

func orBool(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range out {
		out[i] = a[i] || b[i]
	}
	return out
}
