package qtype

import (
	"math"
	"sort"
)

// EvaluateRule converts a mistake count into awarded points under rule. The
// function is total: malformed rules and sentinel counts degrade to 0, and
// the result is always within [0, CorrectPoints]. Grading of historical
// submissions replays through here, so identical inputs must keep yielding
// identical outputs.
func EvaluateRule(rule ScoringRule, mistakes int) float64 {
	max := sanePoints(rule.CorrectPoints)
	if max == 0 {
		return 0
	}
	if mistakes < 0 {
		mistakes = 0
	}
	if mistakes == 0 {
		return max
	}

	switch rule.Formula {
	case FormulaExactMatch:
		return 0
	case FormulaOneMistakePartial:
		if mistakes != 1 || rule.OneMistakePoints == nil {
			return 0
		}
		return clamp(sanePoints(*rule.OneMistakePoints), max)
	case FormulaTiers:
		tiers := make([]Tier, len(rule.Tiers))
		copy(tiers, rule.Tiers)
		sort.SliceStable(tiers, func(i, j int) bool {
			return tiers[i].MaxMistakes < tiers[j].MaxMistakes
		})
		for _, t := range tiers {
			if t.MaxMistakes >= mistakes {
				return clamp(sanePoints(t.Points), max)
			}
		}
		return 0
	}
	return 0
}

func sanePoints(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

func clamp(p, max float64) float64 {
	if p > max {
		return max
	}
	return p
}
