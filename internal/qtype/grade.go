package qtype

// Grade scores a user answer against the correct answer under the effective
// type's rule. It never returns an error: answer pairs the metric cannot
// normalize come back as Incomparable mistakes and earn 0 points.
func Grade(et EffectiveQuestionType, user, correct any) GradedResult {
	return gradeWithRule(et.ScoringRule, user, correct)
}

// GradeFallback grades a submission whose type key could not be resolved,
// falling back to the builtin preset for that key and, for keys that were
// never builtin, a strict exact-match rule worth one point. Historical
// submissions must stay gradable after their type configuration is gone.
func GradeFallback(key string, user, correct any) GradedResult {
	if b, ok := BuiltinByKey(key); ok {
		return gradeWithRule(b.ScoringRule, user, correct)
	}
	return gradeWithRule(legacyDefaultRule, user, correct)
}

// legacyDefaultRule treats the answer pair as opaque strings.
var legacyDefaultRule = ScoringRule{
	Formula:       FormulaExactMatch,
	MistakeMetric: MetricBooleanCorrect,
	CorrectPoints: 1,
}

func gradeWithRule(rule ScoringRule, user, correct any) GradedResult {
	mistakes := CountMistakes(rule.MistakeMetric, user, correct)
	earned := EvaluateRule(rule, mistakes)
	return GradedResult{
		EarnedPoints:  earned,
		MaxPoints:     sanePoints(rule.CorrectPoints),
		IsCorrect:     mistakes == 0,
		MistakesCount: mistakes,
	}
}
