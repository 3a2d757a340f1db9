package qtype

// Builtin seed types. They exist even when the definition store has no row
// for their key: lookups synthesize them with IsActive=true, and grading of
// orphaned questions falls back to their preset rules.
const (
	KeyRadio       = "radio"
	KeyCheckbox    = "checkbox"
	KeyMatching    = "matching"
	KeyShortAnswer = "short_answer"
	KeySequence    = "sequence"
)

func fp(v float64) *float64 { return &v }

func builtinDefinitions() []QuestionTypeDefinition {
	return []QuestionTypeDefinition{
		{
			Key:        KeyRadio,
			Title:      "Single choice",
			UITemplate: TemplateSingleChoice,
			ScoringRule: ScoringRule{
				Formula:       FormulaExactMatch,
				MistakeMetric: MetricBooleanCorrect,
				CorrectPoints: 1,
			},
			IsSystem: true,
			IsActive: true,
		},
		{
			Key:        KeyCheckbox,
			Title:      "Multiple choice",
			UITemplate: TemplateMultiChoice,
			ScoringRule: ScoringRule{
				Formula:          FormulaOneMistakePartial,
				MistakeMetric:    MetricSetDistance,
				CorrectPoints:    2,
				OneMistakePoints: fp(1),
			},
			IsSystem: true,
			IsActive: true,
		},
		{
			Key:        KeyMatching,
			Title:      "Matching",
			UITemplate: TemplateMatching,
			ScoringRule: ScoringRule{
				Formula:          FormulaOneMistakePartial,
				MistakeMetric:    MetricPairMismatchCount,
				CorrectPoints:    2,
				OneMistakePoints: fp(1),
			},
			IsSystem: true,
			IsActive: true,
		},
		{
			Key:        KeyShortAnswer,
			Title:      "Short answer",
			UITemplate: TemplateShortText,
			ScoringRule: ScoringRule{
				Formula:       FormulaExactMatch,
				MistakeMetric: MetricCompactTextEqual,
				CorrectPoints: 1,
			},
			IsSystem: true,
			IsActive: true,
		},
		{
			Key:        KeySequence,
			Title:      "Digit sequence",
			UITemplate: TemplateSequenceDigits,
			ScoringRule: ScoringRule{
				Formula:          FormulaOneMistakePartial,
				MistakeMetric:    MetricHammingDigits,
				CorrectPoints:    2,
				OneMistakePoints: fp(1),
			},
			IsSystem: true,
			IsActive: true,
		},
	}
}

// BuiltinByKey synthesizes the builtin definition for key, if one exists.
// The returned value is a fresh copy safe to mutate.
func BuiltinByKey(key string) (QuestionTypeDefinition, bool) {
	for _, d := range builtinDefinitions() {
		if d.Key == key {
			return d, true
		}
	}
	return QuestionTypeDefinition{}, false
}
