package qtype

// UITemplate is the answer-shape family a question type renders and collects.
// The set is closed; adding a template means touching every switch that
// dispatches on it.
type UITemplate string

const (
	TemplateSingleChoice   UITemplate = "single_choice"
	TemplateMultiChoice    UITemplate = "multi_choice"
	TemplateMatching       UITemplate = "matching"
	TemplateShortText      UITemplate = "short_text"
	TemplateSequenceDigits UITemplate = "sequence_digits"
)

func (t UITemplate) Valid() bool {
	switch t {
	case TemplateSingleChoice, TemplateMultiChoice, TemplateMatching,
		TemplateShortText, TemplateSequenceDigits:
		return true
	}
	return false
}

// Metric identifies a mistake-count function from the metric library.
type Metric string

const (
	MetricBooleanCorrect    Metric = "boolean_correct"
	MetricSetDistance       Metric = "set_distance"
	MetricPairMismatchCount Metric = "pair_mismatch_count"
	MetricCompactTextEqual  Metric = "compact_text_equal"
	MetricHammingDigits     Metric = "hamming_digits"
)

// MetricsFor returns the metrics usable with a template. The mapping is 1:1
// today but callers must treat it as a set.
func MetricsFor(t UITemplate) []Metric {
	switch t {
	case TemplateSingleChoice:
		return []Metric{MetricBooleanCorrect}
	case TemplateMultiChoice:
		return []Metric{MetricSetDistance}
	case TemplateMatching:
		return []Metric{MetricPairMismatchCount}
	case TemplateShortText:
		return []Metric{MetricCompactTextEqual}
	case TemplateSequenceDigits:
		return []Metric{MetricHammingDigits}
	}
	return nil
}

// MetricAllowed reports whether m may be attached to a definition with
// template t.
func MetricAllowed(t UITemplate, m Metric) bool {
	for _, a := range MetricsFor(t) {
		if a == m {
			return true
		}
	}
	return false
}

// Formula selects how a mistake count converts to points.
type Formula string

const (
	FormulaExactMatch        Formula = "exact_match"
	FormulaOneMistakePartial Formula = "one_mistake_partial"
	FormulaTiers             Formula = "tiers"
)

func (f Formula) Valid() bool {
	switch f {
	case FormulaExactMatch, FormulaOneMistakePartial, FormulaTiers:
		return true
	}
	return false
}

// Tier awards Points when the mistake count is at most MaxMistakes.
type Tier struct {
	MaxMistakes int     `json:"max_mistakes"`
	Points      float64 `json:"points"`
}

// ScoringRule is a tagged variant by Formula. OneMistakePoints is only
// meaningful for one_mistake_partial, Tiers only for tiers.
type ScoringRule struct {
	Formula          Formula  `json:"formula"`
	MistakeMetric    Metric   `json:"mistake_metric"`
	CorrectPoints    float64  `json:"correct_points"`
	OneMistakePoints *float64 `json:"one_mistake_points,omitempty"`
	Tiers            []Tier   `json:"tiers,omitempty"`
}

// ValidationSchema carries optional structural constraints on a question
// body beyond the template's baseline shape. Nil pointers mean "no
// constraint"; a nil schema means no extra constraints at all.
type ValidationSchema struct {
	MinOptions       *int `json:"min_options,omitempty"`
	MaxOptions       *int `json:"max_options,omitempty"`
	ExactChoiceCount *int `json:"exact_choice_count,omitempty"`
}

// QuestionTypeDefinition is a named, reusable question behavior. Key and
// UITemplate are fixed for the lifetime of the definition.
type QuestionTypeDefinition struct {
	Key              string            `json:"key"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	UITemplate       UITemplate        `json:"ui_template"`
	ValidationSchema *ValidationSchema `json:"validation_schema,omitempty"`
	ScoringRule      ScoringRule       `json:"scoring_rule"`
	IsSystem         bool              `json:"is_system"`
	IsActive         bool              `json:"is_active"`
}

// TestQuestionTypeOverride narrows or re-titles one question type for one
// test. Nil pointer fields are "not overridden", which must stay
// distinguishable from an explicit empty value.
type TestQuestionTypeOverride struct {
	TestID              string       `json:"test_id"`
	TypeKey             string       `json:"type_key"`
	TitleOverride       *string      `json:"title_override,omitempty"`
	ScoringRuleOverride *ScoringRule `json:"scoring_rule_override,omitempty"`
	IsDisabled          bool         `json:"is_disabled"`
}

// EffectiveQuestionType is the per-test projection of a global definition
// with its override applied. It is recomputed on every resolution and never
// persisted.
type EffectiveQuestionType struct {
	Key              string            `json:"key"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	UITemplate       UITemplate        `json:"ui_template"`
	ValidationSchema *ValidationSchema `json:"validation_schema,omitempty"`
	ScoringRule      ScoringRule       `json:"scoring_rule"`
	IsSystem         bool              `json:"is_system"`
	IsActive         bool              `json:"is_active"`
}

// GradedResult is the outcome of grading a single answer.
type GradedResult struct {
	EarnedPoints  float64 `json:"earned_points"`
	MaxPoints     float64 `json:"max_points"`
	IsCorrect     bool    `json:"is_correct"`
	MistakesCount int     `json:"mistakes_count"`
}
