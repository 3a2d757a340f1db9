package qtype_test

import (
	"testing"

	"github.com/quizforge/quizforge/internal/qtype"
)

func etWithRule(tpl qtype.UITemplate, rule qtype.ScoringRule) qtype.EffectiveQuestionType {
	return qtype.EffectiveQuestionType{Key: "t", UITemplate: tpl, ScoringRule: rule, IsActive: true}
}

func TestGradeShortAnswerNormalization(t *testing.T) {
	et := etWithRule(qtype.TemplateShortText, qtype.ScoringRule{
		Formula:       qtype.FormulaExactMatch,
		MistakeMetric: qtype.MetricCompactTextEqual,
		CorrectPoints: 1,
	})
	got := qtype.Grade(et, " МИТОЗ ", "митоз")
	if got.EarnedPoints != 1 || !got.IsCorrect || got.MistakesCount != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestGradeSequencePartialCredit(t *testing.T) {
	et := etWithRule(qtype.TemplateSequenceDigits, qtype.ScoringRule{
		Formula:          qtype.FormulaOneMistakePartial,
		MistakeMetric:    qtype.MetricHammingDigits,
		CorrectPoints:    2,
		OneMistakePoints: fp(1),
	})
	got := qtype.Grade(et, "2315", "2314")
	if got.MistakesCount != 1 || got.EarnedPoints != 1 || got.IsCorrect {
		t.Fatalf("got %+v", got)
	}
	if got.MaxPoints != 2 {
		t.Fatalf("max points: got %v", got.MaxPoints)
	}
}

func TestGradeMatchingPartialCredit(t *testing.T) {
	et := etWithRule(qtype.TemplateMatching, qtype.ScoringRule{
		Formula:          qtype.FormulaOneMistakePartial,
		MistakeMetric:    qtype.MetricPairMismatchCount,
		CorrectPoints:    2,
		OneMistakePoints: fp(1),
	})
	correct := map[string]string{"a": "1", "b": "2", "c": "3"}

	one := qtype.Grade(et, map[string]string{"a": "1", "b": "3", "c": "3"}, correct)
	if one.MistakesCount != 1 || one.EarnedPoints != 1 {
		t.Fatalf("one mistake: got %+v", one)
	}
	three := qtype.Grade(et, map[string]string{"a": "2", "b": "3", "c": "1"}, correct)
	if three.MistakesCount != 3 || three.EarnedPoints != 0 {
		t.Fatalf("three mistakes: got %+v", three)
	}
}

func TestGradeCheckboxSetDistance(t *testing.T) {
	et := etWithRule(qtype.TemplateMultiChoice, qtype.ScoringRule{
		Formula:          qtype.FormulaOneMistakePartial,
		MistakeMetric:    qtype.MetricSetDistance,
		CorrectPoints:    2,
		OneMistakePoints: fp(1),
	})
	got := qtype.Grade(et, []string{"1", "2", "4"}, []string{"1", "2", "3"})
	if got.MistakesCount != 1 || got.EarnedPoints != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestGradeTieredCustomType(t *testing.T) {
	et := etWithRule(qtype.TemplateSequenceDigits, qtype.ScoringRule{
		Formula:       qtype.FormulaTiers,
		MistakeMetric: qtype.MetricHammingDigits,
		CorrectPoints: 3,
		Tiers: []qtype.Tier{
			{MaxMistakes: 1, Points: 2},
			{MaxMistakes: 2, Points: 1},
		},
	})
	cases := []struct {
		user string
		want float64
	}{
		{"1234", 3}, // 0 mistakes
		{"1235", 2}, // 1
		{"1245", 1}, // 2
		{"1345", 0}, // 3
	}
	for _, tc := range cases {
		got := qtype.Grade(et, tc.user, "1234")
		if got.EarnedPoints != tc.want {
			t.Errorf("user=%s: got %v, want %v", tc.user, got.EarnedPoints, tc.want)
		}
	}
}

func TestGradeIncomparableEarnsNothing(t *testing.T) {
	et := etWithRule(qtype.TemplateMultiChoice, qtype.ScoringRule{
		Formula:          qtype.FormulaOneMistakePartial,
		MistakeMetric:    qtype.MetricSetDistance,
		CorrectPoints:    2,
		OneMistakePoints: fp(1),
	})
	got := qtype.Grade(et, "not a slice", []string{"1"})
	if got.EarnedPoints != 0 || got.IsCorrect {
		t.Fatalf("got %+v", got)
	}
	if got.MistakesCount != qtype.Incomparable {
		t.Fatalf("mistakes: got %d", got.MistakesCount)
	}
}

func TestGradeFallback(t *testing.T) {
	// builtin key whose configuration is gone: preset rule applies
	got := qtype.GradeFallback(qtype.KeySequence, "2315", "2314")
	if got.MistakesCount != 1 || got.EarnedPoints != 1 {
		t.Fatalf("builtin fallback: got %+v", got)
	}

	// never-seen key: strict one-point exact match over opaque strings
	hit := qtype.GradeFallback("totally_unknown", "x", "x")
	if hit.EarnedPoints != 1 || !hit.IsCorrect {
		t.Fatalf("unknown key hit: got %+v", hit)
	}
	miss := qtype.GradeFallback("totally_unknown", "x", "y")
	if miss.EarnedPoints != 0 || miss.IsCorrect {
		t.Fatalf("unknown key miss: got %+v", miss)
	}
}

func TestGradeDisabledTypeStillGrades(t *testing.T) {
	et := etWithRule(qtype.TemplateShortText, qtype.ScoringRule{
		Formula:       qtype.FormulaExactMatch,
		MistakeMetric: qtype.MetricCompactTextEqual,
		CorrectPoints: 1,
	})
	et.IsActive = false
	got := qtype.Grade(et, "mitosis", "mitosis")
	if got.EarnedPoints != 1 {
		t.Fatalf("disabled type must keep grading historical answers: %+v", got)
	}
}
