package qtype

import (
	"fmt"
	"strings"
)

// AnswerOption is one selectable entry of a choice question.
type AnswerOption struct {
	ID   string `json:"id"`
	Text string `json:"text,omitempty"`
}

// MatchingPairs holds the two columns of a matching question.
type MatchingPairs struct {
	Left  []AnswerOption `json:"left"`
	Right []AnswerOption `json:"right"`
}

// QuestionBody is the author-supplied structure of a question. Correct is
// untyped because its shape depends on the template: a string for single
// choice / short text / digit sequence, a string collection for multi
// choice, a left→right id map for matching.
type QuestionBody struct {
	Options       []AnswerOption `json:"options,omitempty"`
	MatchingPairs *MatchingPairs `json:"matching_pairs,omitempty"`
	Correct       any            `json:"correct"`
}

// ValidateQuestion structurally checks body against the effective type's
// template and validation schema. It returns the first violated rule as an
// error and nil when everything passes. The function reads nothing beyond
// its arguments, so synthetic types work for testing.
func ValidateQuestion(et EffectiveQuestionType, body QuestionBody) error {
	switch et.UITemplate {
	case TemplateSingleChoice, TemplateMultiChoice:
		return validateChoice(et, body)
	case TemplateMatching:
		return validateMatching(body)
	case TemplateShortText:
		s, ok := asString(body.Correct)
		if !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("correct answer must be a non-empty string")
		}
		return nil
	case TemplateSequenceDigits:
		if _, ok := digitsOnly(body.Correct); !ok {
			return fmt.Errorf("correct answer must be a non-empty digit sequence")
		}
		return nil
	}
	return fmt.Errorf("unknown ui template %q", et.UITemplate)
}

func validateChoice(et EffectiveQuestionType, body QuestionBody) error {
	if len(body.Options) < 2 {
		return fmt.Errorf("at least 2 options are required")
	}
	ids := make(map[string]struct{}, len(body.Options))
	for i, opt := range body.Options {
		if opt.ID == "" {
			return fmt.Errorf("option %d has an empty id", i)
		}
		if _, dup := ids[opt.ID]; dup {
			return fmt.Errorf("duplicate option id %q", opt.ID)
		}
		ids[opt.ID] = struct{}{}
	}
	vs := et.ValidationSchema
	if vs != nil {
		if vs.MinOptions != nil && len(body.Options) < *vs.MinOptions {
			return fmt.Errorf("at least %d options are required", *vs.MinOptions)
		}
		if vs.MaxOptions != nil && len(body.Options) > *vs.MaxOptions {
			return fmt.Errorf("at most %d options are allowed", *vs.MaxOptions)
		}
	}

	if et.UITemplate == TemplateSingleChoice {
		c, ok := asString(body.Correct)
		if !ok || c == "" {
			return fmt.Errorf("correct answer must be a single option id")
		}
		if _, ok := ids[c]; !ok {
			return fmt.Errorf("correct answer %q is not an option id", c)
		}
		if vs != nil && vs.ExactChoiceCount != nil && *vs.ExactChoiceCount != 1 {
			return fmt.Errorf("exact choice count must be 1 for single choice")
		}
		return nil
	}

	cs, ok := asStringSlice(body.Correct)
	if !ok || len(cs) == 0 {
		return fmt.Errorf("correct answer must be a non-empty list of option ids")
	}
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("correct answer repeats option id %q", c)
		}
		seen[c] = struct{}{}
		if _, ok := ids[c]; !ok {
			return fmt.Errorf("correct answer %q is not an option id", c)
		}
	}
	if vs != nil && vs.ExactChoiceCount != nil && len(cs) != *vs.ExactChoiceCount {
		return fmt.Errorf("exactly %d correct options are required", *vs.ExactChoiceCount)
	}
	return nil
}

func validateMatching(body QuestionBody) error {
	if body.MatchingPairs == nil {
		return fmt.Errorf("matching pairs are required")
	}
	left, err := uniqueIDs("left", body.MatchingPairs.Left)
	if err != nil {
		return err
	}
	right, err := uniqueIDs("right", body.MatchingPairs.Right)
	if err != nil {
		return err
	}
	correct, ok := asStringMap(body.Correct)
	if !ok {
		return fmt.Errorf("correct answer must map left ids to right ids")
	}
	for id := range left {
		target, has := correct[id]
		if !has {
			return fmt.Errorf("left id %q has no correct match", id)
		}
		if _, known := right[target]; !known {
			return fmt.Errorf("left id %q maps to unknown right id %q", id, target)
		}
	}
	return nil
}

func uniqueIDs(side string, opts []AnswerOption) (map[string]struct{}, error) {
	if len(opts) < 2 {
		return nil, fmt.Errorf("%s column needs at least 2 entries", side)
	}
	ids := make(map[string]struct{}, len(opts))
	for i, opt := range opts {
		if opt.ID == "" {
			return nil, fmt.Errorf("%s entry %d has an empty id", side, i)
		}
		if _, dup := ids[opt.ID]; dup {
			return nil, fmt.Errorf("duplicate %s id %q", side, opt.ID)
		}
		ids[opt.ID] = struct{}{}
	}
	return ids, nil
}
