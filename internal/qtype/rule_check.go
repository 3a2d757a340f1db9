package qtype

import "fmt"

// ValidateRule checks the ScoringRule invariants against the template of the
// owning definition. Overrides validate against the global definition's
// template because an override can never change the template.
func ValidateRule(rule ScoringRule, tpl UITemplate) error {
	if !rule.Formula.Valid() {
		return fmt.Errorf("%w: unknown formula %q", ErrConfigInvalid, rule.Formula)
	}
	if !MetricAllowed(tpl, rule.MistakeMetric) {
		return fmt.Errorf("%w: metric %q not allowed for template %q", ErrConfigInvalid, rule.MistakeMetric, tpl)
	}
	if rule.CorrectPoints < 0 {
		return fmt.Errorf("%w: correct_points must be non-negative", ErrConfigInvalid)
	}
	switch rule.Formula {
	case FormulaOneMistakePartial:
		if rule.OneMistakePoints == nil {
			return fmt.Errorf("%w: one_mistake_points is required for one_mistake_partial", ErrConfigInvalid)
		}
		if *rule.OneMistakePoints < 0 || *rule.OneMistakePoints > rule.CorrectPoints {
			return fmt.Errorf("%w: one_mistake_points must be within [0, correct_points]", ErrConfigInvalid)
		}
	case FormulaTiers:
		if len(rule.Tiers) == 0 {
			return fmt.Errorf("%w: tiers formula requires at least one tier", ErrConfigInvalid)
		}
		for i, t := range rule.Tiers {
			if t.MaxMistakes < 1 {
				return fmt.Errorf("%w: tier %d: max_mistakes must be >= 1", ErrConfigInvalid, i)
			}
			if t.Points < 0 || t.Points > rule.CorrectPoints {
				return fmt.Errorf("%w: tier %d: points must be within [0, correct_points]", ErrConfigInvalid, i)
			}
		}
	}
	return nil
}

// ValidateKey enforces the stable-identifier format: lowercase ASCII
// letters, digits and underscore, 1..100 chars.
func ValidateKey(key string) error {
	if len(key) < 1 || len(key) > 100 {
		return fmt.Errorf("%w: key must be 1-100 characters", ErrConfigInvalid)
	}
	for _, r := range key {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
		if !ok {
			return fmt.Errorf("%w: key may contain only lowercase letters, digits and underscore", ErrConfigInvalid)
		}
	}
	return nil
}

// ValidateSchema checks the optional structural constraints of a definition.
func ValidateSchema(vs *ValidationSchema) error {
	if vs == nil {
		return nil
	}
	if vs.MinOptions != nil && *vs.MinOptions < 0 {
		return fmt.Errorf("%w: min_options must be >= 0", ErrConfigInvalid)
	}
	if vs.MaxOptions != nil && *vs.MaxOptions < 0 {
		return fmt.Errorf("%w: max_options must be >= 0", ErrConfigInvalid)
	}
	if vs.MinOptions != nil && vs.MaxOptions != nil && *vs.MinOptions > *vs.MaxOptions {
		return fmt.Errorf("%w: min_options exceeds max_options", ErrConfigInvalid)
	}
	if vs.ExactChoiceCount != nil && *vs.ExactChoiceCount < 1 {
		return fmt.Errorf("%w: exact_choice_count must be >= 1", ErrConfigInvalid)
	}
	return nil
}

// ValidateDefinition runs every creation-time invariant over a definition.
func ValidateDefinition(def QuestionTypeDefinition) error {
	if err := ValidateKey(def.Key); err != nil {
		return err
	}
	if !def.UITemplate.Valid() {
		return fmt.Errorf("%w: unknown ui_template %q", ErrConfigInvalid, def.UITemplate)
	}
	if err := ValidateSchema(def.ValidationSchema); err != nil {
		return err
	}
	return ValidateRule(def.ScoringRule, def.UITemplate)
}
