package qtype

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
)

// Resolver merges per-test overrides onto the global registry to produce
// the effective type map for a test. Resolution is recomputed from the
// stores on every call; concurrent callers never share state.
type Resolver struct {
	defs DefinitionStore
	ovs  OverrideStore
	coll *collate.Collator
}

func NewResolver(defs DefinitionStore, ovs OverrideStore, opts ...Option) *Resolver {
	o := buildOptions(opts)
	return &Resolver{defs: defs, ovs: ovs, coll: collate.New(o.tag)}
}

// ResolveEffectiveTypes returns the effective types for testID, ordered the
// same way the registry orders global definitions: system types first, then
// title under locale-aware comparison. Inactive entries are filtered unless
// includeInactive is set.
//
// Keys come from the union of global definitions (builtins included) and
// override rows; an override for a key with neither a stored row nor a
// builtin is dropped. A missing override row is indistinguishable from an
// override with every field unset.
func (r *Resolver) ResolveEffectiveTypes(ctx context.Context, testID string, includeInactive bool) ([]EffectiveQuestionType, error) {
	stored, err := r.defs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := r.ovs.ListForTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	defsByKey := make(map[string]QuestionTypeDefinition, len(stored)+5)
	for _, d := range stored {
		defsByKey[d.Key] = d
	}
	for _, b := range builtinDefinitions() {
		if _, ok := defsByKey[b.Key]; !ok {
			defsByKey[b.Key] = b
		}
	}
	ovByKey := make(map[string]TestQuestionTypeOverride, len(overrides))
	for _, ov := range overrides {
		ovByKey[ov.TypeKey] = ov
		if _, ok := defsByKey[ov.TypeKey]; !ok {
			// Override referencing a vanished definition: builtin
			// synthesis, or drop the key entirely.
			if b, okb := BuiltinByKey(ov.TypeKey); okb {
				defsByKey[ov.TypeKey] = b
			}
		}
	}

	out := make([]EffectiveQuestionType, 0, len(defsByKey))
	for key, def := range defsByKey {
		ov, hasOv := ovByKey[key]
		et := applyOverride(def, ov, hasOv)
		if !includeInactive && !et.IsActive {
			continue
		}
		out = append(out, et)
	}
	r.sortEffective(out)
	return out, nil
}

// ResolveEffective resolves a single type key for a test.
func (r *Resolver) ResolveEffective(ctx context.Context, testID, key string) (EffectiveQuestionType, error) {
	types, err := r.ResolveEffectiveTypes(ctx, testID, true)
	if err != nil {
		return EffectiveQuestionType{}, err
	}
	for _, et := range types {
		if et.Key == key {
			return et, nil
		}
	}
	return EffectiveQuestionType{}, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// SaveOverride validates and stores an override. The scoring rule override,
// when present, must satisfy the same invariants as a global rule against
// the global definition's template: overrides cannot change the template.
func (r *Resolver) SaveOverride(ctx context.Context, ov TestQuestionTypeOverride) error {
	def, err := r.defs.GetByKey(ctx, ov.TypeKey)
	if errors.Is(err, ErrNotFound) {
		b, ok := BuiltinByKey(ov.TypeKey)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, ov.TypeKey)
		}
		def = b
	} else if err != nil {
		return err
	}
	if ov.ScoringRuleOverride != nil {
		if err := ValidateRule(*ov.ScoringRuleOverride, def.UITemplate); err != nil {
			return err
		}
	}
	return r.ovs.Upsert(ctx, ov)
}

// DeleteOverride removes the override row, restoring the globals for that
// key in the test.
func (r *Resolver) DeleteOverride(ctx context.Context, testID, key string) error {
	return r.ovs.Delete(ctx, testID, key)
}

// applyOverride projects a global definition through an override. Title is
// replaced only by a non-blank override; the scoring rule is replaced
// wholesale; isDisabled narrows activation and can never re-activate a
// globally inactive type.
func applyOverride(def QuestionTypeDefinition, ov TestQuestionTypeOverride, hasOv bool) EffectiveQuestionType {
	et := EffectiveQuestionType{
		Key:              def.Key,
		Title:            def.Title,
		Description:      def.Description,
		UITemplate:       def.UITemplate,
		ValidationSchema: def.ValidationSchema,
		ScoringRule:      def.ScoringRule,
		IsSystem:         def.IsSystem,
		IsActive:         def.IsActive,
	}
	if !hasOv {
		return et
	}
	if ov.TitleOverride != nil && strings.TrimSpace(*ov.TitleOverride) != "" {
		et.Title = *ov.TitleOverride
	}
	if ov.ScoringRuleOverride != nil {
		et.ScoringRule = *ov.ScoringRuleOverride
	}
	if ov.IsDisabled {
		et.IsActive = false
	}
	return et
}

func (r *Resolver) sortEffective(types []EffectiveQuestionType) {
	sort.SliceStable(types, func(i, j int) bool {
		a, b := types[i], types[j]
		if a.IsSystem != b.IsSystem {
			return a.IsSystem
		}
		if c := r.coll.CompareString(a.Title, b.Title); c != 0 {
			return c < 0
		}
		return a.Key < b.Key
	})
}
