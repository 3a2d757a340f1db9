package qtype

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Registry serves global question type definitions over a DefinitionStore
// capability, layering the builtin seed set under whatever is stored. It
// holds no cache: every call goes back to the store.
type Registry struct {
	defs DefinitionStore
	coll *collate.Collator
}

// Option configures a Registry or Resolver.
type Option func(*options)

type options struct {
	tag language.Tag
}

// WithLocale sets the collation locale used to order types by title.
func WithLocale(tag language.Tag) Option { return func(o *options) { o.tag = tag } }

func buildOptions(opts []Option) options {
	o := options{tag: language.Und}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func NewRegistry(defs DefinitionStore, opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{defs: defs, coll: collate.New(o.tag)}
}

// ListGlobalTypes returns all definitions, builtins included, system types
// first and then by title under locale-aware comparison. Inactive types are
// filtered out unless requested.
func (r *Registry) ListGlobalTypes(ctx context.Context, includeInactive bool) ([]QuestionTypeDefinition, error) {
	stored, err := r.defs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]QuestionTypeDefinition, len(stored)+5)
	for _, d := range stored {
		byKey[d.Key] = d
	}
	for _, b := range builtinDefinitions() {
		if _, ok := byKey[b.Key]; !ok {
			byKey[b.Key] = b
		}
	}
	out := make([]QuestionTypeDefinition, 0, len(byKey))
	for _, d := range byKey {
		if !includeInactive && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	r.sortDefinitions(out)
	return out, nil
}

// GetByKey fetches a stored definition, falling back to builtin synthesis.
func (r *Registry) GetByKey(ctx context.Context, key string) (QuestionTypeDefinition, error) {
	d, err := r.defs.GetByKey(ctx, key)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return QuestionTypeDefinition{}, err
	}
	if b, ok := BuiltinByKey(key); ok {
		return b, nil
	}
	return QuestionTypeDefinition{}, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Create registers a new user-defined type. The key must be unused by both
// stored definitions and builtins.
func (r *Registry) Create(ctx context.Context, def QuestionTypeDefinition) (QuestionTypeDefinition, error) {
	def.IsSystem = false
	def.IsActive = true
	if err := ValidateDefinition(def); err != nil {
		return QuestionTypeDefinition{}, err
	}
	if _, err := r.GetByKey(ctx, def.Key); err == nil {
		return QuestionTypeDefinition{}, fmt.Errorf("%w: key %q already exists", ErrConfigInvalid, def.Key)
	} else if !errors.Is(err, ErrNotFound) {
		return QuestionTypeDefinition{}, err
	}
	if err := r.defs.Upsert(ctx, def); err != nil {
		return QuestionTypeDefinition{}, err
	}
	return def, nil
}

// DefinitionUpdate is a partial edit of a definition. Key and UITemplate are
// immutable and therefore absent. A nil field leaves the current value;
// ClearValidationSchema drops the schema entirely.
type DefinitionUpdate struct {
	Title                 *string           `json:"title,omitempty"`
	Description           *string           `json:"description,omitempty"`
	ScoringRule           *ScoringRule      `json:"scoring_rule,omitempty"`
	IsActive              *bool             `json:"is_active,omitempty"`
	ValidationSchema      *ValidationSchema `json:"validation_schema,omitempty"`
	ClearValidationSchema bool              `json:"clear_validation_schema,omitempty"`
}

// Update edits a definition in place. Editing a builtin that has no stored
// row materializes it first, so the edit survives restarts.
func (r *Registry) Update(ctx context.Context, key string, upd DefinitionUpdate) (QuestionTypeDefinition, error) {
	def, err := r.GetByKey(ctx, key)
	if err != nil {
		return QuestionTypeDefinition{}, err
	}
	if upd.Title != nil {
		def.Title = *upd.Title
	}
	if upd.Description != nil {
		def.Description = *upd.Description
	}
	if upd.ScoringRule != nil {
		def.ScoringRule = *upd.ScoringRule
	}
	if upd.IsActive != nil {
		def.IsActive = *upd.IsActive
	}
	if upd.ClearValidationSchema {
		def.ValidationSchema = nil
	} else if upd.ValidationSchema != nil {
		def.ValidationSchema = upd.ValidationSchema
	}
	if err := ValidateSchema(def.ValidationSchema); err != nil {
		return QuestionTypeDefinition{}, err
	}
	if err := ValidateRule(def.ScoringRule, def.UITemplate); err != nil {
		return QuestionTypeDefinition{}, err
	}
	if err := r.defs.Upsert(ctx, def); err != nil {
		return QuestionTypeDefinition{}, err
	}
	return def, nil
}

// Delete retires a user-defined type. System types are protected; user
// types are soft-disabled so historical grading stays reproducible.
func (r *Registry) Delete(ctx context.Context, key string) error {
	def, err := r.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if def.IsSystem {
		return fmt.Errorf("%w: %s", ErrProtected, key)
	}
	return r.defs.SoftDisable(ctx, key)
}

func (r *Registry) sortDefinitions(defs []QuestionTypeDefinition) {
	sort.SliceStable(defs, func(i, j int) bool {
		a, b := defs[i], defs[j]
		if a.IsSystem != b.IsSystem {
			return a.IsSystem
		}
		if c := r.coll.CompareString(a.Title, b.Title); c != 0 {
			return c < 0
		}
		return a.Key < b.Key
	})
}
