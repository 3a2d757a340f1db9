package qtype

import (
	"context"
	"fmt"
	"sync"
)

// In-memory stores back tests and single-process offline deployments; the
// SQL stores are the production path.

type memoryDefinitionStore struct {
	mu   sync.RWMutex
	defs map[string]QuestionTypeDefinition
}

// NewMemoryDefinitionStore returns an empty in-memory DefinitionStore.
func NewMemoryDefinitionStore() DefinitionStore {
	return &memoryDefinitionStore{defs: map[string]QuestionTypeDefinition{}}
}

func (m *memoryDefinitionStore) ListAll(_ context.Context) ([]QuestionTypeDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]QuestionTypeDefinition, 0, len(m.defs))
	for _, d := range m.defs {
		out = append(out, cloneDefinition(d))
	}
	return out, nil
}

func (m *memoryDefinitionStore) GetByKey(_ context.Context, key string) (QuestionTypeDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.defs[key]
	if !ok {
		return QuestionTypeDefinition{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return cloneDefinition(d), nil
}

func (m *memoryDefinitionStore) Upsert(_ context.Context, def QuestionTypeDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defs[def.Key] = cloneDefinition(def)
	return nil
}

func (m *memoryDefinitionStore) SoftDisable(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.defs[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	d.IsActive = false
	m.defs[key] = d
	return nil
}

type memoryOverrideStore struct {
	mu        sync.RWMutex
	overrides map[string]TestQuestionTypeOverride // key: testID|typeKey
}

// NewMemoryOverrideStore returns an empty in-memory OverrideStore.
func NewMemoryOverrideStore() OverrideStore {
	return &memoryOverrideStore{overrides: map[string]TestQuestionTypeOverride{}}
}

func ovMapKey(testID, typeKey string) string { return testID + "|" + typeKey }

func (m *memoryOverrideStore) ListForTest(_ context.Context, testID string) ([]TestQuestionTypeOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []TestQuestionTypeOverride
	for _, ov := range m.overrides {
		if ov.TestID == testID {
			out = append(out, cloneOverride(ov))
		}
	}
	return out, nil
}

func (m *memoryOverrideStore) Upsert(_ context.Context, ov TestQuestionTypeOverride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[ovMapKey(ov.TestID, ov.TypeKey)] = cloneOverride(ov)
	return nil
}

func (m *memoryOverrideStore) Delete(_ context.Context, testID, typeKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, ovMapKey(testID, typeKey))
	return nil
}

func cloneDefinition(d QuestionTypeDefinition) QuestionTypeDefinition {
	if d.ValidationSchema != nil {
		vs := *d.ValidationSchema
		if vs.MinOptions != nil {
			v := *vs.MinOptions
			vs.MinOptions = &v
		}
		if vs.MaxOptions != nil {
			v := *vs.MaxOptions
			vs.MaxOptions = &v
		}
		if vs.ExactChoiceCount != nil {
			v := *vs.ExactChoiceCount
			vs.ExactChoiceCount = &v
		}
		d.ValidationSchema = &vs
	}
	d.ScoringRule = cloneRule(d.ScoringRule)
	return d
}

func cloneRule(r ScoringRule) ScoringRule {
	if r.OneMistakePoints != nil {
		v := *r.OneMistakePoints
		r.OneMistakePoints = &v
	}
	if r.Tiers != nil {
		tiers := make([]Tier, len(r.Tiers))
		copy(tiers, r.Tiers)
		r.Tiers = tiers
	}
	return r
}

func cloneOverride(ov TestQuestionTypeOverride) TestQuestionTypeOverride {
	if ov.TitleOverride != nil {
		v := *ov.TitleOverride
		ov.TitleOverride = &v
	}
	if ov.ScoringRuleOverride != nil {
		r := cloneRule(*ov.ScoringRuleOverride)
		ov.ScoringRuleOverride = &r
	}
	return ov
}
