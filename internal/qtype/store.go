package qtype

import "context"

// DefinitionStore is the persistence capability for global question type
// definitions. Implementations must return ErrNotFound (possibly wrapped)
// from GetByKey when no row exists; builtin fallback is the caller's
// concern, not the store's.
type DefinitionStore interface {
	ListAll(ctx context.Context) ([]QuestionTypeDefinition, error)
	GetByKey(ctx context.Context, key string) (QuestionTypeDefinition, error)
	Upsert(ctx context.Context, def QuestionTypeDefinition) error
	SoftDisable(ctx context.Context, key string) error
}

// OverrideStore is the persistence capability for per-test overrides.
// At most one override exists per (testID, typeKey) pair.
type OverrideStore interface {
	ListForTest(ctx context.Context, testID string) ([]TestQuestionTypeOverride, error)
	Upsert(ctx context.Context, ov TestQuestionTypeOverride) error
	Delete(ctx context.Context, testID, typeKey string) error
}
