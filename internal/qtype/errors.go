package qtype

import "errors"

var (
	// ErrConfigInvalid marks definition/override invariant violations,
	// raised at create/update time only.
	ErrConfigInvalid = errors.New("invalid question type configuration")

	// ErrNotFound is returned by stores and lookups when a key has no row
	// and no builtin fallback.
	ErrNotFound = errors.New("question type not found")

	// ErrProtected rejects deletion of system-seeded types.
	ErrProtected = errors.New("system question type is protected")
)
