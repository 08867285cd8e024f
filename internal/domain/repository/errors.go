package repository

import "errors"

// Sentinel errors shared by all repository implementations. Services
// translate these into their own API-facing errors.
var (
	// ErrNotFound covers both a truly absent record and a record owned by
	// another user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate signals a unique-constraint violation (username, email,
	// per-user category name).
	ErrDuplicate = errors.New("duplicate record")

	// ErrCategoryNotOwned signals that a referenced category does not exist
	// or belongs to a different user.
	ErrCategoryNotOwned = errors.New("category not owned by user")
)
