package repository

import "context"

// SequenceRepository allocates monotonically increasing values per scope.
// Allocation must be atomic under concurrent callers: two concurrent Next
// calls on the same scope must never observe the same value.
type SequenceRepository interface {
	Next(ctx context.Context, scope string) (int64, error)
}
