package domain

import "context"

// RawStore is the backing system of record: a flat list of source-shaped
// review records. Implementations own durability and write atomicity.
type RawStore interface {
	ReadAll(ctx context.Context) ([]map[string]any, error)
	WriteAll(ctx context.Context, records []map[string]any) error

	// UpdateApproval flips the approved flag on the record with the given id,
	// leaving the record otherwise untouched. found is false (with a nil
	// error) when no record carries that id.
	UpdateApproval(ctx context.Context, id string, approved bool) (found bool, err error)
}

// ReviewSource fetches already-normalized reviews from an external
// integration keyed by a place identifier.
type ReviewSource interface {
	GetReviews(ctx context.Context, placeID string) ([]Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
