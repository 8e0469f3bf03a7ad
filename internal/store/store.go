package store

import "context"

// RecordStore appends one submission row to a durable tabular sink.
// Implementations create the target sheet with its header row when it
// does not exist yet; existing rows are never rewritten or reordered.
type RecordStore interface {
	Append(ctx context.Context, sheet string, row []any) error
}
