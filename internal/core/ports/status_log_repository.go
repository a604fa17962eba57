package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/statuslog"
)

// StatusLogRepository defines the persistence contract for the append-only
// status ledger. Entries are only ever inserted, always inside the same
// transaction as the status transition they describe.
type StatusLogRepository interface {
	// Append inserts one ledger entry.
	Append(ctx context.Context, entry *statuslog.Entry) error

	// AppendBatch inserts many ledger entries in one round trip. Used by the
	// transfer completion flow, which logs every member parcel at once.
	AppendBatch(ctx context.Context, entries []*statuslog.Entry) error

	// Latest retrieves the most recent entry for a subject, ordered by
	// creation time with insertion order breaking ties. Returns an
	// ObjectNotFoundError when the subject has no entries.
	Latest(ctx context.Context, subject statuslog.Subject, subjectID kernel.UUID) (*statuslog.Entry, error)
}
