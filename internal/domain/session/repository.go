package session

import "context"

// Repository defines the interface for session persistence.
//
// The store is single-writer: every mutation is a read-modify-write of the
// whole document. The checkpoint counter is a separate persisted artifact so
// identifiers stay monotonic even when the session document is reset.
type Repository interface {
	// Load reads the current session document.
	// Returns errors.ErrSessionNotFound when no session exists.
	Load(ctx context.Context) (*Session, error)

	// Save atomically overwrites the whole session document.
	Save(ctx context.Context, s *Session) error

	// SaveSnapshot writes a standalone point-in-time copy of the session,
	// keyed by checkpoint ID.
	SaveSnapshot(ctx context.Context, checkpointID string, s *Session) error

	// NextCounter returns the next checkpoint counter value and advances the
	// persisted counter. There is no transactional coupling with Save: a
	// crash in between leaves a gap in the sequence, never a reuse.
	NextCounter(ctx context.Context) (int, error)

	// EnsureCounter seeds the checkpoint counter if it does not exist yet.
	// An existing counter is left untouched so checkpoint IDs stay unique
	// across session re-initialization.
	EnsureCounter(ctx context.Context) error

	// Exists reports whether a session document is present.
	Exists(ctx context.Context) (bool, error)
}
