package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/nexless/storeaudit/internal/domain/session"
	consts "github.com/nexless/storeaudit/internal/shared/constants"
	sharedErrors "github.com/nexless/storeaudit/internal/shared/errors"
	"github.com/nexless/storeaudit/internal/shared/security"
)

// SessionRepository implements session.Repository on top of the audit
// directory layout: the session document under session_state/, full-session
// snapshots under checkpoints/, and the checkpoint counter as a plain-text
// integer file kept separate from the document so re-initializing a session
// never rewinds checkpoint numbering.
type SessionRepository struct {
	sessionFile  string
	counterFile  string
	snapshotsDir string
	mu           sync.Mutex
}

var _ session.Repository = (*SessionRepository)(nil)

// NewSessionRepository creates the repository and the directories it owns.
func NewSessionRepository(auditDir string) (*SessionRepository, error) {
	if auditDir == "" {
		return nil, fmt.Errorf("audit directory cannot be empty")
	}

	stateDir := filepath.Join(auditDir, consts.SessionStateDir)
	snapshotsDir := filepath.Join(auditDir, consts.CheckpointsDir)
	for _, dir := range []string{stateDir, snapshotsDir} {
		if err := os.MkdirAll(dir, consts.DefaultDirPerm); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	sessionFile := filepath.Join(stateDir, consts.SessionFileName)
	if !security.IsValidPath(sessionFile) {
		return nil, fmt.Errorf("invalid session file path: %s", sessionFile)
	}

	return &SessionRepository{
		sessionFile:  sessionFile,
		counterFile:  filepath.Join(stateDir, consts.CounterFileName),
		snapshotsDir: snapshotsDir,
	}, nil
}

// Load reads the current session document.
func (r *SessionRepository) Load(ctx context.Context) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.sessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sharedErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrSessionCorrupt, err)
	}

	return &s, nil
}

// Save atomically overwrites the whole session document: the new content is
// written to a temp file in the same directory and renamed into place.
func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return writeJSONAtomic(r.sessionFile, s)
}

// SaveSnapshot writes a standalone point-in-time copy of the session under
// checkpoints/, keyed by checkpoint ID.
func (r *SessionRepository) SaveSnapshot(ctx context.Context, checkpointID string, s *session.Session) error {
	if checkpointID == "" {
		return sharedErrors.ErrEmptyCheckpointID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := security.ResolveWithin(r.snapshotsDir, "checkpoint_"+checkpointID+".json")
	if err != nil {
		return fmt.Errorf("resolve snapshot path: %w", err)
	}

	return writeJSONAtomic(path, s)
}

// NextCounter returns the next checkpoint number and advances the persisted
// counter. A missing file starts the sequence at 1; the file always holds the
// next value to issue. There is no rollback coupling with Save: a crash after
// the write leaves a gap in the sequence, never a duplicate.
func (r *SessionRepository) NextCounter(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counter := 1
	data, err := os.ReadFile(r.counterFile)
	switch {
	case err == nil:
		counter, err = strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", sharedErrors.ErrCounterCorrupt, strings.TrimSpace(string(data)))
		}
	case !os.IsNotExist(err):
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}

	next := strconv.Itoa(counter + 1)
	if err := os.WriteFile(r.counterFile, []byte(next), consts.DefaultFilePerm); err != nil {
		return 0, fmt.Errorf("failed to advance counter: %w", err)
	}

	return counter, nil
}

// EnsureCounter seeds the counter file with 1 if it does not exist yet.
// An existing counter is left untouched so checkpoint IDs stay unique across
// session re-initialization.
func (r *SessionRepository) EnsureCounter(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.counterFile); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat counter: %w", err)
	}

	if err := os.WriteFile(r.counterFile, []byte("1"), consts.DefaultFilePerm); err != nil {
		return fmt.Errorf("failed to seed counter: %w", err)
	}
	return nil
}

// Exists reports whether a session document is present.
func (r *SessionRepository) Exists(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.sessionFile); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat session: %w", err)
	}
	return true, nil
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, consts.DefaultFilePerm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
