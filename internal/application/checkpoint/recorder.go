// Package checkpoint implements the durable checkpoint trail: numbered macro
// checkpoints with full-session snapshots, and lightweight micro checkpoints
// marking phase transitions inside a page audit.
package checkpoint

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexless/storeaudit/internal/domain/session"
)

// Recorder issues checkpoint numbers from the persisted counter and writes
// checkpoint records through the session repository.
type Recorder struct {
	repo   session.Repository
	logger *zap.SugaredLogger
}

// NewRecorder creates a recorder backed by the given repository.
func NewRecorder(repo session.Repository, logger *zap.SugaredLogger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Macro records a page-completion checkpoint. On SUCCESS the page moves into
// completed and the completion percentage is recomputed; on FAILED the page
// stays in remaining so a later run can retry it. The updated document is
// saved, then a full-session snapshot is written under the checkpoint ID.
func (r *Recorder) Macro(ctx context.Context, sess *session.Session, page, status string) (session.Checkpoint, error) {
	counter, err := r.repo.NextCounter(ctx)
	if err != nil {
		return session.Checkpoint{}, fmt.Errorf("issue checkpoint number: %w", err)
	}

	cp := session.NewMacro(counter, page, status)
	r.logger.Infof("Creating MACRO checkpoint: %s", cp.ID)

	sess.AppendCheckpoint(cp)
	if status == session.StatusSuccess {
		sess.CompletePage(page)
	} else {
		sess.FinishPage(page)
	}

	if err := r.repo.Save(ctx, sess); err != nil {
		return session.Checkpoint{}, fmt.Errorf("save session: %w", err)
	}
	if err := r.repo.SaveSnapshot(ctx, cp.ID, sess); err != nil {
		return session.Checkpoint{}, fmt.Errorf("write snapshot %s: %w", cp.ID, err)
	}

	r.logger.Infof("MACRO checkpoint %s created", cp.ID)
	return cp, nil
}

// Micro records a phase-transition checkpoint. Only the history grows: no
// snapshot is written and progress does not change.
func (r *Recorder) Micro(ctx context.Context, sess *session.Session, page, phase, status string) (session.Checkpoint, error) {
	counter, err := r.repo.NextCounter(ctx)
	if err != nil {
		return session.Checkpoint{}, fmt.Errorf("issue checkpoint number: %w", err)
	}

	cp := session.NewMicro(counter, page, phase, status)
	r.logger.Infof("Recording MICRO checkpoint: %s", cp.ID)

	sess.AppendCheckpoint(cp)
	if err := r.repo.Save(ctx, sess); err != nil {
		return session.Checkpoint{}, fmt.Errorf("save session: %w", err)
	}
	return cp, nil
}
