// Package session holds the audit session aggregate: the single JSON document
// that is the source of truth for audit progress, error tallies, and the
// checkpoint history. The serialized field names are a compatibility contract
// with the files other tooling reads, so the document shape is the domain
// model itself rather than a DTO mapping.
package session

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Page audit statuses as persisted in checkpoints and summaries.
const (
	StatusSuccess    = "SUCCESS"
	StatusFailed     = "FAILED"
	StatusInProgress = "IN_PROGRESS"
	StatusWarning    = "WARNING"
)

// Network states tracked in recovery metadata.
const (
	NetworkUnknown     = "unknown"
	NetworkReachable   = "reachable"
	NetworkUnreachable = "unreachable"
)

// Severity weights for the health score.
const (
	weightCritical = 25
	weightHigh     = 10
	weightMedium   = 5
	weightLow      = 1
)

// Operation records what the audit was doing when the session was last saved,
// for crash diagnosis.
type Operation struct {
	Page      string    `json:"page"`
	Phase     string    `json:"phase"`
	Step      string    `json:"step"`
	StartedAt time.Time `json:"started_at"`
}

// Progress partitions the page set: completed and remaining are mutually
// exclusive and together cover every registered page; in-progress pages stay
// in remaining until their macro checkpoint succeeds.
type Progress struct {
	PagesCompleted       []string `json:"pages_completed"`
	PagesInProgress      []string `json:"pages_in_progress"`
	PagesRemaining       []string `json:"pages_remaining"`
	TotalPages           int      `json:"total_pages"`
	CompletionPercentage float64  `json:"completion_percentage"`
}

// ErrorSummary tallies findings by severity; it feeds the health score.
type ErrorSummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// Add folds finding counts into the tally.
func (e *ErrorSummary) Add(critical, high, medium, low int) {
	e.Critical += critical
	e.High += high
	e.Medium += medium
	e.Low += low
	e.Total += critical + high + medium + low
}

// HealthScore derives the 0-100 metric penalizing findings by severity.
func (e ErrorSummary) HealthScore() int {
	score := 100 - weightCritical*e.Critical - weightHigh*e.High - weightMedium*e.Medium - weightLow*e.Low
	if score < 0 {
		return 0
	}
	return score
}

// Grade maps a health score onto the reporting bands.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "EXCELLENT"
	case score >= 75:
		return "GOOD"
	case score >= 60:
		return "FAIR"
	default:
		return "POOR"
	}
}

// RecoveryMetadata carries the hints a restarted run needs to pick up where
// the last one stopped.
type RecoveryMetadata struct {
	NetworkState         string `json:"network_state"`
	LastSuccessfulAction string `json:"last_successful_action"`
	ResumePage           string `json:"resume_page,omitempty"`
}

// Session is the audit session document. Created once per audit run, mutated
// in place on every checkpoint or error event, never deleted (re-init
// overwrites it).
type Session struct {
	SessionID         string           `json:"session_id"`
	AuditStartTime    time.Time        `json:"audit_start_time"`
	LastCheckpoint    *Checkpoint      `json:"last_checkpoint"`
	CurrentOperation  Operation        `json:"current_operation"`
	Progress          Progress         `json:"progress"`
	CheckpointHistory []Checkpoint     `json:"checkpoint_history"`
	ErrorSummary      ErrorSummary     `json:"error_summary"`
	RecoveryMetadata  RecoveryMetadata `json:"recovery_metadata"`
}

// New creates a fresh session covering the given page keys in audit order.
func New(pageKeys []string) *Session {
	now := time.Now().UTC()
	remaining := make([]string, len(pageKeys))
	copy(remaining, pageKeys)

	return &Session{
		SessionID:      uuid.New().String(),
		AuditStartTime: now,
		LastCheckpoint: nil,
		CurrentOperation: Operation{
			Phase:     "initialization",
			Step:      "setup",
			StartedAt: now,
		},
		Progress: Progress{
			PagesCompleted:       []string{},
			PagesInProgress:      []string{},
			PagesRemaining:       remaining,
			TotalPages:           len(pageKeys),
			CompletionPercentage: 0.0,
		},
		CheckpointHistory: []Checkpoint{NewInit(now)},
		ErrorSummary:      ErrorSummary{},
		RecoveryMetadata: RecoveryMetadata{
			NetworkState:         NetworkUnknown,
			LastSuccessfulAction: "session_initialization",
		},
	}
}

// SetOperation updates the crash-diagnosis pointer.
func (s *Session) SetOperation(page, phase, step string) {
	s.CurrentOperation = Operation{
		Page:      page,
		Phase:     phase,
		Step:      step,
		StartedAt: time.Now().UTC(),
	}
}

// BeginPage marks a page audit as underway. The page stays in remaining until
// its macro checkpoint succeeds.
func (s *Session) BeginPage(page string) {
	if !contains(s.Progress.PagesInProgress, page) {
		s.Progress.PagesInProgress = append(s.Progress.PagesInProgress, page)
	}
	s.SetOperation(page, "starting", "initialization")
}

// CompletePage moves a page from remaining to completed. The move is
// idempotent: a page already completed is not moved or counted again.
func (s *Session) CompletePage(page string) {
	if !contains(s.Progress.PagesCompleted, page) {
		s.Progress.PagesCompleted = append(s.Progress.PagesCompleted, page)
	}
	s.Progress.PagesRemaining = remove(s.Progress.PagesRemaining, page)
	s.Progress.PagesInProgress = remove(s.Progress.PagesInProgress, page)
	s.recomputeCompletion()
	s.updateResumeHint()
}

// FinishPage clears the in-progress marker without completing the page, used
// when a page audit ends in FAILED.
func (s *Session) FinishPage(page string) {
	s.Progress.PagesInProgress = remove(s.Progress.PagesInProgress, page)
	s.updateResumeHint()
}

// AppendCheckpoint adds a record to the history. Macro records also become the
// session's last-checkpoint pointer.
func (s *Session) AppendCheckpoint(cp Checkpoint) {
	if cp.Type == KindMacro {
		pinned := cp
		s.LastCheckpoint = &pinned
	}
	s.CheckpointHistory = append(s.CheckpointHistory, cp)
	s.RecoveryMetadata.LastSuccessfulAction = "checkpoint_" + cp.ID
}

// SetNetworkState records the last observed reachability of the audit target.
func (s *Session) SetNetworkState(state string) {
	s.RecoveryMetadata.NetworkState = state
}

func (s *Session) recomputeCompletion() {
	if s.Progress.TotalPages == 0 {
		s.Progress.CompletionPercentage = 0.0
		return
	}
	pct := float64(len(s.Progress.PagesCompleted)*100) / float64(s.Progress.TotalPages)
	s.Progress.CompletionPercentage = math.Round(pct*10) / 10
}

func (s *Session) updateResumeHint() {
	if len(s.Progress.PagesRemaining) == 0 {
		s.RecoveryMetadata.ResumePage = ""
		return
	}
	s.RecoveryMetadata.ResumePage = s.Progress.PagesRemaining[0]
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
