package session

import (
	"fmt"
	"strings"
	"time"
)

// Checkpoint kinds.
const (
	KindMacro = "MACRO"
	KindMicro = "MICRO"
	KindInit  = "INITIALIZATION"
)

// InitCheckpointID seeds every new session's history.
const InitCheckpointID = "CP_000_INIT"

// Checkpoint is an immutable, append-only progress record. Identifiers derive
// from the persisted counter and are never reused, even across process
// restarts.
type Checkpoint struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Page      string    `json:"page,omitempty"`
	Phase     string    `json:"phase,omitempty"`
	Status    string    `json:"status"`
}

// NewInit builds the session-initialization record.
func NewInit(at time.Time) Checkpoint {
	return Checkpoint{
		ID:        InitCheckpointID,
		Timestamp: at,
		Type:      KindInit,
		Status:    StatusSuccess,
	}
}

// NewMacro builds a page-completion checkpoint.
func NewMacro(counter int, page, status string) Checkpoint {
	return Checkpoint{
		ID:        MacroID(counter, page),
		Timestamp: time.Now().UTC(),
		Type:      KindMacro,
		Page:      page,
		Phase:     "complete",
		Status:    status,
	}
}

// NewMicro builds a phase-transition checkpoint.
func NewMicro(counter int, page, phase, status string) Checkpoint {
	return Checkpoint{
		ID:        MicroID(counter, page, phase),
		Timestamp: time.Now().UTC(),
		Type:      KindMicro,
		Page:      page,
		Phase:     phase,
		Status:    status,
	}
}

// MacroID formats a page-completion checkpoint identifier.
func MacroID(counter int, page string) string {
	return fmt.Sprintf("CP_%03d_%s_COMPLETE", counter, strings.ToUpper(page))
}

// MicroID formats a phase-transition checkpoint identifier.
func MicroID(counter int, page, phase string) string {
	return fmt.Sprintf("CP_%03d_%s_%s", counter, strings.ToUpper(page), strings.ToUpper(phase))
}
