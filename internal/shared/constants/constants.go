package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

// Names inside the audit directory. Other tools parse these files, so the
// layout is a compatibility contract.
const (
	SessionStateDir    = "session_state"
	CheckpointsDir     = "checkpoints"
	PagesDir           = "pages"
	ReportsDir         = "reports"
	SessionFileName    = "current_session.json"
	CounterFileName    = "checkpoint_counter.txt"
	MasterLogFileName  = "master_audit.log"
	TelemetryFileName  = "telemetry.jsonl"
)

const (
	// RequestTimeout bounds the main page fetch of every phase.
	RequestTimeout = 10 * time.Second
	// ProbeTimeout bounds short probes (server reachability, 404 route).
	ProbeTimeout = 5 * time.Second
	// BodyCaptureLimitBytes caps how many bytes of a response body are read.
	BodyCaptureLimitBytes = 10 << 20
	// PagePause is the courtesy pause between page audits in a full run.
	PagePause = time.Second
)
