package checker

import (
	"context"
	"time"
)

// Test result statuses as persisted in results batches.
const (
	StatusPass = "PASS"
	StatusWarn = "WARN"
	StatusFail = "FAIL"
	StatusInfo = "INFO"
)

// Finding severities. Severity is a business classification driving the
// health score, not an exception hierarchy.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// TestResult represents one sub-check outcome within a phase. Persisted per
// (page, phase) as a batch and never mutated after write.
type TestResult struct {
	Test    string `json:"test"`
	Status  string `json:"status"`
	Details string `json:"details"`
}

// Tally counts findings by severity accumulated during a phase.
type Tally struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

func (t *Tally) add(severity string) {
	switch severity {
	case SeverityCritical:
		t.Critical++
	case SeverityHigh:
		t.High++
	case SeverityMedium:
		t.Medium++
	case SeverityLow:
		t.Low++
	}
}

// Total returns the number of tallied findings.
func (t Tally) Total() int {
	return t.Critical + t.High + t.Medium + t.Low
}

// PhaseResult is the rolled-up outcome of one phase against one page.
type PhaseResult struct {
	Phase   string
	Passed  bool
	Results []TestResult
	Tally   Tally
}

// Target identifies one page under audit.
type Target struct {
	Key  string
	Name string
	URL  string
}

// Response is what a phase sees of an HTTP exchange.
type Response struct {
	StatusCode int
	Elapsed    time.Duration
	Body       []byte
}

// Fetcher issues one GET and reports status, elapsed time, and body.
// Implementations must honor the per-call timeout and return an error only
// for network-level failures (connect, timeout, DNS), never for HTTP status
// codes.
type Fetcher interface {
	Get(ctx context.Context, url string, timeout time.Duration) (*Response, error)
}

// Phase is one of the four independent check groups run per page.
type Phase interface {
	// Run executes the phase's sub-checks against the target. Network
	// failures are converted into results, never returned.
	Run(ctx context.Context, target Target) PhaseResult

	// Name returns the phase name as used in checkpoints and file names
	// (e.g. "accessibility").
	Name() string
}

// record appends a result and tallies its severity when one applies.
func record(pr *PhaseResult, test, status, details, severity string) {
	pr.Results = append(pr.Results, TestResult{Test: test, Status: status, Details: details})
	if severity != "" {
		pr.Tally.add(severity)
	}
}

// anyFailed reports whether any sub-check in the set is a FAIL.
func anyFailed(results []TestResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
