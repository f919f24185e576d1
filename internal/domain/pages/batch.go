package pages

import (
	"time"

	"github.com/nexless/storeaudit/internal/checker"
)

// ResultsBatch is the persisted outcome of one phase run against one page.
// Batches are written once per (page, phase) and never mutated; a re-run of
// the same page overwrites the previous batch.
type ResultsBatch struct {
	Page      string               `json:"page"`
	TestPhase string               `json:"test_phase"`
	Timestamp time.Time            `json:"timestamp"`
	Results   []checker.TestResult `json:"results"`
}

// NewResultsBatch stamps a batch with the current UTC time.
func NewResultsBatch(page, phase string, results []checker.TestResult) *ResultsBatch {
	return &ResultsBatch{
		Page:      page,
		TestPhase: phase,
		Timestamp: time.Now().UTC(),
		Results:   results,
	}
}

// HasFailures reports whether any result in the batch is a FAIL.
func (b *ResultsBatch) HasFailures() bool {
	for _, r := range b.Results {
		if r.Status == checker.StatusFail {
			return true
		}
	}
	return false
}

// StatusOf returns the status recorded for the named test, or "" when the
// batch has no such result.
func (b *ResultsBatch) StatusOf(test string) string {
	for _, r := range b.Results {
		if r.Test == test {
			return r.Status
		}
	}
	return ""
}
