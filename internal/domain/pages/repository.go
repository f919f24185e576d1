package pages

import "context"

// Repository persists per-page audit artifacts: one results batch per
// (page, phase) and one markdown summary per page.
type Repository interface {
	// SaveResults writes the batch, replacing any earlier batch for the
	// same page and phase.
	SaveResults(ctx context.Context, batch *ResultsBatch) error

	// SaveSummary writes the page's markdown summary, replacing any
	// earlier one.
	SaveSummary(ctx context.Context, page, content string) error

	// LoadSummary returns the stored summary for the page.
	LoadSummary(ctx context.Context, page string) (string, error)

	// ListBatches loads every stored results batch across pages and
	// phases, in file-name order. Unreadable batches are skipped.
	ListBatches(ctx context.Context) ([]*ResultsBatch, error)
}
