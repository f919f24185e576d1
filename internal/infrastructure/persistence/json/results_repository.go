package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nexless/storeaudit/internal/domain/pages"
	consts "github.com/nexless/storeaudit/internal/shared/constants"
	sharedErrors "github.com/nexless/storeaudit/internal/shared/errors"
	"github.com/nexless/storeaudit/internal/shared/security"
)

// ResultsRepository implements pages.Repository on the pages/ directory of
// the audit layout. Batches live in <page>_<phase>_results.json, summaries
// in <page>_summary.md.
type ResultsRepository struct {
	dir string
	mu  sync.Mutex
}

var _ pages.Repository = (*ResultsRepository)(nil)

// NewResultsRepository creates the repository and its directory.
func NewResultsRepository(auditDir string) (*ResultsRepository, error) {
	if auditDir == "" {
		return nil, fmt.Errorf("audit directory cannot be empty")
	}

	dir := filepath.Join(auditDir, consts.PagesDir)
	if err := os.MkdirAll(dir, consts.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	return &ResultsRepository{dir: dir}, nil
}

// SaveResults writes the batch, replacing any earlier batch for the same
// page and phase.
func (r *ResultsRepository) SaveResults(ctx context.Context, batch *pages.ResultsBatch) error {
	if batch == nil || batch.Page == "" || batch.TestPhase == "" {
		return fmt.Errorf("%w: results batch needs page and phase", sharedErrors.ErrInvalidData)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := fmt.Sprintf("%s_%s_results.json", batch.Page, batch.TestPhase)
	path, err := security.ResolveWithin(r.dir, name)
	if err != nil {
		return fmt.Errorf("resolve results path: %w", err)
	}

	return writeJSONAtomic(path, batch)
}

// SaveSummary writes the page's markdown summary.
func (r *ResultsRepository) SaveSummary(ctx context.Context, page, content string) error {
	if page == "" {
		return fmt.Errorf("%w: page name cannot be empty", sharedErrors.ErrInvalidData)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := security.ResolveWithin(r.dir, page+"_summary.md")
	if err != nil {
		return fmt.Errorf("resolve summary path: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), consts.DefaultFilePerm); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// LoadSummary returns the stored summary for the page. A missing summary
// surfaces as a wrapped fs.ErrNotExist.
func (r *ResultsRepository) LoadSummary(ctx context.Context, page string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := security.ResolveWithin(r.dir, page+"_summary.md")
	if err != nil {
		return "", fmt.Errorf("resolve summary path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read summary for %s: %w", page, err)
	}
	return string(data), nil
}

// ListBatches loads every stored results batch in file-name order. Batches
// that cannot be parsed are skipped so a single corrupt file never blocks
// report generation.
func (r *ResultsRepository) ListBatches(ctx context.Context) ([]*pages.ResultsBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	var batches []*pages.ResultsBatch
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_results.json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			continue
		}
		var b pages.ResultsBatch
		if err := json.Unmarshal(data, &b); err != nil {
			continue
		}
		batches = append(batches, &b)
	}
	return batches, nil
}
