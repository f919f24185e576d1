package json

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/nexless/storeaudit/internal/checker"
	"github.com/nexless/storeaudit/internal/domain/pages"
)

func newTestResultsRepo(t *testing.T) (*ResultsRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := NewResultsRepository(dir)
	if err != nil {
		t.Fatalf("NewResultsRepository returned error: %v", err)
	}
	return repo, dir
}

func TestResultsRepository_SaveResultsWritesEnvelope(t *testing.T) {
	repo, dir := newTestResultsRepo(t)

	batch := pages.NewResultsBatch("home", "accessibility", []checker.TestResult{
		{Test: "http_status", Status: checker.StatusPass, Details: "200"},
		{Test: "response_time", Status: checker.StatusPass, Details: "120ms"},
	})
	if err := repo.SaveResults(context.Background(), batch); err != nil {
		t.Fatalf("SaveResults returned error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "pages", "home_accessibility_results.json"))
	if err != nil {
		t.Fatalf("results file not written: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("results file is not valid JSON: %v", err)
	}
	if doc["page"] != "home" || doc["test_phase"] != "accessibility" {
		t.Errorf("unexpected envelope: %v", doc)
	}
	if _, ok := doc["timestamp"]; !ok {
		t.Error("envelope missing timestamp")
	}
	results, ok := doc["results"].([]any)
	if !ok || len(results) != 2 {
		t.Fatalf("unexpected results array: %v", doc["results"])
	}
	first, ok := results[0].(map[string]any)
	if !ok || first["test"] != "http_status" || first["status"] != "PASS" || first["details"] != "200" {
		t.Errorf("unexpected first result: %v", results[0])
	}
}

func TestResultsRepository_SaveResultsRejectsEmptyBatch(t *testing.T) {
	repo, _ := newTestResultsRepo(t)

	if err := repo.SaveResults(context.Background(), nil); err == nil {
		t.Error("expected error for nil batch")
	}
	if err := repo.SaveResults(context.Background(), &pages.ResultsBatch{Page: "home"}); err == nil {
		t.Error("expected error for batch without phase")
	}
}

func TestResultsRepository_ListBatches(t *testing.T) {
	repo, _ := newTestResultsRepo(t)
	ctx := context.Background()

	for _, b := range []*pages.ResultsBatch{
		pages.NewResultsBatch("home", "accessibility", []checker.TestResult{{Test: "http_status", Status: checker.StatusPass, Details: "200"}}),
		pages.NewResultsBatch("home", "functionality", []checker.TestResult{{Test: "css", Status: checker.StatusFail, Details: "no_stylesheets"}}),
		pages.NewResultsBatch("dashboard", "accessibility", []checker.TestResult{{Test: "http_status", Status: checker.StatusPass, Details: "200"}}),
	} {
		if err := repo.SaveResults(ctx, b); err != nil {
			t.Fatalf("SaveResults returned error: %v", err)
		}
	}

	batches, err := repo.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches returned error: %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if batches[0].Page != "dashboard" {
		t.Errorf("expected file-name order starting with dashboard, got %s", batches[0].Page)
	}

	failing := 0
	for _, b := range batches {
		if b.HasFailures() {
			failing++
		}
	}
	if failing != 1 {
		t.Errorf("expected exactly 1 failing batch, got %d", failing)
	}
}

func TestResultsRepository_ListBatchesSkipsCorrupt(t *testing.T) {
	repo, dir := newTestResultsRepo(t)
	ctx := context.Background()

	good := pages.NewResultsBatch("home", "accessibility", []checker.TestResult{{Test: "http_status", Status: checker.StatusPass, Details: "200"}})
	if err := repo.SaveResults(ctx, good); err != nil {
		t.Fatalf("SaveResults returned error: %v", err)
	}
	corrupt := filepath.Join(dir, "pages", "broken_navigation_results.json")
	if err := os.WriteFile(corrupt, []byte("{oops"), 0o644); err != nil {
		t.Fatalf("failed to plant corrupt batch: %v", err)
	}

	batches, err := repo.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches returned error: %v", err)
	}
	if len(batches) != 1 || batches[0].Page != "home" {
		t.Errorf("expected corrupt batch to be skipped, got %+v", batches)
	}
}

func TestResultsRepository_SummaryRoundTrip(t *testing.T) {
	repo, dir := newTestResultsRepo(t)
	ctx := context.Background()

	content := "# Page Audit Summary: home\n\n**Overall Status:** SUCCESS\n"
	if err := repo.SaveSummary(ctx, "home", content); err != nil {
		t.Fatalf("SaveSummary returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "pages", "home_summary.md")); err != nil {
		t.Fatalf("summary file not written: %v", err)
	}

	got, err := repo.LoadSummary(ctx, "home")
	if err != nil {
		t.Fatalf("LoadSummary returned error: %v", err)
	}
	if got != content {
		t.Errorf("summary mismatch: want %q, got %q", content, got)
	}
}

func TestResultsRepository_LoadSummaryMissing(t *testing.T) {
	repo, _ := newTestResultsRepo(t)

	if _, err := repo.LoadSummary(context.Background(), "ghost"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestResultsRepository_RejectsTraversal(t *testing.T) {
	repo, _ := newTestResultsRepo(t)
	ctx := context.Background()

	batch := pages.NewResultsBatch("../evil", "accessibility", nil)
	batch.Results = []checker.TestResult{{Test: "http_status", Status: checker.StatusPass, Details: "200"}}
	if err := repo.SaveResults(ctx, batch); err == nil {
		t.Error("expected traversal in page name to be rejected")
	}
	if err := repo.SaveSummary(ctx, "../evil", "x"); err == nil {
		t.Error("expected traversal in summary name to be rejected")
	}
}
