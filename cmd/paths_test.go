package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newPathsTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "paths"}
	cmd.Flags().String("audit-dir", "", "")
	cmd.Flags().String("base-url", "", "")
	return cmd
}

func TestResolveAuditDirDefault(t *testing.T) {
	cmd := newPathsTestCommand()

	dir, err := resolveAuditDir(cmd)
	if err != nil {
		t.Fatalf("resolveAuditDir() failed: %v", err)
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("Expected absolute path, got: %s", dir)
	}

	if !strings.HasSuffix(dir, "audit_logs") {
		t.Errorf("Expected default path to end with audit_logs, got: %s", dir)
	}
}

func TestResolveAuditDirFlag(t *testing.T) {
	cmd := newPathsTestCommand()
	tmp := t.TempDir()

	if err := cmd.Flags().Set("audit-dir", tmp); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	dir, err := resolveAuditDir(cmd)
	if err != nil {
		t.Fatalf("resolveAuditDir() failed: %v", err)
	}

	if dir != tmp {
		t.Errorf("Expected %s, got %s", tmp, dir)
	}
}

func TestResolveBaseURLDefault(t *testing.T) {
	cmd := newPathsTestCommand()

	if got := resolveBaseURL(cmd); got != defaultBaseURL {
		t.Errorf("Expected %s, got %s", defaultBaseURL, got)
	}
}

func TestResolveBaseURLTrimsTrailingSlash(t *testing.T) {
	cmd := newPathsTestCommand()

	if err := cmd.Flags().Set("base-url", "http://127.0.0.1:4000/"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	if got := resolveBaseURL(cmd); got != "http://127.0.0.1:4000" {
		t.Errorf("Expected trimmed URL, got %s", got)
	}
}

func TestResolveBaseURLAddsScheme(t *testing.T) {
	cmd := newPathsTestCommand()

	if err := cmd.Flags().Set("base-url", "localhost:4000"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	if got := resolveBaseURL(cmd); got != "http://localhost:4000" {
		t.Errorf("Expected scheme-defaulted URL, got %s", got)
	}
}
