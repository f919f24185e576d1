package cmd

import (
	"path/filepath"
	"testing"
)

func TestValidatePageKey(t *testing.T) {
	valid := []string{"home", "ai-assistant", "image-cataloging", "page2"}
	for _, key := range valid {
		if err := validatePageKey(key); err != nil {
			t.Fatalf("expected key %s to be valid: %v", key, err)
		}
	}

	invalid := []string{"", ".", "..", "bad/key", `bad\key`, "Home", "page key", "page_key"}
	for _, key := range invalid {
		if err := validatePageKey(key); err == nil {
			t.Fatalf("expected key %s to be rejected", key)
		}
	}
}

func TestResolveAuditPath(t *testing.T) {
	base := t.TempDir()

	path, err := resolveAuditPath(base, "pages", "home_summary.md")
	if err != nil {
		t.Fatalf("resolveAuditPath failed: %v", err)
	}
	if path != filepath.Join(base, "pages", "home_summary.md") {
		t.Fatalf("unexpected resolved path: %s", path)
	}
}

func TestResolveAuditPathRejectsEscape(t *testing.T) {
	if _, err := resolveAuditPath(t.TempDir(), "..", "outside.txt"); err == nil {
		t.Fatal("expected error for path escaping the audit directory")
	}
}
