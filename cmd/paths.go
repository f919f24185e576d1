package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nexless/storeaudit/internal/checker"
)

// resolveAuditDir returns the absolute audit directory for this invocation.
// Flag and config file values are already merged by applyConfigDefaults, so
// the precedence is flag > config > default.
func resolveAuditDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("audit-dir")
	if err != nil {
		return "", fmt.Errorf("failed to read audit-dir flag: %w", err)
	}
	if dir == "" {
		dir = defaultAuditDir
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve audit directory %s: %w", dir, err)
	}
	return abs, nil
}

// resolveBaseURL returns the storefront origin, normalized so page URLs can
// be built by appending registry paths ("localhost:3000" gains a scheme,
// trailing slashes are dropped).
func resolveBaseURL(cmd *cobra.Command) string {
	base, err := cmd.Flags().GetString("base-url")
	if err != nil || base == "" {
		base = defaultBaseURL
	}
	return checker.NormalizeOrigin(base)
}
