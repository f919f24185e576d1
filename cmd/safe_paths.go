package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nexless/storeaudit/internal/registry"
	"github.com/nexless/storeaudit/internal/shared/security"
)

// validatePageKey ensures page keys can't be used for path traversal. Keys are
// stored inside filenames, so reject separators and reserved names outright.
func validatePageKey(key string) error {
	switch key {
	case "":
		return errors.New("page key is required")
	case ".", "..":
		return fmt.Errorf("page key %q is reserved", key)
	}
	if strings.ContainsAny(key, "/\\") {
		return fmt.Errorf("page key %q must not contain path separators", key)
	}
	if !registry.ValidKey(key) {
		return fmt.Errorf("page key %q may contain only lowercase letters, digits, and hyphens", key)
	}
	return nil
}

func resolveAuditPath(auditDir string, parts ...string) (string, error) {
	return security.ResolveWithin(auditDir, parts...)
}
