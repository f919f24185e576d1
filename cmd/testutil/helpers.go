package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	consts "github.com/nexless/storeaudit/internal/shared/constants"
	"github.com/nexless/storeaudit/internal/shared/security"
)

// AppContext mirrors the command-layer application context.
// This is redeclared here to avoid circular imports.
type AppContext struct {
	Logger   *zap.SugaredLogger
	AuditDir string
	BaseURL  string
}

// TestEnv holds test environment configuration and cleanup functions.
type TestEnv struct {
	TmpDir       string
	AuditDir     string
	BaseURL      string
	AppCtx       *AppContext
	cleanupFuncs []func()
	t            *testing.T
}

// NewTestEnv creates a new test environment with automatic cleanup.
// Usage:
//
//	env := testutil.NewTestEnv(t)
//	defer env.Cleanup()
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir() // Automatically cleaned up by Go test framework
	auditDir := filepath.Join(tmpDir, "audit_logs")

	if err := os.MkdirAll(auditDir, consts.DefaultDirPerm); err != nil {
		t.Fatalf("Failed to create test audit directory: %v", err)
	}

	env := &TestEnv{
		TmpDir:       tmpDir,
		AuditDir:     auditDir,
		BaseURL:      "http://localhost:3000",
		t:            t,
		cleanupFuncs: []func(){},
	}

	env.AppCtx = &AppContext{
		Logger:   nil, // Most tests don't need a real logger
		AuditDir: auditDir,
		BaseURL:  env.BaseURL,
	}

	return env
}

// WithBaseURL points the environment at a different storefront origin,
// typically an httptest server.
func (e *TestEnv) WithBaseURL(baseURL string) *TestEnv {
	e.BaseURL = baseURL
	e.AppCtx.BaseURL = baseURL
	return e
}

// WithLogger sets a custom logger for tests that need one.
func (e *TestEnv) WithLogger(logger *zap.SugaredLogger) *TestEnv {
	e.AppCtx.Logger = logger
	return e
}

// AddCleanup adds a cleanup function to be called when Cleanup() is called.
// Cleanup functions are called in reverse order (LIFO).
func (e *TestEnv) AddCleanup(fn func()) {
	e.cleanupFuncs = append([]func(){fn}, e.cleanupFuncs...)
}

// Cleanup runs all registered cleanup functions.
// Typically called with defer: defer env.Cleanup()
func (e *TestEnv) Cleanup() {
	for _, fn := range e.cleanupFuncs {
		fn()
	}
}

// CreateFile creates a file in the test environment with the given content.
// The file path is relative to the audit directory.
func (e *TestEnv) CreateFile(relativePath string, content []byte) string {
	e.t.Helper()

	fullPath := resolveAuditPath(e.AuditDir, relativePath, e.t)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, consts.DefaultDirPerm); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, consts.DefaultFilePerm); err != nil {
		e.t.Fatalf("Failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// ReadFile reads a file from the test environment.
// The file path is relative to the audit directory.
func (e *TestEnv) ReadFile(relativePath string) []byte {
	e.t.Helper()

	fullPath := resolveAuditPath(e.AuditDir, relativePath, e.t)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		e.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}

	return content
}

// FileExists checks if a file exists in the test environment.
func (e *TestEnv) FileExists(relativePath string) bool {
	fullPath := resolveAuditPath(e.AuditDir, relativePath, e.t)
	_, err := os.Stat(fullPath)
	return err == nil
}

// MustNotExist fails the test if the file exists.
func (e *TestEnv) MustNotExist(relativePath string) {
	e.t.Helper()
	if e.FileExists(relativePath) {
		e.t.Fatalf("File %s should not exist but does", relativePath)
	}
}

// MustExist fails the test if the file does not exist.
func (e *TestEnv) MustExist(relativePath string) {
	e.t.Helper()
	if !e.FileExists(relativePath) {
		e.t.Fatalf("File %s should exist but does not", relativePath)
	}
}

func resolveAuditPath(baseDir, relativePath string, t *testing.T) string {
	t.Helper()
	path, err := security.ResolveWithin(baseDir, relativePath)
	if err != nil {
		t.Fatalf("invalid test path %s: %v", relativePath, err)
	}
	return path
}
