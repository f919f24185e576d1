package application

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	auditapp "github.com/nexless/storeaudit/internal/application/audit"
	"github.com/nexless/storeaudit/internal/application/checkpoint"
	"github.com/nexless/storeaudit/internal/checker"
	"github.com/nexless/storeaudit/internal/domain/pages"
	"github.com/nexless/storeaudit/internal/domain/session"
	"github.com/nexless/storeaudit/internal/infrastructure/persistence/json"
	"github.com/nexless/storeaudit/internal/registry"
	"github.com/nexless/storeaudit/internal/report"
)

// Config carries everything the container needs to assemble the service graph.
type Config struct {
	AuditDir string
	BaseURL  string
	Registry *registry.Registry
	Logger   *zap.SugaredLogger

	// RequestTimeout caps every outgoing request when > 0. Individual checks
	// keep their own, usually tighter, per-call deadlines.
	RequestTimeout time.Duration
}

// Container holds the repositories and services behind the CLI commands.
// This is a simple dependency injection container
type Container struct {
	// Repositories
	Sessions session.Repository
	Pages    pages.Repository

	// Services
	Registry     *registry.Registry
	Recorder     *checkpoint.Recorder
	Reports      *report.Builder
	Orchestrator *auditapp.Orchestrator
}

// NewContainer creates a new application service container
func NewContainer(cfg Config) (*Container, error) {
	sessions, err := json.NewSessionRepository(cfg.AuditDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create session repository: %w", err)
	}

	pagesRepo, err := json.NewResultsRepository(cfg.AuditDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create results repository: %w", err)
	}

	reports, err := report.NewBuilder(cfg.AuditDir, sessions, pagesRepo, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create report builder: %w", err)
	}

	client := checker.NewClient()
	if cfg.RequestTimeout > 0 {
		client.HTTPClient.Timeout = cfg.RequestTimeout
	}

	recorder := checkpoint.NewRecorder(sessions, cfg.Logger)
	orchestrator := auditapp.NewOrchestrator(sessions, pagesRepo, recorder, cfg.Registry, client, reports, cfg.Logger, cfg.BaseURL)

	return &Container{
		Sessions:     sessions,
		Pages:        pagesRepo,
		Registry:     cfg.Registry,
		Recorder:     recorder,
		Reports:      reports,
		Orchestrator: orchestrator,
	}, nil
}
