// Package audit implements the audit orchestrator: the state machine that
// drives a page through its four test phases, records checkpoints at every
// transition, and runs the full multi-page audit with pacing and per-page
// failure tolerance.
package audit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nexless/storeaudit/internal/application/checkpoint"
	"github.com/nexless/storeaudit/internal/checker"
	"github.com/nexless/storeaudit/internal/domain/pages"
	"github.com/nexless/storeaudit/internal/domain/session"
	"github.com/nexless/storeaudit/internal/registry"
	"github.com/nexless/storeaudit/internal/report"
	consts "github.com/nexless/storeaudit/internal/shared/constants"
	sharedErrors "github.com/nexless/storeaudit/internal/shared/errors"
)

// gatingPhases fail the whole page when they fail. Navigation and error
// handling findings are recorded but do not flip the page outcome.
var gatingPhases = map[string]bool{
	"accessibility": true,
	"functionality": true,
}

// advisoryPhases roll a failed run up as a warning instead of a failure.
var advisoryPhases = map[string]bool{
	"error_handling": true,
}

// RunStats summarizes one full-audit run for callers that record telemetry.
type RunStats struct {
	SessionID   string
	Pages       int
	Duration    time.Duration
	HealthScore int
	ErrorsTotal int
	Report      *report.Result
}

// Orchestrator coordinates page audits across the session store, the
// checkpoint recorder, the page checkers, and the report builder. All state
// lives in the repositories; the orchestrator itself is stateless between
// calls.
type Orchestrator struct {
	sessions session.Repository
	pages    pages.Repository
	recorder *checkpoint.Recorder
	registry *registry.Registry
	fetcher  checker.Fetcher
	phases   []checker.Phase
	reports  *report.Builder
	logger   *zap.SugaredLogger
	baseURL  string
	limiter  *rate.Limiter
}

// NewOrchestrator wires the orchestrator. The four phases run in fixed order
// against every page; the limiter paces consecutive pages one second apart.
func NewOrchestrator(
	sessions session.Repository,
	pageRepo pages.Repository,
	recorder *checkpoint.Recorder,
	reg *registry.Registry,
	fetcher checker.Fetcher,
	reports *report.Builder,
	logger *zap.SugaredLogger,
	baseURL string,
) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		pages:    pageRepo,
		recorder: recorder,
		registry: reg,
		fetcher:  fetcher,
		phases: []checker.Phase{
			&checker.AccessibilityPhase{Client: fetcher},
			&checker.NavigationPhase{Client: fetcher},
			&checker.FunctionalityPhase{Client: fetcher},
			&checker.ErrorHandlingPhase{Client: fetcher},
		},
		reports: reports,
		logger:  logger,
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Every(consts.PagePause), 1),
	}
}

// Initialize creates a fresh session covering every registered page and
// overwrites any existing one. The checkpoint counter is seeded only when
// missing, so checkpoint IDs stay unique across re-initialization.
func (o *Orchestrator) Initialize(ctx context.Context) (*session.Session, error) {
	sess := session.New(o.registry.Keys())

	o.logger.Info("Initializing audit session")
	o.logger.Infof("Audit started: %s", sess.AuditStartTime.Format(time.RFC3339))
	o.logger.Infof("Session ID: %s", sess.SessionID)

	if err := o.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if err := o.sessions.EnsureCounter(ctx); err != nil {
		return nil, err
	}

	o.logger.Info("Initial session state created")
	return sess, nil
}

// AuditPage runs all four phases against one page and returns the page's
// overall status. The page fails overall only when a gating phase fails;
// every phase still runs regardless of earlier outcomes.
func (o *Orchestrator) AuditPage(ctx context.Context, pageKey string) (string, error) {
	page, err := o.registry.Get(pageKey)
	if err != nil {
		return "", err
	}

	sess, err := o.loadOrInit(ctx)
	if err != nil {
		return "", err
	}

	url := page.URL(o.baseURL)
	o.logger.Infof("Auditing page: %s (%s)", pageKey, url)

	sess.BeginPage(pageKey)
	if err := o.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	target := checker.Target{Key: page.Key, Name: page.Name, URL: url}
	overall := session.StatusSuccess
	phaseResults := make([]string, 0, len(o.phases))

	for i, phase := range o.phases {
		name := phase.Name()
		o.logger.Infof("Phase %d: %s tests", i+1, name)

		sess.SetOperation(pageKey, name, "running")
		if _, err := o.recorder.Micro(ctx, sess, pageKey, name+"_start", session.StatusInProgress); err != nil {
			return "", err
		}

		pr := phase.Run(ctx, target)

		if err := o.pages.SaveResults(ctx, pages.NewResultsBatch(pageKey, name, pr.Results)); err != nil {
			return "", err
		}
		o.logger.Infof("Test results saved: %s_%s_results.json", pageKey, name)

		sess.ErrorSummary.Add(pr.Tally.Critical, pr.Tally.High, pr.Tally.Medium, pr.Tally.Low)

		endStatus := session.StatusSuccess
		verdict := report.PhasePass
		if !pr.Passed {
			if advisoryPhases[name] {
				endStatus = session.StatusWarning
				verdict = report.PhaseWarn
			} else {
				endStatus = session.StatusFailed
				verdict = report.PhaseFail
			}
			if gatingPhases[name] {
				overall = session.StatusFailed
			}
		}
		if _, err := o.recorder.Micro(ctx, sess, pageKey, name+"_complete", endStatus); err != nil {
			return "", err
		}
		phaseResults = append(phaseResults, report.PhaseLine(name, verdict))

		if pr.Passed {
			o.logger.Infof("%s tests: PASSED", name)
		} else {
			o.logger.Warnf("%s tests: %s", name, endStatus)
		}
	}

	summary := report.PageSummary(pageKey, url, overall, phaseResults, time.Now())
	if err := o.pages.SaveSummary(ctx, pageKey, summary); err != nil {
		return "", err
	}
	o.logger.Infof("Page summary created: %s_summary.md", pageKey)

	if _, err := o.recorder.Macro(ctx, sess, pageKey, overall); err != nil {
		return "", err
	}

	o.logger.Infof("Page audit complete: %s (%s)", pageKey, overall)
	return overall, nil
}

// FullAudit probes the target, audits every planned page with a one-second
// pause between pages, then generates the final report. A failed page audit
// is logged and the run moves on to the next page. With resume set, only the
// session's remaining pages are audited; otherwise every registered page is.
func (o *Orchestrator) FullAudit(ctx context.Context, resume bool) (*RunStats, error) {
	start := time.Now()
	o.logger.Info("Starting full inventory system audit")

	sess, err := o.loadOrInit(ctx)
	if err != nil {
		return nil, err
	}

	if err := o.ProbeServer(ctx, sess); err != nil {
		o.logger.Error("Development server is not running. Please start it first:")
		o.logger.Errorf("  npm run dev  (expected at %s)", o.baseURL)
		return nil, err
	}

	keys := o.registry.Keys()
	if resume {
		keys = append([]string(nil), sess.Progress.PagesRemaining...)
	}
	total := len(keys)

	o.logger.Infof("Audit plan: %d pages to audit", total)
	for i, key := range keys {
		if page, err := o.registry.Get(key); err == nil {
			o.logger.Infof("  %d. %s (%s)", i+1, key, page.URL(o.baseURL))
		}
	}
	o.logger.Info("Beginning page audits")

	for i, key := range keys {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		o.logger.Infof("Auditing page %d/%d: %s", i+1, total, key)
		if _, err := o.AuditPage(ctx, key); err != nil {
			o.logger.Errorf("Page audit failed: %s: %v", key, err)
			continue
		}
	}

	duration := time.Since(start)
	o.logger.Info("Full audit completed")
	o.logger.Infof("Total time: %s", duration.Round(time.Second))
	o.logger.Infof("Pages audited: %d", total)

	res, err := o.reports.Generate(ctx, false)
	if err != nil {
		return nil, err
	}

	final, err := o.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &RunStats{
		SessionID:   final.SessionID,
		Pages:       total,
		Duration:    duration,
		HealthScore: res.HealthScore,
		ErrorsTotal: final.ErrorSummary.Total,
		Report:      res,
	}, nil
}

// ProbeServer verifies the audit target answers at its base URL and records
// the observed reachability in the session's recovery metadata.
func (o *Orchestrator) ProbeServer(ctx context.Context, sess *session.Session) error {
	resp, err := o.fetcher.Get(ctx, o.baseURL, consts.ProbeTimeout)
	if err != nil || resp.StatusCode != http.StatusOK {
		sess.SetNetworkState(session.NetworkUnreachable)
		if saveErr := o.sessions.Save(ctx, sess); saveErr != nil {
			return fmt.Errorf("save session: %w", saveErr)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", sharedErrors.ErrServerUnreachable, err)
		}
		return fmt.Errorf("%w: status %d", sharedErrors.ErrServerUnreachable, resp.StatusCode)
	}

	sess.SetNetworkState(session.NetworkReachable)
	if err := o.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (o *Orchestrator) loadOrInit(ctx context.Context) (*session.Session, error) {
	sess, err := o.sessions.Load(ctx)
	if errors.Is(err, sharedErrors.ErrSessionNotFound) {
		return o.Initialize(ctx)
	}
	return sess, err
}
