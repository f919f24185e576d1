package checker

import (
	"context"
	"fmt"
	"strings"

	consts "github.com/nexless/storeaudit/internal/shared/constants"
)

// FunctionalityPhase checks that the page ships the interactive building
// blocks it needs: scripts, stylesheets, forms, buttons, and page-specific
// content.
type FunctionalityPhase struct {
	Client Fetcher
}

// Name returns the phase name.
func (p *FunctionalityPhase) Name() string { return "functionality" }

// Run records the generic asset sub-checks followed by any content probes
// registered for the target page. The phase fails when any sub-check fails.
func (p *FunctionalityPhase) Run(ctx context.Context, target Target) PhaseResult {
	pr := PhaseResult{Phase: p.Name()}

	resp, err := p.Client.Get(ctx, target.URL, consts.RequestTimeout)
	if err != nil {
		record(&pr, "network", StatusFail, err.Error(), SeverityHigh)
		return pr
	}

	body := strings.ToLower(string(resp.Body))

	if strings.Contains(body, "<script") {
		record(&pr, "javascript", StatusPass, "scripts_found", "")
	} else {
		record(&pr, "javascript", StatusWarn, "no_scripts", SeverityLow)
	}

	if strings.Contains(body, "stylesheet") || strings.Contains(body, "<style") {
		record(&pr, "css", StatusPass, "stylesheets_found", "")
	} else {
		record(&pr, "css", StatusFail, "no_stylesheets", SeverityMedium)
	}

	if forms := strings.Count(body, "<form"); forms > 0 {
		record(&pr, "forms", StatusPass, fmt.Sprintf("%d_forms", forms), "")
	} else {
		record(&pr, "forms", StatusInfo, "no_forms", "")
	}

	buttons := strings.Count(body, "<button") +
		strings.Count(body, `type="button"`) +
		strings.Count(body, `type="submit"`)
	if buttons > 0 {
		record(&pr, "buttons", StatusPass, fmt.Sprintf("%d_buttons", buttons), "")
	} else {
		record(&pr, "buttons", StatusWarn, "no_buttons", SeverityLow)
	}

	for _, probe := range contentProbes {
		if !probe.matches(target.Key) {
			continue
		}
		if containsAny(body, probe.markers) {
			record(&pr, probe.test, StatusPass, "found", "")
		} else {
			record(&pr, probe.test, probe.missingState, "missing", probe.severity)
		}
	}

	pr.Passed = !anyFailed(pr.Results)
	return pr
}
