package checker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	consts "github.com/nexless/storeaudit/internal/shared/constants"
)

// ErrorHandlingPhase probes how the page behaves around failures: whether a
// bad route yields a proper 404 and whether the page itself leaks error text.
// The phase is advisory and never fails the page.
type ErrorHandlingPhase struct {
	Client Fetcher
}

// Name returns the phase name.
func (p *ErrorHandlingPhase) Name() string { return "error_handling" }

// Run requests a synthesized invalid route under the page URL, then rescans
// the page body for error markers. Passed is always true.
func (p *ErrorHandlingPhase) Run(ctx context.Context, target Target) PhaseResult {
	pr := PhaseResult{Phase: p.Name(), Passed: true}

	invalid := fmt.Sprintf("%s/invalid-route-test-%d",
		strings.TrimRight(target.URL, "/"), time.Now().Unix())
	resp, err := p.Client.Get(ctx, invalid, consts.ProbeTimeout)
	switch {
	case err != nil:
		record(&pr, "404_handling", StatusInfo, "connection_error", "")
	case resp.StatusCode == http.StatusNotFound:
		record(&pr, "404_handling", StatusPass, "proper_404", "")
	default:
		record(&pr, "404_handling", StatusWarn, fmt.Sprintf("status_%d", resp.StatusCode), SeverityLow)
	}

	resp, err = p.Client.Get(ctx, target.URL, consts.RequestTimeout)
	if err != nil {
		record(&pr, "error_boundaries", StatusWarn, err.Error(), "")
		return pr
	}

	body := strings.ToLower(string(resp.Body))
	if containsAny(body, errorMarkers) {
		record(&pr, "error_boundaries", StatusInfo, "content_found", "")
	} else {
		record(&pr, "error_boundaries", StatusPass, "no_errors", "")
	}
	return pr
}
