package checker

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	consts "github.com/nexless/storeaudit/internal/shared/constants"
)

// AccessibilityPhase verifies the page responds, fast enough, with a
// complete-looking body.
type AccessibilityPhase struct {
	Client Fetcher
}

// Name returns the phase name.
func (p *AccessibilityPhase) Name() string { return "accessibility" }

// Run performs the status, response-time, and content-length sub-checks.
// A network-level failure is recorded as a single critical FAIL and the phase
// returns immediately with no partial results.
func (p *AccessibilityPhase) Run(ctx context.Context, target Target) PhaseResult {
	pr := PhaseResult{Phase: p.Name()}

	resp, err := p.Client.Get(ctx, target.URL, consts.RequestTimeout)
	if err != nil {
		record(&pr, "network", StatusFail, err.Error(), SeverityCritical)
		return pr
	}

	if resp.StatusCode == http.StatusOK {
		record(&pr, "http_status", StatusPass, strconv.Itoa(resp.StatusCode), "")
	} else {
		record(&pr, "http_status", StatusFail, strconv.Itoa(resp.StatusCode), SeverityHigh)
	}

	elapsed := fmt.Sprintf("%dms", resp.Elapsed.Milliseconds())
	switch {
	case resp.Elapsed < ResponseTimeGood:
		record(&pr, "response_time", StatusPass, elapsed, "")
	case resp.Elapsed < ResponseTimeSlow:
		record(&pr, "response_time", StatusWarn, elapsed, SeverityMedium)
	default:
		record(&pr, "response_time", StatusFail, elapsed, SeverityHigh)
	}

	size := fmt.Sprintf("%dbytes", len(resp.Body))
	if len(resp.Body) > MinContentBytes {
		record(&pr, "content_length", StatusPass, size, "")
	} else {
		record(&pr, "content_length", StatusWarn, size, SeverityLow)
	}

	pr.Passed = !anyFailed(pr.Results)
	return pr
}
