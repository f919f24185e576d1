package checker

import (
	"context"
	"fmt"
	"strings"

	consts "github.com/nexless/storeaudit/internal/shared/constants"
)

// NavigationPhase scans the page body for the shared navigation chrome the
// store front renders on every screen.
type NavigationPhase struct {
	Client Fetcher
}

// Name returns the phase name.
func (p *NavigationPhase) Name() string { return "navigation" }

// Run records one result per navigation marker plus a navigation_overall
// roll-up. The phase passes when at least NavFoundPartial markers are present.
func (p *NavigationPhase) Run(ctx context.Context, target Target) PhaseResult {
	pr := PhaseResult{Phase: p.Name()}

	resp, err := p.Client.Get(ctx, target.URL, consts.RequestTimeout)
	if err != nil {
		record(&pr, "network", StatusFail, err.Error(), SeverityHigh)
		return pr
	}

	body := strings.ToLower(string(resp.Body))
	found := 0
	for _, m := range navigationMarkers {
		if strings.Contains(body, m.term) {
			record(&pr, "nav_"+m.term, StatusPass, "found", "")
			found++
		} else {
			record(&pr, "nav_"+m.term, StatusWarn, "missing", "")
		}
	}

	overall := fmt.Sprintf("%d/%d", found, len(navigationMarkers))
	switch {
	case found >= NavFoundGood:
		record(&pr, "navigation_overall", StatusPass, overall, "")
	case found >= NavFoundPartial:
		record(&pr, "navigation_overall", StatusWarn, overall, SeverityMedium)
	default:
		record(&pr, "navigation_overall", StatusFail, overall, SeverityHigh)
	}

	pr.Passed = found >= NavFoundPartial
	return pr
}
