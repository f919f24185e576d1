package checker

import (
	"strings"
	"time"
)

// Classification thresholds. Centralized so the phase policies read as
// configuration rather than scattered literals.
const (
	// ResponseTimeGood is the upper bound for a PASS on response time.
	ResponseTimeGood = 3 * time.Second
	// ResponseTimeSlow is the upper bound for a WARN; beyond it is a FAIL.
	ResponseTimeSlow = 5 * time.Second
	// MinContentBytes is the smallest body considered a complete page.
	MinContentBytes = 1000
	// NavFoundGood marker matches for a PASS on navigation completeness.
	NavFoundGood = 4
	// NavFoundPartial marker matches for a WARN; below it is a FAIL.
	NavFoundPartial = 2
)

// navigationMarkers are searched case-insensitively in the page body.
var navigationMarkers = []struct {
	term        string
	description string
}{
	{"nav", "navigation element"},
	{"menu", "menu element"},
	{"sidebar", "sidebar element"},
	{"header", "header element"},
	{"dashboard", "dashboard link"},
	{"products", "products link"},
}

// errorMarkers hint at rendered error states when present in a page body.
var errorMarkers = []string{"error", "exception", "boundary"}

// contentProbe is a page-specific functionality expectation: markers that
// should appear in the page body, and how their absence is classified.
type contentProbe struct {
	pageKey      string // exact page key match
	keySubstring string // substring match when pageKey is empty
	test         string
	markers      []string
	missingState string
	severity     string
}

func (p contentProbe) matches(pageKey string) bool {
	if p.pageKey != "" {
		return pageKey == p.pageKey
	}
	return strings.Contains(pageKey, p.keySubstring)
}

var contentProbes = []contentProbe{
	{
		pageKey:      "dashboard",
		test:         "dashboard_cards",
		markers:      []string{"card", "widget", "dashboard"},
		missingState: StatusWarn,
		severity:     SeverityMedium,
	},
	{
		pageKey:      "dashboard",
		test:         "dashboard_metrics",
		markers:      []string{"total", "count", "metric", "statistic"},
		missingState: StatusWarn,
		severity:     SeverityMedium,
	},
	{
		pageKey:      "products",
		test:         "products_content",
		markers:      []string{"product", "item", "inventory"},
		missingState: StatusWarn,
		severity:     SeverityMedium,
	},
	{
		pageKey:      "scan",
		test:         "scan_barcode",
		markers:      []string{"barcode", "camera", "scan"},
		missingState: StatusFail,
		severity:     SeverityHigh,
	},
	{
		keySubstring: "ai-assistant",
		test:         "ai_content",
		markers:      []string{"ai", "assistant", "agent", "artificial"},
		missingState: StatusFail,
		severity:     SeverityHigh,
	},
}

// containsAny reports whether the lowercased body contains any marker.
func containsAny(body string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}
