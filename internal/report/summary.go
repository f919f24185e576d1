package report

import (
	"fmt"
	"strings"
	"time"
)

// Phase outcome markers used in "phase:STATUS" entries. Unlike sub-check
// statuses, a phase rolls up to exactly one of these three.
const (
	PhasePass = "PASS"
	PhaseFail = "FAIL"
	PhaseWarn = "WARN"
)

// PhaseLine builds one "phase:STATUS" entry for a page summary.
func PhaseLine(phase, status string) string {
	return phase + ":" + status
}

// PageSummary renders the markdown summary written alongside a page's result
// batches after every page audit. The layout feeds the final report, which
// splices everything after the title into its page-by-page section.
func PageSummary(page, url, overallStatus string, phaseResults []string, at time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Page Audit Summary: %s\n\n", page)
	fmt.Fprintf(&b, "**URL:** %s  \n", url)
	fmt.Fprintf(&b, "**Audit Date:** %s  \n", at.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "**Overall Status:** %s  \n\n", overallStatus)
	b.WriteString("## Test Phase Results\n\n")

	for _, result := range phaseResults {
		phase, status, ok := strings.Cut(result, ":")
		if !ok {
			continue
		}
		switch status {
		case PhasePass:
			fmt.Fprintf(&b, "- ✅ **%s**: PASSED\n", phase)
		case PhaseFail:
			fmt.Fprintf(&b, "- ❌ **%s**: FAILED\n", phase)
		case PhaseWarn:
			fmt.Fprintf(&b, "- ⚠️ **%s**: WARNINGS\n", phase)
		}
	}

	b.WriteString("\n## Detailed Results\n\n")
	b.WriteString("Detailed test results can be found in:\n")
	fmt.Fprintf(&b, "- `%s_accessibility_results.json`\n", page)
	fmt.Fprintf(&b, "- `%s_navigation_results.json`\n", page)
	fmt.Fprintf(&b, "- `%s_functionality_results.json`\n", page)
	fmt.Fprintf(&b, "- `%s_error_handling_results.json`\n\n", page)

	b.WriteString("## Recommendations\n\n")

	if containsResult(phaseResults, "accessibility:FAIL") {
		b.WriteString("- **CRITICAL**: Fix accessibility issues - page may be inaccessible\n")
	}
	if containsResult(phaseResults, "functionality:FAIL") {
		b.WriteString("- **HIGH**: Address functionality issues - core features may be broken\n")
	}
	if containsResult(phaseResults, "navigation:FAIL") {
		b.WriteString("- **MEDIUM**: Improve navigation consistency\n")
	}

	if anyIssue(phaseResults) {
		b.WriteString("- Review detailed test results for specific issues\n")
	} else {
		b.WriteString("- No critical issues found - page is functioning well\n")
	}

	return b.String()
}

func containsResult(results []string, want string) bool {
	for _, r := range results {
		if r == want {
			return true
		}
	}
	return false
}

func anyIssue(results []string) bool {
	for _, r := range results {
		if strings.Contains(r, PhaseFail) || strings.Contains(r, PhaseWarn) {
			return true
		}
	}
	return false
}
