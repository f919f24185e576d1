package report

import (
	"strings"
	"testing"
	"time"
)

func TestPageSummary_AllPassed(t *testing.T) {
	results := []string{
		"accessibility:PASS",
		"navigation:PASS",
		"functionality:PASS",
		"error_handling:PASS",
	}
	got := PageSummary("home", "http://localhost:3000/", "SUCCESS", results, time.Now())

	for _, want := range []string{
		"# Page Audit Summary: home\n",
		"**URL:** http://localhost:3000/  \n",
		"**Overall Status:** SUCCESS  \n",
		"- ✅ **accessibility**: PASSED\n",
		"- ✅ **error_handling**: PASSED\n",
		"- No critical issues found - page is functioning well\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Review detailed test results") {
		t.Error("clean summary must not suggest reviewing issues")
	}
}

func TestPageSummary_Failures(t *testing.T) {
	results := []string{
		"accessibility:FAIL",
		"navigation:FAIL",
		"functionality:FAIL",
		"error_handling:WARN",
	}
	got := PageSummary("scan", "http://localhost:3000/scan", "FAILED", results, time.Now())

	for _, want := range []string{
		"**Overall Status:** FAILED  \n",
		"- ❌ **accessibility**: FAILED\n",
		"- ⚠️ **error_handling**: WARNINGS\n",
		"- **CRITICAL**: Fix accessibility issues - page may be inaccessible\n",
		"- **HIGH**: Address functionality issues - core features may be broken\n",
		"- **MEDIUM**: Improve navigation consistency\n",
		"- Review detailed test results for specific issues\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestPageSummary_FileList(t *testing.T) {
	got := PageSummary("orders", "http://localhost:3000/orders", "SUCCESS", []string{"accessibility:PASS"}, time.Now())

	for _, phase := range []string{"accessibility", "navigation", "functionality", "error_handling"} {
		want := "- `orders_" + phase + "_results.json`\n"
		if !strings.Contains(got, want) {
			t.Errorf("summary missing file reference %q", want)
		}
	}
}

func TestPhaseLine(t *testing.T) {
	if got := PhaseLine("navigation", PhaseWarn); got != "navigation:WARN" {
		t.Errorf("unexpected phase line: %q", got)
	}
}
