package checker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAccessibilityPhase_HealthyPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>", strings.Repeat("store content ", 100), "</body></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	phase := &AccessibilityPhase{Client: NewClient()}
	pr := phase.Run(context.Background(), Target{Key: "home", URL: server.URL + "/"})

	if !pr.Passed {
		t.Fatalf("expected phase to pass, got %+v", pr)
	}
	if len(pr.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(pr.Results))
	}
	if got := findResult(t, pr.Results, "http_status"); got.Status != StatusPass || got.Details != "200" {
		t.Errorf("unexpected http_status result: %+v", got)
	}
	if got := findResult(t, pr.Results, "response_time"); got.Status != StatusPass || !strings.HasSuffix(got.Details, "ms") {
		t.Errorf("unexpected response_time result: %+v", got)
	}
	if got := findResult(t, pr.Results, "content_length"); got.Status != StatusPass || !strings.HasSuffix(got.Details, "bytes") {
		t.Errorf("unexpected content_length result: %+v", got)
	}
	if pr.Tally.Total() != 0 {
		t.Errorf("expected empty tally, got %+v", pr.Tally)
	}
}

func TestAccessibilityPhase_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	phase := &AccessibilityPhase{Client: NewClient()}
	pr := phase.Run(context.Background(), Target{Key: "orders", URL: server.URL + "/orders"})

	if pr.Passed {
		t.Fatal("expected phase to fail on HTTP 500")
	}
	if got := findResult(t, pr.Results, "http_status"); got.Status != StatusFail || got.Details != "500" {
		t.Errorf("unexpected http_status result: %+v", got)
	}
	if pr.Tally.High != 1 {
		t.Errorf("expected 1 high finding, got %+v", pr.Tally)
	}
}

func TestAccessibilityPhase_ThinContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	phase := &AccessibilityPhase{Client: NewClient()}
	pr := phase.Run(context.Background(), Target{Key: "settings", URL: server.URL + "/settings"})

	if !pr.Passed {
		t.Fatal("expected phase to pass, thin content is only a warning")
	}
	if got := findResult(t, pr.Results, "content_length"); got.Status != StatusWarn || got.Details != "13bytes" {
		t.Errorf("unexpected content_length result: %+v", got)
	}
	if pr.Tally.Low != 1 {
		t.Errorf("expected 1 low finding, got %+v", pr.Tally)
	}
}

func TestAccessibilityPhase_SlowResponse(t *testing.T) {
	stub := &stubFetcher{resp: &Response{
		StatusCode: http.StatusOK,
		Elapsed:    4 * time.Second,
		Body:       []byte(strings.Repeat("x", 2000)),
	}}

	phase := &AccessibilityPhase{Client: stub}
	pr := phase.Run(context.Background(), Target{Key: "reports", URL: "http://localhost:3000/reports"})

	if !pr.Passed {
		t.Fatal("expected phase to pass, slow response is only a warning")
	}
	if got := findResult(t, pr.Results, "response_time"); got.Status != StatusWarn || got.Details != "4000ms" {
		t.Errorf("unexpected response_time result: %+v", got)
	}
	if pr.Tally.Medium != 1 {
		t.Errorf("expected 1 medium finding, got %+v", pr.Tally)
	}
}

func TestAccessibilityPhase_VerySlowResponse(t *testing.T) {
	stub := &stubFetcher{resp: &Response{
		StatusCode: http.StatusOK,
		Elapsed:    6 * time.Second,
		Body:       []byte(strings.Repeat("x", 2000)),
	}}

	phase := &AccessibilityPhase{Client: stub}
	pr := phase.Run(context.Background(), Target{Key: "reports", URL: "http://localhost:3000/reports"})

	if pr.Passed {
		t.Fatal("expected phase to fail on very slow response")
	}
	if got := findResult(t, pr.Results, "response_time"); got.Status != StatusFail || got.Details != "6000ms" {
		t.Errorf("unexpected response_time result: %+v", got)
	}
	if pr.Tally.High != 1 {
		t.Errorf("expected 1 high finding, got %+v", pr.Tally)
	}
}

func TestAccessibilityPhase_NetworkFailure(t *testing.T) {
	stub := &stubFetcher{err: errors.New("dial tcp: connection refused")}

	phase := &AccessibilityPhase{Client: stub}
	pr := phase.Run(context.Background(), Target{Key: "home", URL: "http://localhost:9/"})

	if pr.Passed {
		t.Fatal("expected phase to fail on network error")
	}
	if len(pr.Results) != 1 {
		t.Fatalf("expected single network result, got %d", len(pr.Results))
	}
	if got := pr.Results[0]; got.Test != "network" || got.Status != StatusFail || got.Details != "dial tcp: connection refused" {
		t.Errorf("unexpected network result: %+v", got)
	}
	if pr.Tally.Critical != 1 {
		t.Errorf("expected 1 critical finding, got %+v", pr.Tally)
	}
}
