package checker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNavigationPhase_AllMarkers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<nav class="menu"><div class="sidebar"></div></nav>`,
			`<header>Store</header><a href="/dashboard">Dashboard</a><a href="/products">Products</a>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	phase := &NavigationPhase{Client: NewClient()}
	pr := phase.Run(context.Background(), Target{Key: "home", URL: server.URL + "/"})

	if !pr.Passed {
		t.Fatalf("expected phase to pass, got %+v", pr)
	}
	if len(pr.Results) != 7 {
		t.Fatalf("expected 6 marker results plus roll-up, got %d", len(pr.Results))
	}
	if got := findResult(t, pr.Results, "nav_sidebar"); got.Status != StatusPass || got.Details != "found" {
		t.Errorf("unexpected nav_sidebar result: %+v", got)
	}
	if got := findResult(t, pr.Results, "navigation_overall"); got.Status != StatusPass || got.Details != "6/6" {
		t.Errorf("unexpected roll-up: %+v", got)
	}
	if pr.Tally.Total() != 0 {
		t.Errorf("expected empty tally, got %+v", pr.Tally)
	}
}

func TestNavigationPhase_PartialMarkers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<nav class="menu"></nav><header>Shop</header>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	phase := &NavigationPhase{Client: NewClient()}
	pr := phase.Run(context.Background(), Target{Key: "scan", URL: server.URL + "/scan"})

	if !pr.Passed {
		t.Fatal("expected phase to pass with partial markers")
	}
	if got := findResult(t, pr.Results, "navigation_overall"); got.Status != StatusWarn || got.Details != "3/6" {
		t.Errorf("unexpected roll-up: %+v", got)
	}
	if got := findResult(t, pr.Results, "nav_products"); got.Status != StatusWarn || got.Details != "missing" {
		t.Errorf("unexpected nav_products result: %+v", got)
	}
	if pr.Tally.Medium != 1 {
		t.Errorf("expected only the roll-up to tally, got %+v", pr.Tally)
	}
}

func TestNavigationPhase_MarkersAbsent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>bare page</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	phase := &NavigationPhase{Client: NewClient()}
	pr := phase.Run(context.Background(), Target{Key: "settings", URL: server.URL + "/settings"})

	if pr.Passed {
		t.Fatal("expected phase to fail with no markers")
	}
	if got := findResult(t, pr.Results, "navigation_overall"); got.Status != StatusFail || got.Details != "0/6" {
		t.Errorf("unexpected roll-up: %+v", got)
	}
	if pr.Tally.High != 1 {
		t.Errorf("expected 1 high finding, got %+v", pr.Tally)
	}
}

func TestNavigationPhase_NetworkFailure(t *testing.T) {
	stub := &stubFetcher{err: errors.New("connection reset")}

	phase := &NavigationPhase{Client: stub}
	pr := phase.Run(context.Background(), Target{Key: "home", URL: "http://localhost:9/"})

	if pr.Passed {
		t.Fatal("expected phase to fail on network error")
	}
	if len(pr.Results) != 1 || pr.Results[0].Test != "network" {
		t.Fatalf("expected single network result, got %+v", pr.Results)
	}
	if pr.Tally.High != 1 {
		t.Errorf("expected 1 high finding, got %+v", pr.Tally)
	}
}
