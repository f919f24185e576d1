package checker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientGet_ReadsStatusAndBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		fmt.Fprint(w, "short and stout")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient()
	resp, err := client.Get(context.Background(), server.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "short and stout" {
		t.Errorf("unexpected body: %q", resp.Body)
	}
	if resp.Elapsed <= 0 {
		t.Errorf("expected positive elapsed time, got %v", resp.Elapsed)
	}
}

func TestClientGet_NonOKStatusIsNotAnError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient()
	resp, err := client.Get(context.Background(), server.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("expected no error for HTTP 503, got %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", resp.StatusCode)
	}
}

func TestClientGet_Timeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient()
	if _, err := client.Get(context.Background(), server.URL, 50*time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestClientGet_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NewServeMux())
	url := server.URL
	server.Close()

	client := NewClient()
	if _, err := client.Get(context.Background(), url, time.Second); err == nil {
		t.Fatal("expected connection error against closed server")
	}
}
