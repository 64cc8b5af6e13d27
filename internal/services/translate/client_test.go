package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestTranslateJoinsSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_a/single" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("client") != "gtx" || q.Get("sl") != "auto" || q.Get("tl") != "id" || q.Get("dt") != "t" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("q") != "Hello there.\nGeneral Kenobi." {
			t.Errorf("unexpected text %q", q.Get("q"))
		}
		_, _ = w.Write([]byte(`[[["Halo. ","Hello there.",null,null,10],["\nJenderal Kenobi.","General Kenobi.",null,null,10]],null,"en"]`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/"})
	got, err := client.Translate(context.Background(), "Hello there.\nGeneral Kenobi.", "id")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "Halo. \nJenderal Kenobi." {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestTranslateRetriesThrottling(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[[["Hola","Hello"]]]`))
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(Config{BaseURL: server.URL, RetryAttempts: 3},
		WithRetryBackoff(100*time.Millisecond, time.Second),
		WithSleeper(func(d time.Duration) { slept = append(slept, d) }),
	)
	got, err := client.Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "Hola" {
		t.Fatalf("unexpected translation %q", got)
	}
	if len(slept) != 2 || slept[0] != 100*time.Millisecond || slept[1] != 200*time.Millisecond {
		t.Fatalf("unexpected backoff %v", slept)
	}
}

func TestTranslateDefaultsToSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(Config{BaseURL: server.URL}, WithSleeper(func(d time.Duration) { slept = append(slept, d) }))
	if _, err := client.Translate(context.Background(), "Hello", "id"); err == nil {
		t.Fatal("expected error for unavailable service")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single request, got %d", calls.Load())
	}
	if len(slept) != 0 {
		t.Fatalf("expected no backoff, got %v", slept)
	}
}

func TestTranslateDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, RetryAttempts: 5}, WithSleeper(func(time.Duration) {}))
	if _, err := client.Translate(context.Background(), "Hello", "xx"); err == nil {
		t.Fatal("expected error for bad request")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestTranslateEmptyTextSkipsRequest(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	got, err := client.Translate(context.Background(), "   ", "en")
	if err != nil || got != "" {
		t.Fatalf("expected empty result without request, got %q %v", got, err)
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[["hello","hello"]],null,"en"]`))
	}))
	defer server.Close()

	if err := NewClient(Config{BaseURL: server.URL}).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestDecodeSegmentsHandlesNull(t *testing.T) {
	got, err := decodeSegments([]byte(`[null,null,"en"]`))
	if err != nil || got != "" {
		t.Fatalf("expected empty translation, got %q %v", got, err)
	}
	if _, err := decodeSegments([]byte(`<html>`)); err == nil {
		t.Fatal("expected decode error")
	}
}
