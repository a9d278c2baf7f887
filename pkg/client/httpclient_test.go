package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWardrobeClient_SendsBearerAndIdempotencyKey(t *testing.T) {
	var gotAuth, gotKey, gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("Idempotency-Key")
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"b-1"}`))
	}))
	defer srv.Close()

	c := NewWardrobeClient(srv.URL).As("token-123")
	resp, err := c.CreateBooking(map[string]string{"costume_id": "c-1"}, "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotKey != "key-1" {
		t.Errorf("expected idempotency key, got %q", gotKey)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/bookings" {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}

	var body map[string]string
	if err := resp.DecodeJSON(&body); err != nil || body["id"] != "b-1" {
		t.Errorf("unexpected body %v (%v)", body, err)
	}
}

func TestWardrobeClient_AsDoesNotMutateParent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	anonymous := NewWardrobeClient(srv.URL)
	_ = anonymous.As("secret")

	if _, err := anonymous.ListCostumes("Period", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("anonymous client leaked credential %q", gotAuth)
	}
}

func TestGetErrorMessage(t *testing.T) {
	resp := &Response{Body: []byte(`{"code":"CONFLICT","message":"email already registered"}`)}
	if got := GetErrorMessage(resp); got != "email already registered" {
		t.Errorf("unexpected message %q", got)
	}

	resp = &Response{Body: []byte(`{"code":"FORBIDDEN"}`)}
	if got := GetErrorMessage(resp); got != "FORBIDDEN" {
		t.Errorf("expected code fallback, got %q", got)
	}
}

func TestWaitForHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewHttpClient(srv.URL).WaitForHealthy(2 * time.Second); err != nil {
		t.Errorf("expected healthy server, got %v", err)
	}
}
