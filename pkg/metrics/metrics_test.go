package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHandle_LabelsByRoutePattern(t *testing.T) {
	m := New("wardrobe")

	router := httprouter.New()
	router.GET("/api/costumes/:id", m.Handle("/api/costumes/:id", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/costumes/"+id, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/costumes/:id", "404"))
	if got != 2 {
		t.Errorf("expected 2 requests under the route pattern, got %v", got)
	}
	if v := testutil.ToFloat64(m.inFlight); v != 0 {
		t.Errorf("expected in-flight gauge back at 0, got %v", v)
	}
}

func TestHandle_DefaultStatusIsOK(t *testing.T) {
	m := New("wardrobe")
	h := m.Handle("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		_, _ = w.Write([]byte("ok"))
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil), nil)

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/health", "200")); got != 1 {
		t.Errorf("expected one 200, got %v", got)
	}
}

func TestDomainCounters(t *testing.T) {
	m := New("wardrobe")

	m.BookingCreated()
	m.BookingTransition("pending", "confirmed")
	m.Login(false)
	m.EventPublished("wardrobe.bookings", errors.New("down"), time.Millisecond)

	if got := testutil.ToFloat64(m.bookingsCreated); got != 1 {
		t.Errorf("expected 1 booking created, got %v", got)
	}
	if got := testutil.ToFloat64(m.bookingTransitions.WithLabelValues("pending", "confirmed")); got != 1 {
		t.Errorf("expected 1 transition, got %v", got)
	}
	if got := testutil.ToFloat64(m.logins.WithLabelValues(ResultFailure)); got != 1 {
		t.Errorf("expected 1 failed login, got %v", got)
	}
	if got := testutil.ToFloat64(m.eventsPublished.WithLabelValues("wardrobe.bookings", ResultFailure)); got != 1 {
		t.Errorf("expected 1 failed publish, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.BookingCreated()
	m.BookingTransition("pending", "cancelled")
	m.Login(true)
	m.EventPublished("t", nil, time.Millisecond)

	called := false
	h := m.Handle("/x", func(http.ResponseWriter, *http.Request, httprouter.Params) { called = true })
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil), nil)
	if !called {
		t.Errorf("expected wrapped handler to run")
	}
}

func TestHandler_Exposition(t *testing.T) {
	m := New("wardrobe")
	m.BookingCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "wardrobe_bookings_created_total 1") {
		t.Errorf("expected counter in exposition, got:\n%s", rec.Body.String())
	}
}
