package httpx_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/commercekit/commerce-core/internal/httpx"
)

func TestWithLoggingRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	httpx.WithLogging(next, logger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	logged := buf.String()
	if !strings.Contains(logged, "status=404") {
		t.Errorf("expected logged status 404, got %q", logged)
	}
	if !strings.Contains(logged, "path=/orders/missing") {
		t.Errorf("expected logged path, got %q", logged)
	}
}

func TestWithLoggingDefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	httpx.WithLogging(next, logger).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("expected implicit 200 in log, got %q", buf.String())
	}
}

func TestWithRecoveryConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	httpx.WithRecovery(next, logger).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON error body, got content type %q", got)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Errorf("expected panic to be logged, got %q", buf.String())
	}
}

func TestWithRecoveryPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	rec := httptest.NewRecorder()
	httpx.WithRecovery(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}), logger).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
}
