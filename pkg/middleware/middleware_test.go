package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/vantage/pkg/middleware"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

func TestStackOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	s := middleware.New()
	s.Use(tag("outer"))
	s.Use(tag("inner"))
	s.Apply(http.HandlerFunc(ok)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("order = %v", order)
	}
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: true, Origins: []string{"http://app.local"}}
	cfg.Finalize(nil)
	h := middleware.CORS(cfg)(http.HandlerFunc(ok))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"allowed origin", "GET", "http://app.local", http.StatusOK, "http://app.local"},
		{"foreign origin", "GET", "http://evil.local", http.StatusOK, ""},
		{"preflight", "OPTIONS", "http://app.local", http.StatusNoContent, "http://app.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/boards", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("allow-origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestCORSDisabledPassesThrough(t *testing.T) {
	cfg := &middleware.CORSConfig{Origins: []string{"http://app.local"}}
	h := middleware.CORS(cfg)(http.HandlerFunc(ok))

	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://app.local")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("headers set while disabled")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want handler's 200", rec.Code)
	}
}

func TestCORSFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", " http://a , ,http://b")

	cfg := &middleware.CORSConfig{}
	cfg.Finalize(&middleware.CORSEnv{Enabled: "TEST_CORS_ENABLED", Origins: "TEST_CORS_ORIGINS"})

	if !cfg.Enabled {
		t.Error("enabled not applied")
	}
	if strings.Join(cfg.Origins, "|") != "http://a|http://b" {
		t.Errorf("origins = %v", cfg.Origins)
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max_age = %d", cfg.MaxAge)
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := middleware.New()
	s.Use(middleware.RequestID())
	s.Use(middleware.Logger(logger))
	h := s.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.RequestIDFrom(r.Context()) != "fixed-id" {
			t.Errorf("request id not in context")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/boards?page=2", nil)
	req.Header.Set(middleware.RequestIDHeader, "fixed-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get(middleware.RequestIDHeader) != "fixed-id" {
		t.Error("request id not echoed")
	}

	out := buf.String()
	for _, want := range []string{"status=418", "uri=\"/boards?page=2\"", "request_id=fixed-id"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestRequestIDGenerated(t *testing.T) {
	h := middleware.RequestID()(http.HandlerFunc(ok))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if len(rec.Header().Get(middleware.RequestIDHeader)) != 36 {
		t.Errorf("generated id = %q", rec.Header().Get(middleware.RequestIDHeader))
	}
}

func TestRecover(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := middleware.Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
