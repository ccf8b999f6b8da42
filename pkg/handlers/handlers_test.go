package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   any
	}{
		{"200 with map", http.StatusOK, map[string]string{"key": "value"}},
		{"201 with struct", http.StatusCreated, struct{ ID int }{ID: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondJSON(rec, tt.status, tt.data)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type = %q", ct)
			}

			var parsed map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
				t.Fatalf("decode: %v", err)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantLog string
	}{
		{"client error", http.StatusBadRequest, ""},
		{"server error", http.StatusInternalServerError, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			rec := httptest.NewRecorder()

			handlers.RespondError(rec, logger, tt.status, errors.New("boom"))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != "boom" {
				t.Errorf("error = %q, want boom", body["error"])
			}

			logged := buf.String()
			if tt.wantLog == "" && logged != "" {
				t.Errorf("unexpected log output: %s", logged)
			}
			if tt.wantLog != "" && !strings.Contains(logged, tt.wantLog) {
				t.Errorf("log = %q, want %q", logged, tt.wantLog)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	id := uuid.New()

	mux := http.NewServeMux()
	var got uuid.UUID
	var gotErr error
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = handlers.PathID(r, "id")
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/items/"+id.String(), nil))
	if gotErr != nil || got != id {
		t.Errorf("PathID = %v, %v; want %v", got, gotErr, id)
	}

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/items/nope", nil))
	if !errors.Is(gotErr, handlers.ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", gotErr)
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", `{"name":"alpha"}`, "alpha", false},
		{"unknown field", `{"name":"alpha","extra":1}`, "", true},
		{"malformed", `{"name":`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.input))

			var got body
			err := handlers.DecodeJSON(req, &got)
			if tt.wantErr {
				if !errors.Is(err, handlers.ErrInvalidBody) {
					t.Errorf("err = %v, want ErrInvalidBody", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("name = %q, want %q", got.Name, tt.want)
			}
		})
	}
}
