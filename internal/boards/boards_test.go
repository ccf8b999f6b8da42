package boards_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/vantage/internal/boards"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", boards.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", boards.ErrNotFound), http.StatusNotFound},
		{"duplicate", boards.ErrDuplicate, http.StatusConflict},
		{"invalid name", boards.ErrInvalidName, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := boards.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	f := boards.FiltersFromQuery(url.Values{"name": {"q3"}})
	if f.Name == nil || *f.Name != "q3" {
		t.Errorf("name = %v, want q3", f.Name)
	}

	if f := boards.FiltersFromQuery(url.Values{}); f.Name != nil {
		t.Errorf("empty query set name = %q", *f.Name)
	}
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     boards.Command
		wantErr bool
	}{
		{"valid", boards.Command{Name: "Q3 backlog"}, false},
		{"blank", boards.Command{Name: "   "}, true},
		{"empty", boards.Command{}, true},
		{"too long", boards.Command{Name: strings.Repeat("x", 121)}, true},
		{"at limit", boards.Command{Name: strings.Repeat("x", 120)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr && !errors.Is(err, boards.ErrInvalidName) {
				t.Errorf("err = %v, want ErrInvalidName", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCommandNormalize(t *testing.T) {
	cmd := boards.Command{Name: "  Ops  ", Description: ptr("  ")}
	cmd.Normalize()

	if cmd.Name != "Ops" {
		t.Errorf("name = %q, want Ops", cmd.Name)
	}
	if cmd.Description != nil {
		t.Errorf("blank description kept as %q", *cmd.Description)
	}

	cmd = boards.Command{Name: "Ops", Description: ptr(" tooling ")}
	cmd.Normalize()
	if cmd.Description == nil || *cmd.Description != "tooling" {
		t.Errorf("description = %v, want tooling", cmd.Description)
	}
}
