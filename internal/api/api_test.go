package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/JaimeStill/vantage/internal/api"
	"github.com/JaimeStill/vantage/internal/boards"
	"github.com/JaimeStill/vantage/internal/comparisons"
	"github.com/JaimeStill/vantage/internal/config"
	"github.com/JaimeStill/vantage/internal/decisions"
	"github.com/JaimeStill/vantage/internal/evidence"
	"github.com/JaimeStill/vantage/internal/improvements"
	"github.com/JaimeStill/vantage/pkg/pagination"
	"github.com/JaimeStill/vantage/pkg/ranking"
	"github.com/JaimeStill/vantage/pkg/routes"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{Version: "1.0.0"}
	if err := cfg.API.Finalize(); err != nil {
		t.Fatalf("finalize api config: %v", err)
	}
	return cfg
}

// testDomain builds real systems without a database. Handlers never touch
// the connection until a request is served.
func testDomain() *api.Domain {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	page := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

	b := boards.New(nil, logger, page)
	c := comparisons.New(nil, nil, b, logger, comparisons.Options{
		Selector: ranking.DefaultSelector(),
		Workers:  2,
	})
	return &api.Domain{
		Boards:       b,
		Improvements: improvements.New(nil, c, logger, page),
		Evidence:     evidence.New(nil, nil, logger),
		Decisions:    decisions.New(nil, logger, page),
		Comparisons:  c,
	}
}

func TestGroupsRegisterWithoutConflict(t *testing.T) {
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("route registration panicked: %v", v)
		}
	}()

	routes.Register(http.NewServeMux(), api.Groups(testDomain(), testConfig(t))...)
}

func TestNewSpec(t *testing.T) {
	cfg := testConfig(t)
	spec := api.NewSpec(cfg, api.Groups(testDomain(), cfg))

	if spec.Info.Version != "1.0.0" {
		t.Errorf("version = %q", spec.Info.Version)
	}
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "/api" {
		t.Errorf("servers = %+v", spec.Servers)
	}

	tests := []struct {
		method, path, tag string
	}{
		{"GET", "/boards", "Boards"},
		{"POST", "/boards/search", "Boards"},
		{"DELETE", "/boards/{id}", "Boards"},
		{"GET", "/boards/{id}/next", "Comparisons"},
		{"POST", "/boards/{id}/decisions", "Comparisons"},
		{"DELETE", "/boards/{id}/decisions/{decisionId}", "Comparisons"},
		{"POST", "/boards/{id}/undo", "Comparisons"},
		{"GET", "/boards/{id}/standings", "Comparisons"},
		{"POST", "/boards/{id}/recompute", "Comparisons"},
		{"POST", "/boards/{id}/snapshots", "Comparisons"},
		{"GET", "/boards/{id}/snapshots/{name}", "Comparisons"},
		{"PUT", "/improvements/{id}/effort", "Improvements"},
		{"POST", "/improvements/{id}/evidence", "Evidence"},
		{"GET", "/evidence/{id}/download", "Evidence"},
		{"GET", "/decisions/{id}", "Decisions"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			op := spec.Operation(tt.method, tt.path)
			if op == nil {
				t.Fatal("operation missing")
			}
			if len(op.Tags) != 1 || op.Tags[0] != tt.tag {
				t.Errorf("tags = %v, want %s", op.Tags, tt.tag)
			}
			if op.Summary == "" {
				t.Error("missing summary")
			}
		})
	}
}
