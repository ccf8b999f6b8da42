// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/vantage/internal/comparisons"
	"github.com/JaimeStill/vantage/internal/config"
	"github.com/JaimeStill/vantage/internal/infrastructure"
	"github.com/JaimeStill/vantage/pkg/middleware"
	"github.com/JaimeStill/vantage/pkg/module"
	"github.com/JaimeStill/vantage/pkg/openapi"
	"github.com/JaimeStill/vantage/pkg/routes"
)

// NewModule creates the API module with all domain handlers and middleware.
// When a recompute schedule is configured the scheduler is registered with
// the lifecycle coordinator.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)
	groups := Groups(domain, cfg)

	spec, err := openapi.MarshalJSON(NewSpec(cfg, groups))
	if err != nil {
		return nil, fmt.Errorf("build api document: %w", err)
	}

	mux := http.NewServeMux()
	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	if cfg.Ranking.RecomputeSchedule != "" {
		s, err := comparisons.NewScheduler(
			domain.Comparisons,
			cfg.Ranking.RecomputeSchedule,
			cfg.Ranking.RecomputeTimeoutDuration(),
			runtime.Logger,
		)
		if err != nil {
			return nil, err
		}
		s.Start(runtime.Lifecycle)
		runtime.Lifecycle.Register("scheduler", s)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))

	return m, nil
}

// NewSpec describes groups as an OpenAPI document served under the API
// base path.
func NewSpec(cfg *config.Config, groups []routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)
	spec.AddRoutes(groups...)
	return spec
}
