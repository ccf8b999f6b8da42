package api

import (
	"github.com/JaimeStill/vantage/internal/config"
	"github.com/JaimeStill/vantage/pkg/routes"
)

// Groups returns every route group the API serves.
func Groups(domain *Domain, cfg *config.Config) []routes.Group {
	return []routes.Group{
		domain.Boards.Handler().Routes(),
		domain.Comparisons.Handler().Routes(),
		domain.Improvements.Handler().Routes(),
		domain.Evidence.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Decisions.Handler().Routes(),
	}
}
