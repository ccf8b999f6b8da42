package api

import (
	"github.com/JaimeStill/vantage/internal/boards"
	"github.com/JaimeStill/vantage/internal/comparisons"
	"github.com/JaimeStill/vantage/internal/decisions"
	"github.com/JaimeStill/vantage/internal/evidence"
	"github.com/JaimeStill/vantage/internal/improvements"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Boards       boards.System
	Improvements improvements.System
	Evidence     evidence.System
	Decisions    decisions.System
	Comparisons  comparisons.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	boardsSystem := boards.New(db, runtime.Logger, runtime.Pagination)

	comparisonsSystem := comparisons.New(
		db,
		runtime.Storage,
		boardsSystem,
		runtime.Logger,
		comparisons.Options{
			Selector: runtime.Ranking.Selector(),
			Workers:  runtime.Ranking.RecomputeWorkers,
		},
	)

	return &Domain{
		Boards:       boardsSystem,
		Improvements: improvements.New(db, comparisonsSystem, runtime.Logger, runtime.Pagination),
		Evidence:     evidence.New(db, runtime.Storage, runtime.Logger),
		Decisions:    decisions.New(db, runtime.Logger, runtime.Pagination),
		Comparisons:  comparisonsSystem,
	}
}
