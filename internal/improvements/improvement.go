// Package improvements stores the candidate work items that boards rank.
// Each improvement carries its latest computed standing so listings can be
// read without replaying the decision history.
package improvements

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/ranking"
)

const maxTitleLength = 200

// Improvement is a ranked candidate on a board. The rank fields are nil
// until the board is first recomputed.
type Improvement struct {
	ID            uuid.UUID        `json:"id"`
	BoardID       uuid.UUID        `json:"board_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      ranking.Category `json:"category"`
	EffortLevel   *ranking.Effort  `json:"effort_level,omitempty"`
	RankPosition  *int             `json:"rank_position,omitempty"`
	Confidence    *float64         `json:"confidence,omitempty"`
	ImpactScore   *float64         `json:"impact_score,omitempty"`
	Wins          int              `json:"wins"`
	Comparisons   int              `json:"comparisons"`
	EvidenceCount int              `json:"evidence_count"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ToRankingItem converts the record into the value the ranking engine reads.
func (i Improvement) ToRankingItem() ranking.Item {
	item := ranking.Item{
		ID:            i.ID.String(),
		Category:      i.Category,
		EvidenceCount: i.EvidenceCount,
	}
	if i.EffortLevel != nil {
		item.Effort = *i.EffortLevel
	}
	return item
}

// RankingItems converts list in order.
func RankingItems(list []Improvement) []ranking.Item {
	items := make([]ranking.Item, len(list))
	for i, imp := range list {
		items[i] = imp.ToRankingItem()
	}
	return items
}

// CreateCommand adds an improvement to a board.
type CreateCommand struct {
	BoardID     uuid.UUID        `json:"board_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    ranking.Category `json:"category"`
	EffortLevel *ranking.Effort  `json:"effort_level,omitempty"`
}

// Validate checks the title, category and optional effort.
func (c *CreateCommand) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	if err := validateTitle(c.Title); err != nil {
		return err
	}
	if !c.Category.Known() {
		return ErrInvalidCategory
	}
	return validateEffort(c.EffortLevel)
}

// UpdateCommand replaces the descriptive fields of an improvement. Effort
// changes go through EstimateCommand.
type UpdateCommand struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    ranking.Category `json:"category"`
}

// Validate checks the title and category.
func (c *UpdateCommand) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	if err := validateTitle(c.Title); err != nil {
		return err
	}
	if !c.Category.Known() {
		return ErrInvalidCategory
	}
	return nil
}

// EstimateCommand sets an effort level. A nil EffortLevel clears it.
type EstimateCommand struct {
	EffortLevel *ranking.Effort `json:"effort_level"`
}

// Validate rejects unlisted effort levels.
func (c EstimateCommand) Validate() error {
	return validateEffort(c.EffortLevel)
}

func validateTitle(title string) error {
	if title == "" || len(title) > maxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func validateEffort(e *ranking.Effort) error {
	if e != nil && !e.Known() {
		return ErrInvalidEffort
	}
	return nil
}
