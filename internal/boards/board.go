// Package boards implements ranking boards. A board is one backlog being
// prioritized; its improvements and decisions are ranked independently of
// every other board.
package boards

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNameLength = 120

// Board is a ranking session with its item and decision counts.
type Board struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	ImprovementCount int       `json:"improvement_count"`
	DecisionCount    int       `json:"decision_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Command creates or replaces the editable fields of a board.
type Command struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Normalize trims the name and clears a blank description.
func (c *Command) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	if c.Description != nil {
		d := strings.TrimSpace(*c.Description)
		if d == "" {
			c.Description = nil
		} else {
			c.Description = &d
		}
	}
}

// Validate reports ErrInvalidName for a blank or overlong name.
func (c Command) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" || len(name) > maxNameLength {
		return ErrInvalidName
	}
	return nil
}
