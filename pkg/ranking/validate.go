package ranking

import (
	"errors"
	"fmt"
)

// Input corruption reported by Validate.
var (
	ErrDuplicateItem = errors.New("duplicate item id")
	ErrUnknownItem   = errors.New("decision references unknown item")
	ErrSelfPair      = errors.New("decision compares an item with itself")
	ErrInvalidWinner = errors.New("decision winner is not one of the compared items")
)

// Validate reports every record that violates the item and decision
// invariants. CalculateRanking tolerates these records by skipping them,
// so a nil result is the only evidence that a ranking reflects the whole
// history. The returned error joins one wrapped sentinel per violation.
func Validate(items []Item, decisions []Decision) error {
	var errs []error

	known := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := known[it.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateItem, it.ID))
			continue
		}
		known[it.ID] = struct{}{}
	}

	for i, d := range decisions {
		if d.ItemAID == d.ItemBID {
			errs = append(errs, fmt.Errorf("decision %d: %w: %s", i, ErrSelfPair, d.ItemAID))
		}
		if d.WinnerID != d.ItemAID && d.WinnerID != d.ItemBID {
			errs = append(errs, fmt.Errorf("decision %d: %w: %s", i, ErrInvalidWinner, d.WinnerID))
		}
		for _, id := range []string{d.ItemAID, d.ItemBID} {
			if _, ok := known[id]; !ok {
				errs = append(errs, fmt.Errorf("decision %d: %w: %s", i, ErrUnknownItem, id))
			}
		}
	}

	return errors.Join(errs...)
}
