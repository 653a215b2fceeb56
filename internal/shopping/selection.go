package shopping

import (
	"errors"
	"fmt"

	"dietapp/internal/diet"
)

// ErrInvalidSelection is returned for selections that name an unknown mode,
// day or week.
var ErrInvalidSelection = errors.New("invalid selection")

// Mode is the span a shopping list covers.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeRange Mode = "range"
	ModeWeek  Mode = "week"
)

// Selection is the user's choice of what to shop for.
type Selection struct {
	Mode Mode   `json:"mode"`
	Week int    `json:"week"`
	Day  string `json:"day,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Validate checks the selection against the known days.
func (s Selection) Validate() error {
	if s.Week < 1 {
		return fmt.Errorf("%w: week must be positive, got %d", ErrInvalidSelection, s.Week)
	}
	switch s.Mode {
	case ModeDay:
		if diet.DayIndex(s.Day) < 0 {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidSelection, s.Day)
		}
	case ModeRange:
		if diet.DayIndex(s.From) < 0 {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidSelection, s.From)
		}
		if diet.DayIndex(s.To) < 0 {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidSelection, s.To)
		}
	case ModeWeek:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSelection, s.Mode)
	}
	return nil
}

// TargetDays resolves the selection into concrete day keys. A range covers
// both ends whichever way round they are given.
func (s Selection) TargetDays() ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Mode {
	case ModeDay:
		return []string{s.Day}, nil
	case ModeRange:
		from, to := diet.DayIndex(s.From), diet.DayIndex(s.To)
		if from > to {
			from, to = to, from
		}
		return append([]string(nil), diet.Days[from:to+1]...), nil
	}
	return append([]string(nil), diet.Days...), nil
}

// ListKey identifies the list a selection produces, e.g. "lunedi-W1".
func (s Selection) ListKey() string {
	switch s.Mode {
	case ModeDay:
		return fmt.Sprintf("%s-W%d", s.Day, s.Week)
	case ModeRange:
		return fmt.Sprintf("%s-%s-W%d", s.From, s.To, s.Week)
	}
	return fmt.Sprintf("week-%d", s.Week)
}

// Generate builds the shopping list for sel. Day and range selections read
// the meal plan; a week selection sums the weekly product list, falling back
// to the whole week of the meal plan when the product list has no entry for
// that week.
func Generate(sel Selection, plan diet.MealPlan, products diet.ProductList) (Result, error) {
	days, err := sel.TargetDays()
	if err != nil {
		return Result{}, err
	}
	return StrategyFor(sel, plan, products).Aggregate(sel.Week, days), nil
}

// StrategyFor picks the aggregation strategy for sel.
func StrategyFor(sel Selection, plan diet.MealPlan, products diet.ProductList) Strategy {
	if sel.Mode == ModeWeek {
		if _, ok := products.Week(sel.Week); ok {
			return ProductStrategy{Products: products}
		}
	}
	return PlanStrategy{Plan: plan}
}
