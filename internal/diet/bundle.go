package diet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"dietapp/internal/cad"
)

// Data file names inside the data directory.
const (
	PlanFile     = "dieta.json"
	CADFile      = "codici_piatti.json"
	NotesFile    = "note_generali.json"
	ProductsFile = "alimenti_settimanali.json"
)

var (
	// ErrWeekNotFound is returned when the plan has no such week.
	ErrWeekNotFound = errors.New("week not found")
	// ErrDayNotFound is returned when the week has no such day.
	ErrDayNotFound = errors.New("day not found")
)

// Bundle is the static data the application serves, loaded once at start.
type Bundle struct {
	Plan     MealPlan
	CAD      *cad.Catalog
	Notes    json.RawMessage
	Products ProductList
}

// Load reads the data files from dir in parallel. The product list is
// optional; the other files are required.
func Load(ctx context.Context, dir string) (*Bundle, error) {
	var (
		doc      Document
		catalog  cad.Catalog
		notes    json.RawMessage
		products ProductList
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, PlanFile), &doc)
	})
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, CADFile), &catalog)
	})
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, NotesFile), &notes)
	})
	g.Go(func() error {
		err := readJSON(ctx, filepath.Join(dir, ProductsFile), &products)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if doc.Plan == nil {
		return nil, fmt.Errorf("%s has no piano_alimentare", PlanFile)
	}
	return &Bundle{Plan: doc.Plan, CAD: &catalog, Notes: notes, Products: products}, nil
}

func readJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}

// EntryView is a plan entry as shown to the user, with its CAD entry
// resolved when the entry is a coded prepared dish.
type EntryView struct {
	FoodEntry
	CADEntry *cad.Entry `json:"cad_entry,omitempty"`
}

// MealView is one meal of a day.
type MealView struct {
	Key     string      `json:"key"`
	Name    string      `json:"name"`
	Entries []EntryView `json:"entries"`
}

// DayView returns the meals of a day in eating order.
func (b *Bundle) DayView(week int, day string) ([]MealView, error) {
	w, ok := b.Plan.Week(week)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrWeekNotFound, week)
	}
	meals, ok := w[day]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, day)
	}

	keys := make([]string, 0, len(meals))
	for k := range meals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		mi, mj := MealIndex(keys[i]), MealIndex(keys[j])
		if mi < 0 && mj < 0 {
			return keys[i] < keys[j]
		}
		if mi < 0 || mj < 0 {
			return mj < 0
		}
		return mi < mj
	})

	views := make([]MealView, 0, len(keys))
	for _, k := range keys {
		entries := make([]EntryView, 0, len(meals[k]))
		for _, f := range meals[k] {
			ev := EntryView{FoodEntry: f}
			if f.IsPrepared() && f.CAD != "" {
				if e, ok := b.CAD.Lookup(f.CAD); ok {
					ev.CADEntry = e
				}
			}
			entries = append(entries, ev)
		}
		views = append(views, MealView{Key: k, Name: MealName(k), Entries: entries})
	}
	return views, nil
}
