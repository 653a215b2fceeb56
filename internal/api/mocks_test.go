package api

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"dietapp/internal/cad"
	"dietapp/internal/diet"
	"dietapp/internal/recipe"
	"dietapp/internal/shopping"
	"dietapp/internal/weight"
)

// mockRecipeStore is an in-memory recipe.Store.
type mockRecipeStore struct {
	recipes map[int64]*recipe.Recipe
	nextID  int64
	err     error
}

func newMockRecipeStore() *mockRecipeStore {
	return &mockRecipeStore{recipes: make(map[int64]*recipe.Recipe), nextID: 1}
}

func (m *mockRecipeStore) ListRecipes(ctx context.Context, userID, category string) ([]*recipe.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []*recipe.Recipe{}
	for _, r := range m.recipes {
		if r.UserID == userID && (category == "" || r.Category == category) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockRecipeStore) GetRecipe(ctx context.Context, userID string, id int64) (*recipe.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.recipes[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	return r, nil
}

func (m *mockRecipeStore) CreateRecipe(ctx context.Context, r *recipe.Recipe) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	r.ID = m.nextID
	m.nextID++
	m.recipes[r.ID] = r
	return r.ID, nil
}

func (m *mockRecipeStore) UpdateRecipe(ctx context.Context, r *recipe.Recipe) error {
	if m.err != nil {
		return m.err
	}
	old, ok := m.recipes[r.ID]
	if !ok || old.UserID != r.UserID {
		return recipe.ErrNotFound
	}
	m.recipes[r.ID] = r
	return nil
}

func (m *mockRecipeStore) DeleteRecipe(ctx context.Context, userID string, id int64) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.recipes[id]
	if !ok || r.UserID != userID {
		return recipe.ErrNotFound
	}
	delete(m.recipes, id)
	return nil
}

// mockWeightStore is an in-memory weight.Store.
type mockWeightStore struct {
	entries map[string]weight.Entry
	err     error
}

func newMockWeightStore() *mockWeightStore {
	return &mockWeightStore{entries: make(map[string]weight.Entry)}
}

func (m *mockWeightStore) ListEntries(ctx context.Context, userID string) ([]weight.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []weight.Entry{}
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *mockWeightStore) SaveEntry(ctx context.Context, userID string, in weight.Input) (*weight.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	e := weight.Entry{Date: in.Date, Weight: in.Weight, Note: in.Note, Timestamp: "2024-03-04T08:00:00Z"}
	m.entries[in.Date] = e
	return &e, nil
}

func (m *mockWeightStore) DeleteEntry(ctx context.Context, userID, date string) error {
	if m.err != nil {
		return m.err
	}
	if _, err := time.Parse(weight.DateLayout, date); err != nil {
		return weight.ErrInvalidDate
	}
	delete(m.entries, date)
	return nil
}

// mockShoppingStore keeps one list per user.
type mockShoppingStore struct {
	states map[string]*shopping.State
	err    error
}

func newMockShoppingStore() *mockShoppingStore {
	return &mockShoppingStore{states: make(map[string]*shopping.State)}
}

func (m *mockShoppingStore) GetState(ctx context.Context, userID string) (*shopping.State, error) {
	if m.err != nil {
		return nil, m.err
	}
	st, ok := m.states[userID]
	if !ok {
		return nil, nil
	}
	cp := *st
	cp.Checked = append([]string{}, st.Checked...)
	return &cp, nil
}

func (m *mockShoppingStore) SaveState(ctx context.Context, userID string, st *shopping.State) error {
	if m.err != nil {
		return m.err
	}
	m.states[userID] = st
	return nil
}

func (m *mockShoppingStore) DeleteState(ctx context.Context, userID string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.states, userID)
	return nil
}

// mockScanner returns a fixed draft or error.
type mockScanner struct {
	draft          *recipe.Recipe
	err            error
	receivedFormat string
	receivedBytes  int
}

func (m *mockScanner) ScanRecipe(ctx context.Context, imageData []byte, format string) (*recipe.Recipe, error) {
	m.receivedFormat = format
	m.receivedBytes = len(imageData)
	if m.err != nil {
		return nil, m.err
	}
	return m.draft, nil
}

func testBundle() *diet.Bundle {
	plan := diet.MealPlan{
		diet.WeekKey(1): diet.WeekPlan{
			"lunedi": diet.DayPlan{
				"pranzo": {
					{Name: "Pasta al pomodoro", CAD: "P1", Composition: []diet.FoodEntry{
						{Name: "Pasta", Quantity: "80 g"},
						{Name: "Passata", Quantity: "100 g"},
					}},
					{Name: "Olio", Quantity: "qb"},
				},
				"colazione": {
					{Name: "Latte", Quantity: "200 g"},
					{Name: "Caffè", Quantity: "1 tazzina"},
				},
			},
			"martedi": diet.DayPlan{
				"cena": {{Name: "Uova", Quantity: "n°2"}},
			},
		},
		diet.WeekKey(2): diet.WeekPlan{
			"lunedi": diet.DayPlan{
				"pranzo": {{Name: "Riso", Quantity: "70 g"}},
			},
		},
	}
	grams := 500.0
	return &diet.Bundle{
		Plan: plan,
		CAD: &cad.Catalog{Entries: []cad.Entry{
			{Code: "CAD:P1", Name: "Pasta al pomodoro", Category: "Primi", Description: "Primo piatto"},
			{Code: "CAD:F1", Name: "Mela", Category: "Frutta"},
		}},
		Notes: json.RawMessage(`{"acqua":"2 litri al giorno"}`),
		Products: diet.ProductList{
			diet.WeekKey(2): diet.ProductWeek{"dispensa": {{Name: "Riso", Grams: &grams}}},
		},
	}
}
