package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRecipe is returned when a recipe fails validation.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Categories lists the accepted recipe categories.
var Categories = []string{"salse_yogurt", "primi", "secondi", "contorni", "dolci"}

// Ingredient represents one weighed ingredient of a recipe.
type Ingredient struct {
	ID       int64   `json:"id,omitempty" db:"id"`
	RecipeID int64   `json:"ricetta_id,omitempty" db:"ricetta_id"`
	Name     string  `json:"ingrediente" db:"ingrediente"`
	Grams    float64 `json:"quantita_g" db:"quantita_g"`
	Position int     `json:"ordine" db:"ordine"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Ingredient.
// Form inputs send quantita_g as a string.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	type Alias Ingredient // Create an alias to avoid infinite recursion
	aux := &struct {
		Grams json.RawMessage `json:"quantita_g"`
		*Alias
	}{
		Alias: (*Alias)(i),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	grams, err := parseNumber(aux.Grams)
	if err != nil {
		return fmt.Errorf("invalid quantita_g: %w", err)
	}
	i.Grams = grams
	return nil
}

func parseNumber(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || s == `""` {
		return 0, nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, err
		}
		s = strings.ReplaceAll(strings.TrimSpace(str), ",", ".")
		if s == "" {
			return 0, nil
		}
	}
	return strconv.ParseFloat(s, 64)
}

// Recipe represents a user recipe with its ingredients.
type Recipe struct {
	ID           int64        `json:"id" db:"id"`
	Name         string       `json:"nome" db:"nome"`
	Category     string       `json:"categoria" db:"categoria"`
	PortionGrams *int64       `json:"porzione_g" db:"porzione_g"`
	Photo        *string      `json:"foto_base64" db:"foto_base64"`
	Note         *string      `json:"note" db:"note"`
	UserID       string       `json:"user_id,omitempty" db:"user_id"`
	CreatedAt    string       `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt    string       `json:"updated_at,omitempty" db:"updated_at"`
	Ingredients  []Ingredient `json:"ingredienti" db:"-"`
}

// Normalize trims text fields, lower-cases the category, turns empty
// optional fields into nil and drops ingredient rows without a name or
// quantity. Ingredient positions follow the slice order.
func (r *Recipe) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	if r.Photo != nil && strings.TrimSpace(*r.Photo) == "" {
		r.Photo = nil
	}
	if r.Note != nil && strings.TrimSpace(*r.Note) == "" {
		r.Note = nil
	}
	if r.PortionGrams != nil && *r.PortionGrams <= 0 {
		r.PortionGrams = nil
	}

	ingredients := make([]Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		if ing.Name == "" || ing.Grams <= 0 {
			continue
		}
		ing.Position = len(ingredients)
		ingredients = append(ingredients, ing)
	}
	r.Ingredients = ingredients
}

// Validate checks the fields the store requires.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: nome is required", ErrInvalidRecipe)
	}
	if !IsCategory(r.Category) {
		return fmt.Errorf("%w: unknown categoria %q", ErrInvalidRecipe, r.Category)
	}
	return nil
}

// IsCategory reports whether c is an accepted category.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
