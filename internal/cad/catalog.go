// Package cad holds the catalog of designated food codes (CAD): the base
// recipe of each prepared dish and its allowed alternatives.
package cad

import (
	"sort"
	"strings"
)

const codePrefix = "CAD:"

// DefaultCategory collects entries without a category.
const DefaultCategory = "Altro"

// categoryOrder is the display order of the well-known categories.
var categoryOrder = []string{"Primi", "Secondi", "Frutta", "Ingredienti Base", DefaultCategory}

// Ingredient is one line of a base recipe or alternative.
type Ingredient struct {
	Name     string  `json:"nome"`
	Quantity float64 `json:"quantita"`
	Unit     string  `json:"unita"`
}

// BaseRecipe is the reference composition of a coded dish.
type BaseRecipe struct {
	Ingredients []Ingredient `json:"ingredienti"`
}

// Alternative is an allowed substitution for a coded dish.
type Alternative struct {
	Name        string       `json:"nome"`
	Ingredients []Ingredient `json:"ingredienti"`
}

// Entry is a single CAD code.
type Entry struct {
	Code         string        `json:"codice"`
	Name         string        `json:"nome"`
	Category     string        `json:"categoria,omitempty"`
	Description  string        `json:"descrizione"`
	BaseRecipe   *BaseRecipe   `json:"ricetta_base,omitempty"`
	Alternatives []Alternative `json:"alternative,omitempty"`
}

// Catalog is the top-level shape of codici_piatti.json.
type Catalog struct {
	Entries []Entry `json:"codici_alimentari"`
}

// Group is a category with its matching entries.
type Group struct {
	Category string  `json:"categoria"`
	Entries  []Entry `json:"codici"`
}

// NormalizeCode adds the CAD: prefix to bare codes.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if strings.HasPrefix(code, codePrefix) {
		return code
	}
	return codePrefix + code
}

// Lookup returns the entry for code, which may omit the CAD: prefix.
func (c *Catalog) Lookup(code string) (*Entry, bool) {
	if c == nil || strings.TrimSpace(code) == "" {
		return nil, false
	}
	normalized := NormalizeCode(code)
	for i := range c.Entries {
		if c.Entries[i].Code == normalized {
			return &c.Entries[i], true
		}
	}
	return nil, false
}

// Search groups the entries whose name or code contains term, ignoring
// case. An empty term matches everything. Groups without matches are left
// out; known categories come first in their fixed order, the rest follow
// alphabetically.
func (c *Catalog) Search(term string) []Group {
	if c == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(term))

	grouped := make(map[string][]Entry)
	for _, e := range c.Entries {
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Name), needle) &&
			!strings.Contains(strings.ToLower(e.Code), needle) {
			continue
		}
		category := e.Category
		if category == "" {
			category = DefaultCategory
		}
		grouped[category] = append(grouped[category], e)
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return lessCategory(categories[i], categories[j])
	})

	groups := make([]Group, 0, len(categories))
	for _, category := range categories {
		groups = append(groups, Group{Category: category, Entries: grouped[category]})
	}
	return groups
}

func lessCategory(a, b string) bool {
	ia, ib := categoryIndex(a), categoryIndex(b)
	switch {
	case ia >= 0 && ib >= 0:
		return ia < ib
	case ia >= 0:
		return true
	case ib >= 0:
		return false
	}
	return a < b
}

func categoryIndex(category string) int {
	for i, c := range categoryOrder {
		if c == category {
			return i
		}
	}
	return -1
}
