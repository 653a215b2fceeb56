package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoDraft is returned when a model answer holds no JSON object.
var ErrNoDraft = errors.New("no recipe found in response")

// ScanPrompt asks a vision model to read a recipe from a photo.
const ScanPrompt = "Leggi la ricetta nella foto. Rispondi con un solo oggetto JSON, senza markdown, con le chiavi: " +
	"'nome' (string), 'categoria' (una tra salse_yogurt, primi, secondi, contorni, dolci), " +
	"'porzione_g' (numero intero di grammi per porzione, oppure null), 'note' (string con il procedimento), " +
	"'ingredienti' (array di oggetti con 'ingrediente' (string) e 'quantita_g' (numero di grammi))."

// ParseDraft extracts the recipe JSON object from a model answer, which
// might be wrapped in markdown or prose, and normalizes it. The draft is
// not validated: the user completes it before saving.
func ParseDraft(text string) (*Recipe, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start > end {
		return nil, ErrNoDraft
	}

	var r Recipe
	if err := json.Unmarshal([]byte(text[start:end+1]), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	r.Normalize()
	if !IsCategory(r.Category) {
		r.Category = ""
	}
	r.ID = 0
	r.UserID = ""
	r.Photo = nil
	return &r, nil
}
