package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when updating or deleting a recipe that does not exist.
var ErrNotFound = errors.New("recipe not found")

// Store defines the interface for recipe data operations.
type Store interface {
	ListRecipes(ctx context.Context, userID, category string) ([]*Recipe, error)
	GetRecipe(ctx context.Context, userID string, id int64) (*Recipe, error)
	CreateRecipe(ctx context.Context, recipe *Recipe) (int64, error)
	UpdateRecipe(ctx context.Context, recipe *Recipe) error
	DeleteRecipe(ctx context.Context, userID string, id int64) error
}

// SQLStore implements the Store interface on the ricette and ingredienti
// tables. It works with both the postgres and the sqlite driver.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStore creates a new SQLStore.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

const recipeColumns = "id, nome, categoria, porzione_g, foto_base64, note, user_id, created_at, updated_at"

// ListRecipes retrieves the user's recipes, newest first, optionally
// restricted to one category.
func (s *SQLStore) ListRecipes(ctx context.Context, userID, category string) ([]*Recipe, error) {
	query := "SELECT " + recipeColumns + " FROM ricette WHERE user_id = ?"
	args := []interface{}{userID}
	if category != "" {
		query += " AND categoria = ?"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC, id DESC"

	var recipes []*Recipe
	if err := s.db.SelectContext(ctx, &recipes, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}
	if len(recipes) == 0 {
		return []*Recipe{}, nil
	}

	ids := make([]int64, len(recipes))
	byID := make(map[int64]*Recipe, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
		r.Ingredients = []Ingredient{}
		byID[r.ID] = r
	}

	query, args, err := sqlx.In("SELECT id, ricetta_id, ingrediente, quantita_g, ordine FROM ingredienti WHERE ricetta_id IN (?) ORDER BY ricetta_id, ordine", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build ingredients query: %w", err)
	}
	var ingredients []Ingredient
	if err := s.db.SelectContext(ctx, &ingredients, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	for _, ing := range ingredients {
		if r, ok := byID[ing.RecipeID]; ok {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}

	return recipes, nil
}

// GetRecipe retrieves a single recipe with its ingredients.
func (s *SQLStore) GetRecipe(ctx context.Context, userID string, id int64) (*Recipe, error) {
	var r Recipe
	err := s.db.GetContext(ctx, &r, s.db.Rebind("SELECT "+recipeColumns+" FROM ricette WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Recipe not found
		}
		return nil, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	r.Ingredients = []Ingredient{}
	if err := s.db.SelectContext(ctx, &r.Ingredients, s.db.Rebind(
		"SELECT id, ricetta_id, ingrediente, quantita_g, ordine FROM ingredienti WHERE ricetta_id = ? ORDER BY ordine"), id); err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	return &r, nil
}

// CreateRecipe saves a new recipe and its ingredients and returns its id.
func (s *SQLStore) CreateRecipe(ctx context.Context, recipe *Recipe) (int64, error) {
	now := s.now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowxContext(ctx, tx.Rebind(
		`INSERT INTO ricette (nome, categoria, porzione_g, foto_base64, note, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		recipe.Name,
		recipe.Category,
		recipe.PortionGrams,
		recipe.Photo,
		recipe.Note,
		recipe.UserID,
		now,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save recipe: %w", err)
	}

	if err := insertIngredients(ctx, tx, id, recipe.Ingredients); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit recipe: %w", err)
	}

	recipe.ID = id
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	return id, nil
}

// UpdateRecipe overwrites a recipe and replaces its ingredients.
func (s *SQLStore) UpdateRecipe(ctx context.Context, recipe *Recipe) error {
	now := s.now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind(
		`UPDATE ricette SET nome = ?, categoria = ?, porzione_g = ?, foto_base64 = ?, note = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`),
		recipe.Name,
		recipe.Category,
		recipe.PortionGrams,
		recipe.Photo,
		recipe.Note,
		now,
		recipe.ID,
		recipe.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM ingredienti WHERE ricetta_id = ?"), recipe.ID); err != nil {
		return fmt.Errorf("failed to delete ingredients: %w", err)
	}
	if err := insertIngredients(ctx, tx, recipe.ID, recipe.Ingredients); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}

	recipe.UpdatedAt = now
	return nil
}

// DeleteRecipe removes a recipe and its ingredients.
func (s *SQLStore) DeleteRecipe(ctx context.Context, userID string, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM ricette WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM ingredienti WHERE ricetta_id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete ingredients: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe deletion: %w", err)
	}
	return nil
}

func insertIngredients(ctx context.Context, tx *sqlx.Tx, recipeID int64, ingredients []Ingredient) error {
	for i, ing := range ingredients {
		_, err := tx.ExecContext(ctx, tx.Rebind(
			"INSERT INTO ingredienti (ricetta_id, ingrediente, quantita_g, ordine) VALUES (?, ?, ?, ?)"),
			recipeID,
			ing.Name,
			ing.Grams,
			i,
		)
		if err != nil {
			return fmt.Errorf("failed to save ingredient %q: %w", ing.Name, err)
		}
	}
	return nil
}
