package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store persists each user's current shopping list.
type Store interface {
	GetState(ctx context.Context, userID string) (*State, error)
	SaveState(ctx context.Context, userID string, state *State) error
	DeleteState(ctx context.Context, userID string) error
}

// SQLStore implements Store on the shopping_lists table.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates a new SQLStore.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

type stateRow struct {
	ListKey   string `db:"list_key"`
	Selection []byte `db:"selection"`
	Items     []byte `db:"items"`
	Checked   []byte `db:"checked"`
	Tab       string `db:"tab"`
	UpdatedAt string `db:"updated_at"`
}

// GetState returns the user's list, or nil if there is none.
func (s *SQLStore) GetState(ctx context.Context, userID string) (*State, error) {
	var row stateRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		"SELECT list_key, selection, items, checked, tab, updated_at FROM shopping_lists WHERE user_id = ?"), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	st := &State{ListKey: row.ListKey, Tab: row.Tab, UpdatedAt: row.UpdatedAt}
	if err := json.Unmarshal(row.Selection, &st.Selection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	if err := json.Unmarshal(row.Items, &st.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	if err := json.Unmarshal(row.Checked, &st.Checked); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checked items: %w", err)
	}
	return st, nil
}

// SaveState replaces the user's list.
func (s *SQLStore) SaveState(ctx context.Context, userID string, state *State) error {
	selectionJSON, err := json.Marshal(state.Selection)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	itemsJSON, err := json.Marshal(state.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	checked := state.Checked
	if checked == nil {
		checked = []string{}
	}
	checkedJSON, err := json.Marshal(checked)
	if err != nil {
		return fmt.Errorf("failed to marshal checked items: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO shopping_lists (user_id, list_key, selection, items, checked, tab, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			list_key = excluded.list_key,
			selection = excluded.selection,
			items = excluded.items,
			checked = excluded.checked,
			tab = excluded.tab,
			updated_at = excluded.updated_at`),
		userID,
		state.ListKey,
		string(selectionJSON),
		string(itemsJSON),
		string(checkedJSON),
		state.Tab,
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	return nil
}

// DeleteState removes the user's list.
func (s *SQLStore) DeleteState(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM shopping_lists WHERE user_id = ?"), userID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}
