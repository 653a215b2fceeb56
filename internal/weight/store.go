package weight

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for weight data operations.
type Store interface {
	ListEntries(ctx context.Context, userID string) ([]Entry, error)
	SaveEntry(ctx context.Context, userID string, in Input) (*Entry, error)
	DeleteEntry(ctx context.Context, userID, date string) error
}

// SQLStore implements Store on the pesate table.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStore creates a new SQLStore.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// ListEntries returns the user's entries ordered by date.
func (s *SQLStore) ListEntries(ctx context.Context, userID string) ([]Entry, error) {
	entries := []Entry{}
	err := s.db.SelectContext(ctx, &entries, s.db.Rebind(
		"SELECT date, peso, note, recorded_at FROM pesate WHERE user_id = ? ORDER BY date"), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weight entries: %w", err)
	}
	return entries, nil
}

// SaveEntry stores the measurement for in.Date, replacing any previous one.
func (s *SQLStore) SaveEntry(ctx context.Context, userID string, in Input) (*Entry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	e := &Entry{
		Date:      in.Date,
		Weight:    in.Weight,
		Note:      in.Note,
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
	INSERT INTO pesate (user_id, date, peso, note, recorded_at) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (user_id, date) DO UPDATE SET peso = excluded.peso, note = excluded.note, recorded_at = excluded.recorded_at`),
		userID, e.Date, e.Weight, e.Note, e.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to save weight entry: %w", err)
	}
	return e, nil
}

// DeleteEntry removes the measurement for date. Deleting a missing date is
// not an error.
func (s *SQLStore) DeleteEntry(ctx context.Context, userID, date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM pesate WHERE user_id = ? AND date = ?"), userID, date); err != nil {
		return fmt.Errorf("failed to delete weight entry: %w", err)
	}
	return nil
}
