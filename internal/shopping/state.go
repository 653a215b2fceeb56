package shopping

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownItem is returned when toggling an item that is not on the list.
	ErrUnknownItem = errors.New("item not on the list")
	// ErrInvalidTab is returned for a tab other than todo or done.
	ErrInvalidTab = errors.New("invalid tab")
)

// Tabs of the shopping list view.
const (
	TabTodo = "todo"
	TabDone = "done"
)

// State is a generated shopping list together with what the user has
// already picked up.
type State struct {
	ListKey   string    `json:"list_key"`
	Selection Selection `json:"selection"`
	Items     []Item    `json:"items"`
	Checked   []string  `json:"checked"`
	Tab       string    `json:"tab"`
	UpdatedAt string    `json:"updated_at"`
}

// NewState starts a fresh list with nothing checked.
func NewState(sel Selection, res Result, now time.Time) *State {
	items := res.Items
	if items == nil {
		items = []Item{}
	}
	return &State{
		ListKey:   sel.ListKey(),
		Selection: sel,
		Items:     items,
		Checked:   []string{},
		Tab:       TabTodo,
		UpdatedAt: now.UTC().Format(time.RFC3339),
	}
}

// IsChecked reports whether the item with key has been picked up.
func (s *State) IsChecked(key string) bool {
	for _, k := range s.Checked {
		if k == key {
			return true
		}
	}
	return false
}

// Toggle flips the checked status of the item with key and returns the new
// status.
func (s *State) Toggle(key string) (bool, error) {
	found := false
	for _, it := range s.Items {
		if it.Key == key {
			found = true
			break
		}
	}
	if !found {
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, key)
	}

	for i, k := range s.Checked {
		if k == key {
			s.Checked = append(s.Checked[:i], s.Checked[i+1:]...)
			return false, nil
		}
	}
	s.Checked = append(s.Checked, key)
	return true, nil
}

// SetTab switches the visible tab.
func (s *State) SetTab(tab string) error {
	if tab != TabTodo && tab != TabDone {
		return fmt.Errorf("%w: %q", ErrInvalidTab, tab)
	}
	s.Tab = tab
	return nil
}

// Pending returns the items not yet checked.
func (s *State) Pending() []Item {
	return s.filter(false)
}

// Done returns the checked items.
func (s *State) Done() []Item {
	return s.filter(true)
}

func (s *State) filter(checked bool) []Item {
	out := []Item{}
	for _, it := range s.Items {
		if s.IsChecked(it.Key) == checked {
			out = append(out, it)
		}
	}
	return out
}
