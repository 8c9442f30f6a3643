package db

import (
	"context"
	"fmt"
	"time"
)

// FollowupState tracks what the user did with a follow-up suggestion for a
// given thread key.
type FollowupState struct {
	ThreadKey string
	Dismissed bool
	Completed bool
}

// FollowupStore persists follow-up suggestion state on top of Store
type FollowupStore struct {
	store *Store
}

// NewFollowupStore creates a follow-up store backed by the shared database
func NewFollowupStore(store *Store) *FollowupStore {
	return &FollowupStore{store: store}
}

// SetState records dismissed/completed flags for a thread key
func (s *FollowupStore) SetState(ctx context.Context, state FollowupState) error {
	if s == nil || s.store == nil || s.store.db == nil {
		return fmt.Errorf("followup store unavailable")
	}
	if state.ThreadKey == "" {
		return fmt.Errorf("empty thread key")
	}

	_, err := s.store.db.ExecContext(ctx, `
INSERT OR REPLACE INTO followup_state (thread_key, dismissed, completed, last_updated)
VALUES (?, ?, ?, ?);
`, state.ThreadKey, state.Dismissed, state.Completed, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set followup state: %w", err)
	}
	return nil
}

// GetStates returns all recorded follow-up states keyed by thread key
func (s *FollowupStore) GetStates(ctx context.Context) (map[string]FollowupState, error) {
	if s == nil || s.store == nil || s.store.db == nil {
		return nil, fmt.Errorf("followup store unavailable")
	}

	rows, err := s.store.db.QueryContext(ctx, `SELECT thread_key, dismissed, completed FROM followup_state`)
	if err != nil {
		return nil, fmt.Errorf("get followup states: %w", err)
	}
	defer rows.Close()

	states := make(map[string]FollowupState)
	for rows.Next() {
		var st FollowupState
		if err := rows.Scan(&st.ThreadKey, &st.Dismissed, &st.Completed); err != nil {
			return nil, fmt.Errorf("scan followup state: %w", err)
		}
		states[st.ThreadKey] = st
	}
	return states, rows.Err()
}
