package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/thread"
)

// FollowupServiceImpl implements FollowupService
type FollowupServiceImpl struct {
	emails  EmailRepository
	state   FollowupRepository
	grouper *thread.Grouper
	logger  *log.Logger

	appliedAfter   time.Duration
	interviewAfter time.Duration
	maxSuggestions int

	// now is swappable for tests
	now func() time.Time
}

// NewFollowupService creates a follow-up service. Quiet windows of zero or
// less fall back to 7 days (applied) and 5 days (interviewed).
func NewFollowupService(emails EmailRepository, state FollowupRepository, grouper *thread.Grouper,
	appliedAfterDays, interviewAfterDays, maxSuggestions int) *FollowupServiceImpl {
	if appliedAfterDays <= 0 {
		appliedAfterDays = 7
	}
	if interviewAfterDays <= 0 {
		interviewAfterDays = 5
	}
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &FollowupServiceImpl{
		emails:         emails,
		state:          state,
		grouper:        grouper,
		appliedAfter:   time.Duration(appliedAfterDays) * 24 * time.Hour,
		interviewAfter: time.Duration(interviewAfterDays) * 24 * time.Hour,
		maxSuggestions: maxSuggestions,
		now:            time.Now,
	}
}

// SetLogger sets the logger for debug output
func (s *FollowupServiceImpl) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// GetSuggestions returns follow-up suggestions for quiet applied and
// interviewed conversations, most recently active first, capped at the
// configured maximum. Dismissed and completed conversations are excluded,
// as are conversations with no parseable dates at all.
func (s *FollowupServiceImpl) GetSuggestions(ctx context.Context) ([]Suggestion, error) {
	states, err := s.state.GetStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("followup suggestions: %w", err)
	}

	var suggestions []Suggestion
	collect := func(category model.Category, quietAfter time.Duration, reason string) error {
		emails, err := s.emails.ListEmails(ctx, category)
		if err != nil {
			return fmt.Errorf("followup suggestions: %w", err)
		}
		now := s.now()
		for _, grp := range s.grouper.Group(emails) {
			if grp.LatestTime.IsZero() {
				continue
			}
			quiet := now.Sub(grp.LatestTime)
			if quiet < quietAfter {
				continue
			}
			if st, ok := states[grp.Key]; ok && (st.Dismissed || st.Completed) {
				continue
			}
			suggestions = append(suggestions, Suggestion{
				ID:           uuid.NewString(),
				ThreadKey:    grp.Key,
				Subject:      grp.Subject,
				From:         grp.From,
				Category:     category,
				LastActivity: grp.LatestTime,
				QuietDays:    int(quiet.Hours() / 24),
				Reason:       reason,
			})
		}
		return nil
	}

	if err := collect(model.CategoryApplied, s.appliedAfter,
		"no reply since you applied"); err != nil {
		return nil, err
	}
	if err := collect(model.CategoryInterviewed, s.interviewAfter,
		"interview thread has gone quiet"); err != nil {
		return nil, err
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].LastActivity.After(suggestions[j].LastActivity)
	})
	if len(suggestions) > s.maxSuggestions {
		suggestions = suggestions[:s.maxSuggestions]
	}
	return suggestions, nil
}

// Dismiss hides a suggestion until the conversation sees new activity state
func (s *FollowupServiceImpl) Dismiss(ctx context.Context, threadKey string) error {
	if threadKey == "" {
		return fmt.Errorf("dismiss: %w: empty thread key", ErrInvalidInput)
	}
	if err := s.state.SetState(ctx, db.FollowupState{ThreadKey: threadKey, Dismissed: true}); err != nil {
		return fmt.Errorf("dismiss %s: %w", threadKey, err)
	}
	return nil
}

// Complete records that the user followed up on a conversation
func (s *FollowupServiceImpl) Complete(ctx context.Context, threadKey string) error {
	if threadKey == "" {
		return fmt.Errorf("complete: %w: empty thread key", ErrInvalidInput)
	}
	if err := s.state.SetState(ctx, db.FollowupState{ThreadKey: threadKey, Completed: true}); err != nil {
		return fmt.Errorf("complete %s: %w", threadKey, err)
	}
	return nil
}
