package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/thread"
)

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	repo    EmailRepository
	grouper *thread.Grouper
	logger  *log.Logger // Optional - for debug logging
}

// NewEmailService creates a new email service
func NewEmailService(repo EmailRepository, grouper *thread.Grouper) *EmailServiceImpl {
	return &EmailServiceImpl{
		repo:    repo,
		grouper: grouper,
	}
}

// SetLogger sets the logger for debug output
func (s *EmailServiceImpl) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// ListThreads returns grouped conversations for a category, paginated over
// the grouped result. TotalCount is the group count before pagination.
func (s *EmailServiceImpl) ListThreads(ctx context.Context, opts ThreadQueryOptions) (*ThreadPage, error) {
	if opts.Category != "" && !opts.Category.IsValid() {
		return nil, fmt.Errorf("list threads: %w: category %q", ErrInvalidInput, opts.Category)
	}

	emails, err := s.repo.ListEmails(ctx, opts.Category)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	groups := s.grouper.Group(emails)
	total := len(groups)

	return &ThreadPage{
		Threads:    paginate(groups, opts.Offset, opts.Limit),
		TotalCount: total,
	}, nil
}

// SearchThreads returns the conversations where any member matches the query
// in subject or sender, case-insensitively. Grouping happens before
// filtering so a match surfaces its whole conversation.
func (s *EmailServiceImpl) SearchThreads(ctx context.Context, query string, opts ThreadQueryOptions) (*ThreadPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search threads: %w: empty query", ErrInvalidInput)
	}

	emails, err := s.repo.ListEmails(ctx, opts.Category)
	if err != nil {
		return nil, fmt.Errorf("search threads: %w", err)
	}

	needle := strings.ToLower(query)
	var matched []thread.Group
	for _, grp := range s.grouper.Group(emails) {
		for _, e := range grp.Emails {
			if strings.Contains(strings.ToLower(e.Subject), needle) ||
				strings.Contains(strings.ToLower(e.From), needle) {
				matched = append(matched, grp)
				break
			}
		}
	}

	return &ThreadPage{
		Threads:    paginate(matched, opts.Offset, opts.Limit),
		TotalCount: len(matched),
	}, nil
}

// MarkThreadRead flags every unread member of a conversation as read
func (s *EmailServiceImpl) MarkThreadRead(ctx context.Context, group thread.Group) error {
	var ids []string
	for _, e := range group.Emails {
		if !e.IsRead {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.repo.MarkRead(ctx, ids); err != nil {
		return fmt.Errorf("mark thread read: %w", err)
	}
	if s.logger != nil {
		s.logger.Printf("marked %d messages read in thread %s", len(ids), group.ThreadID)
	}
	return nil
}

// CountUniqueThreads returns the number of logical conversations in a
// category (or across all emails when category is empty)
func (s *EmailServiceImpl) CountUniqueThreads(ctx context.Context, category model.Category) (int, error) {
	if category != "" && !category.IsValid() {
		return 0, fmt.Errorf("count threads: %w: category %q", ErrInvalidInput, category)
	}

	emails, err := s.repo.ListEmails(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("count threads: %w", err)
	}
	return s.grouper.CountUnique(emails), nil
}

func paginate(groups []thread.Group, offset, limit int) []thread.Group {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(groups) {
		return nil
	}
	groups = groups[offset:]
	if limit > 0 && limit < len(groups) {
		groups = groups[:limit]
	}
	return groups
}
