package services

import (
	"context"
	"time"

	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/thread"
)

// EmailRepository handles stored email record operations
type EmailRepository interface {
	ListEmails(ctx context.Context, category model.Category) ([]model.EmailRecord, error)
	CountByCategory(ctx context.Context) (map[model.Category]int, error)
	MarkRead(ctx context.Context, ids []string) error
}

// FollowupRepository handles follow-up suggestion state persistence
type FollowupRepository interface {
	SetState(ctx context.Context, state db.FollowupState) error
	GetStates(ctx context.Context) (map[string]db.FollowupState, error)
}

// EmailService handles conversation-level email business logic
type EmailService interface {
	ListThreads(ctx context.Context, opts ThreadQueryOptions) (*ThreadPage, error)
	SearchThreads(ctx context.Context, query string, opts ThreadQueryOptions) (*ThreadPage, error)
	MarkThreadRead(ctx context.Context, group thread.Group) error
	CountUniqueThreads(ctx context.Context, category model.Category) (int, error)
}

// ThreadQueryOptions controls thread listing
type ThreadQueryOptions struct {
	// Category filters to one lifecycle stage; empty means all
	Category model.Category

	// Offset/Limit paginate over the grouped result; Limit <= 0 means all
	Offset int
	Limit  int
}

// ThreadPage is one page of grouped conversations
type ThreadPage struct {
	Threads    []thread.Group
	TotalCount int
}

// StatsService computes dashboard statistics
type StatsService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

// DashboardStats is the computed dashboard summary. Counts are unique
// conversations, not raw messages, except where named otherwise.
type DashboardStats struct {
	CategoryCounts map[model.Category]int
	TotalThreads   int
	TotalMessages  int
	UnreadMessages int

	// ResponseRate is non-applied conversations over applied ones; 0 when
	// nothing has been applied to yet.
	ResponseRate float64

	// WeeklyActivity covers the most recent weeks, oldest first.
	WeeklyActivity []WeekBucket
}

// WeekBucket counts new applications started in one calendar week
type WeekBucket struct {
	WeekStart    time.Time
	Applications int
}

// FollowupService computes and manages follow-up suggestions
type FollowupService interface {
	GetSuggestions(ctx context.Context) ([]Suggestion, error)
	Dismiss(ctx context.Context, threadKey string) error
	Complete(ctx context.Context, threadKey string) error
}

// Suggestion is one follow-up recommendation for a quiet conversation
type Suggestion struct {
	ID           string
	ThreadKey    string
	Subject      string
	From         string
	Category     model.Category
	LastActivity time.Time
	QuietDays    int
	Reason       string
}
