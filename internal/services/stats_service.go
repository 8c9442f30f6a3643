package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/thread"
)

// StatsServiceImpl implements StatsService
type StatsServiceImpl struct {
	repo    EmailRepository
	grouper *thread.Grouper
	weeks   int
	logger  *log.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewStatsService creates a stats service covering the given number of
// recent weeks of activity (minimum 1).
func NewStatsService(repo EmailRepository, grouper *thread.Grouper, weeks int) *StatsServiceImpl {
	if weeks < 1 {
		weeks = 8
	}
	return &StatsServiceImpl{
		repo:    repo,
		grouper: grouper,
		weeks:   weeks,
		now:     time.Now,
	}
}

// SetLogger sets the logger for debug output
func (s *StatsServiceImpl) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// GetDashboardStats computes the dashboard summary from the stored emails.
// Category counts are unique conversations per category; grouping runs per
// category so that cross-category messages never collapse together.
func (s *StatsServiceImpl) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	emails, err := s.repo.ListEmails(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	byCategory := make(map[model.Category][]model.EmailRecord)
	unread := 0
	for _, e := range emails {
		byCategory[e.Category] = append(byCategory[e.Category], e)
		if !e.IsRead {
			unread++
		}
	}

	stats := &DashboardStats{
		CategoryCounts: make(map[model.Category]int, len(model.Categories)),
		TotalMessages:  len(emails),
		UnreadMessages: unread,
	}

	var appliedGroups []thread.Group
	for _, cat := range model.Categories {
		groups := s.grouper.Group(byCategory[cat])
		stats.CategoryCounts[cat] = len(groups)
		stats.TotalThreads += len(groups)
		if cat == model.CategoryApplied {
			appliedGroups = groups
		}
	}

	applied := stats.CategoryCounts[model.CategoryApplied]
	responses := stats.CategoryCounts[model.CategoryInterviewed] +
		stats.CategoryCounts[model.CategoryOffers] +
		stats.CategoryCounts[model.CategoryRejected]
	if applied > 0 {
		stats.ResponseRate = float64(responses) / float64(applied)
	}

	stats.WeeklyActivity = s.weeklyActivity(appliedGroups)
	return stats, nil
}

// weeklyActivity buckets new applications by the calendar week (Monday
// start) their conversation began in, oldest week first.
func (s *StatsServiceImpl) weeklyActivity(appliedGroups []thread.Group) []WeekBucket {
	latestWeek := weekStart(s.now())
	buckets := make([]WeekBucket, s.weeks)
	for i := range buckets {
		buckets[i].WeekStart = latestWeek.AddDate(0, 0, -7*(s.weeks-1-i))
	}

	for _, grp := range appliedGroups {
		started, ok := grp.EarliestEmail.ParseDate()
		if !ok {
			continue
		}
		week := weekStart(started)
		offset := int(latestWeek.Sub(week).Hours() / 24 / 7)
		idx := s.weeks - 1 - offset
		if idx >= 0 && idx < s.weeks {
			buckets[idx].Applications++
		}
	}
	return buckets
}

// weekStart truncates t to midnight UTC of its week's Monday.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	// time.Weekday has Sunday == 0; shift so Monday == 0.
	offset := (weekday + 6) % 7
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -offset)
}
