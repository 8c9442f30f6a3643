package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/thread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEmailRepository implements EmailRepository for testing
type MockEmailRepository struct {
	mock.Mock
}

func (m *MockEmailRepository) ListEmails(ctx context.Context, category model.Category) ([]model.EmailRecord, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EmailRecord), args.Error(1)
}

func (m *MockEmailRepository) CountByCategory(ctx context.Context) (map[model.Category]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.Category]int), args.Error(1)
}

func (m *MockEmailRepository) MarkRead(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockFollowupRepository implements FollowupRepository for testing
type MockFollowupRepository struct {
	mock.Mock
}

func (m *MockFollowupRepository) SetState(ctx context.Context, state db.FollowupState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockFollowupRepository) GetStates(ctx context.Context) (map[string]db.FollowupState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]db.FollowupState), args.Error(1)
}

func appliedFixture() []model.EmailRecord {
	return []model.EmailRecord{
		{ID: "m1", ThreadID: "t1", From: "jobs@acme.com", Subject: "Your application", Date: "2024-01-01T10:00:00Z", Category: model.CategoryApplied},
		{ID: "m2", ThreadID: "t1", From: "jobs@acme.com", Subject: "Re: Your application", Date: "2024-01-02T10:00:00Z", Category: model.CategoryApplied},
		{ID: "m3", From: "careers@beta.com", Subject: "Thanks for applying", Date: "2024-01-03T10:00:00Z", Category: model.CategoryApplied},
		{ID: "m4", From: "jobs@gamma.com", Subject: "Application received", Date: "2024-01-04T10:00:00Z", Category: model.CategoryApplied},
	}
}

func TestListThreadsGroupsAndPaginates(t *testing.T) {
	repo := &MockEmailRepository{}
	svc := NewEmailService(repo, thread.NewGrouper(thread.DefaultRules()))
	ctx := context.Background()

	repo.On("ListEmails", ctx, model.CategoryApplied).Return(appliedFixture(), nil)

	page, err := svc.ListThreads(ctx, ThreadQueryOptions{Category: model.CategoryApplied})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Threads, 3)
	// Newest conversation first
	assert.Equal(t, "Application received", page.Threads[0].Subject)

	// Second page of one
	page, err = svc.ListThreads(ctx, ThreadQueryOptions{Category: model.CategoryApplied, Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Threads, 1)
	assert.Equal(t, "Thanks for applying", page.Threads[0].Subject)

	// Offset past the end yields an empty page, not an error
	page, err = svc.ListThreads(ctx, ThreadQueryOptions{Category: model.CategoryApplied, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Threads)

	repo.AssertExpectations(t)
}

func TestListThreadsInvalidCategory(t *testing.T) {
	repo := &MockEmailRepository{}
	svc := NewEmailService(repo, thread.NewGrouper(thread.DefaultRules()))

	_, err := svc.ListThreads(context.Background(), ThreadQueryOptions{Category: "spam"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListThreadsRepositoryError(t *testing.T) {
	repo := &MockEmailRepository{}
	svc := NewEmailService(repo, thread.NewGrouper(thread.DefaultRules()))
	ctx := context.Background()

	repo.On("ListEmails", ctx, model.Category("")).Return(nil, errors.New("disk gone"))

	_, err := svc.ListThreads(ctx, ThreadQueryOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestSearchThreadsMatchesWholeConversation(t *testing.T) {
	repo := &MockEmailRepository{}
	svc := NewEmailService(repo, thread.NewGrouper(thread.DefaultRules()))
	ctx := context.Background()

	repo.On("ListEmails", ctx, model.Category("")).Return(appliedFixture(), nil)

	// "your application" only matches the t1 conversation; both of its
	// messages come back with it.
	page, err := svc.SearchThreads(ctx, "your application", ThreadQueryOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 2, page.Threads[0].MessageCount)
}

func TestSearchThreadsEmptyQuery(t *testing.T) {
	repo := &MockEmailRepository{}
	svc := NewEmailService(repo, thread.NewGrouper(thread.DefaultRules()))

	_, err := svc.SearchThreads(context.Background(), "   ", ThreadQueryOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkThreadReadOnlyTouchesUnread(t *testing.T) {
	repo := &MockEmailRepository{}
	svc := NewEmailService(repo, thread.NewGrouper(thread.DefaultRules()))
	ctx := context.Background()

	grp := thread.Group{
		ThreadID: "t1",
		Emails: []model.EmailRecord{
			{ID: "m1", IsRead: true},
			{ID: "m2", IsRead: false},
			{ID: "m3", IsRead: false},
		},
	}

	repo.On("MarkRead", ctx, []string{"m2", "m3"}).Return(nil)
	require.NoError(t, svc.MarkThreadRead(ctx, grp))
	repo.AssertExpectations(t)

	// Fully-read threads don't hit the repository at all
	allRead := thread.Group{Emails: []model.EmailRecord{{ID: "m1", IsRead: true}}}
	require.NoError(t, svc.MarkThreadRead(ctx, allRead))
	repo.AssertNumberOfCalls(t, "MarkRead", 1)
}

func TestCountUniqueThreads(t *testing.T) {
	repo := &MockEmailRepository{}
	svc := NewEmailService(repo, thread.NewGrouper(thread.DefaultRules()))
	ctx := context.Background()

	repo.On("ListEmails", ctx, model.CategoryApplied).Return(appliedFixture(), nil)

	n, err := svc.CountUniqueThreads(ctx, model.CategoryApplied)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = svc.CountUniqueThreads(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
