package thread

import (
	"testing"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupEmptyInput(t *testing.T) {
	g := NewGrouper(DefaultRules())

	groups := g.Group(nil)
	assert.Empty(t, groups)
	assert.Equal(t, 0, g.CountUnique(nil))
	assert.Equal(t, 0, g.CountUnique([]model.EmailRecord{}))
}

func TestInterviewEmailsMergeByCompany(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{
			ID:       "m1",
			ThreadID: "t1",
			From:     "jane@acme.com",
			Subject:  "Interview Confirmed",
			Date:     "2024-03-01T10:00:00Z",
			Category: model.CategoryInterviewed,
		},
		{
			ID:       "m2",
			ThreadID: "t2",
			From:     "acme@myworkday.com",
			Subject:  "Reminder - Interview with Jane",
			Date:     "2024-03-02T10:00:00Z",
			Category: model.CategoryInterviewed,
		},
	}

	groups := g.Group(emails)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].MessageCount)
	assert.Equal(t, 1, g.CountUnique(emails))

	// Display fields come from the latest member.
	assert.Equal(t, "Reminder - Interview with Jane", groups[0].Subject)
	assert.Equal(t, "acme@myworkday.com", groups[0].From)
}

func TestProviderThreadIDGroupsNonInterviewEmails(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{ID: "m1", ThreadID: "t9", From: "jobs@acme.com", Subject: "Your application", Date: "2024-01-01", Category: model.CategoryApplied},
		{ID: "m2", ThreadID: "t9", From: "jobs@acme.com", Subject: "Re: Your application", Date: "2024-01-02", Category: model.CategoryApplied},
		{ID: "m3", ThreadID: "t10", From: "jobs@other.com", Subject: "Thanks for applying", Date: "2024-01-03", Category: model.CategoryApplied},
	}

	groups := g.Group(emails)
	require.Len(t, groups, 2)

	// A thread id equal to the message id is a singleton signal, not a
	// conversation, and falls through to the subject rule.
	single := []model.EmailRecord{
		{ID: "m4", ThreadID: "m4", From: "jobs@acme.com", Subject: "Offer details", Category: model.CategoryOffers},
	}
	assert.Equal(t, "company_acme_offer detaiis", g.Key(single[0]))
}

func TestSubjectNormalizationCollapsesReminders(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{ID: "m1", From: "recruiting@q2ebanking.com", Subject: "Q2 Software Engineer Interview", Date: "2024-02-01", Category: model.CategoryApplied},
		{ID: "m2", From: "recruiting@q2ebanking.com", Subject: "Reminder - Q2 Software Engineer Interview", Date: "2024-02-02", Category: model.CategoryApplied},
	}

	assert.Equal(t, g.Key(emails[0]), g.Key(emails[1]))

	groups := g.Group(emails)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].MessageCount)
}

func TestPartitionInvariant(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{ID: "m1", ThreadID: "t1", From: "a@acme.com", Subject: "One", Date: "2024-01-01", Category: model.CategoryApplied},
		{ID: "m2", ThreadID: "t1", From: "a@acme.com", Subject: "Re: One", Date: "2024-01-02", Category: model.CategoryApplied},
		{ID: "m3", From: "b@beta.com", Subject: "Two", Date: "2024-01-03", Category: model.CategoryRejected},
		{ID: "m4", From: "", Subject: "", Category: model.CategoryIrrelevant},
		{ID: "m5", From: "c@myworkday.com", Subject: "Interview", Date: "bogus", Category: model.CategoryInterviewed},
	}

	groups := g.Group(emails)

	seen := make(map[string]int)
	for _, grp := range groups {
		assert.Equal(t, len(grp.Emails), grp.MessageCount)
		for _, e := range grp.Emails {
			seen[e.ID]++
		}
	}
	require.Len(t, seen, len(emails))
	for _, e := range emails {
		assert.Equal(t, 1, seen[e.ID], "email %s must appear exactly once", e.ID)
	}
}

func TestIdempotence(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{ID: "m1", ThreadID: "t1", From: "a@acme.com", Subject: "One", Date: "2024-01-01", Category: model.CategoryApplied},
		{ID: "m2", From: "b@beta.com", Subject: "Two", Date: "2024-01-03", Category: model.CategoryOffers, IsRead: true},
		{ID: "m3", From: "acme@greenhouse.io", Subject: "Interview loop", Date: "2024-01-05", Category: model.CategoryInterviewed},
	}

	first := g.Group(emails)
	second := g.Group(emails)
	assert.Equal(t, first, second)
	assert.Equal(t, len(first), g.CountUnique(emails))
}

func TestUnreadAggregation(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{ID: "m1", ThreadID: "t1", From: "a@acme.com", Subject: "One", Date: "2024-01-01", IsRead: true, Category: model.CategoryApplied},
		{ID: "m2", ThreadID: "t1", From: "a@acme.com", Subject: "Re: One", Date: "2024-01-02", IsRead: false, Category: model.CategoryApplied},
		{ID: "m3", ThreadID: "t1", From: "a@acme.com", Subject: "Re: One", Date: "2024-01-03", IsRead: true, Category: model.CategoryApplied},
	}

	groups := g.Group(emails)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].UnreadCount)
	assert.Equal(t, 3, groups[0].MessageCount)
}

func TestGroupsSortedByRecency(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{ID: "m1", From: "a@alpha.com", Subject: "Alpha role", Date: "2024-01-01", Category: model.CategoryApplied},
		{ID: "m2", From: "b@beta.com", Subject: "Beta role", Date: "2024-03-01", Category: model.CategoryApplied},
		{ID: "m3", From: "c@gamma.com", Subject: "Gamma role", Date: "2024-02-01", Category: model.CategoryApplied},
	}

	groups := g.Group(emails)
	require.Len(t, groups, 3)
	assert.Equal(t, "Beta role", groups[0].Subject)
	assert.Equal(t, "Gamma role", groups[1].Subject)
	assert.Equal(t, "Alpha role", groups[2].Subject)
}

func TestInvalidDatesNeverWinComparisons(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{ID: "m1", ThreadID: "t1", From: "a@acme.com", Subject: "First", Date: "not-a-date", Category: model.CategoryApplied},
		{ID: "m2", ThreadID: "t1", From: "a@acme.com", Subject: "Second", Date: "2024-01-05", Category: model.CategoryApplied},
		{ID: "m3", ThreadID: "t1", From: "a@acme.com", Subject: "Third", Date: "", Category: model.CategoryApplied},
		{ID: "m4", ThreadID: "t1", From: "a@acme.com", Subject: "Fourth", Date: "2024-01-02", Category: model.CategoryApplied},
	}

	groups := g.Group(emails)
	require.Len(t, groups, 1)
	assert.Equal(t, "m2", groups[0].LatestEmail.ID)
	assert.Equal(t, "m4", groups[0].EarliestEmail.ID)

	// A group made only of dateless emails still forms, keeps its first
	// member as representative, and sorts after dated groups.
	dateless := []model.EmailRecord{
		{ID: "m5", ThreadID: "t2", From: "b@beta.com", Subject: "No date", Date: "nope", Category: model.CategoryApplied},
		{ID: "m6", From: "c@gamma.com", Subject: "Dated", Date: "2023-01-01", Category: model.CategoryApplied},
	}
	got := g.Group(dateless)
	require.Len(t, got, 2)
	assert.Equal(t, "m6", got[0].LatestEmail.ID)
	assert.Equal(t, "m5", got[1].LatestEmail.ID)
	assert.True(t, got[1].LatestTime.IsZero())
}

func TestMissingSenderAndSubjectFallToSingleton(t *testing.T) {
	g := NewGrouper(DefaultRules())

	emails := []model.EmailRecord{
		{ID: "m1", Category: model.CategoryApplied},
		{ID: "m2", Category: model.CategoryApplied},
	}

	assert.Equal(t, "email_m1", g.Key(emails[0]))
	assert.Equal(t, "email_m2", g.Key(emails[1]))
	assert.Equal(t, 2, g.CountUnique(emails))
}

func TestInterviewRuleWinsOverThreadID(t *testing.T) {
	g := NewGrouper(DefaultRules())

	// Same company, different provider threads: the interview rule takes
	// priority and merges them anyway.
	emails := []model.EmailRecord{
		{ID: "m1", ThreadID: "t1", From: "recruiter@acme.com", Subject: "Phone screen", Date: "2024-01-01", Category: model.CategoryInterviewed},
		{ID: "m2", ThreadID: "t2", From: "scheduling@acme.com", Subject: "Onsite loop", Date: "2024-01-10", Category: model.CategoryInterviewed},
	}

	groups := g.Group(emails)
	require.Len(t, groups, 1)
	assert.Equal(t, "t1", groups[0].ThreadID)
}

func TestGenericATSAliasFallsThrough(t *testing.T) {
	g := NewGrouper(DefaultRules())

	// notifications@lever.co carries no employer identity anywhere, so the
	// interview rule cannot apply and the thread id rule takes over.
	e := model.EmailRecord{
		ID:       "m1",
		ThreadID: "t7",
		From:     "notifications@lever.co",
		Subject:  "",
		Category: model.CategoryInterviewed,
	}
	assert.Equal(t, "thread_t7", g.Key(e))
}
