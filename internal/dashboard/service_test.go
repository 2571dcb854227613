package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	cases     []RecentCase
	hearings  []RecentHearing
	documents []RecentDocument

	hearingDates []time.Time
	taskDueDates []time.Time
	caseCount    int
	clientCount  int

	failCases     bool
	failHearings  bool
	failDocuments bool
	failTasks     bool
	failClients   bool
}

var errStoreDown = errors.New("connection refused")

func (s *stubStore) CountCases(ctx context.Context, ownerID string) (int, error) {
	if s.failCases {
		return 0, errStoreDown
	}
	return s.caseCount, nil
}

func (s *stubStore) CountHearingsBetween(ctx context.Context, ownerID string, from, to time.Time) (int, error) {
	if s.failHearings {
		return 0, errStoreDown
	}
	n := 0
	for _, d := range s.hearingDates {
		if !d.Before(from) && d.Before(to) {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) CountOverdueTasks(ctx context.Context, ownerID string, now time.Time) (int, error) {
	if s.failTasks {
		return 0, errStoreDown
	}
	n := 0
	for _, d := range s.taskDueDates {
		if d.Before(now) {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) CountClients(ctx context.Context, ownerID string) (int, error) {
	if s.failClients {
		return 0, errStoreDown
	}
	return s.clientCount, nil
}

func (s *stubStore) RecentCases(ctx context.Context, ownerID string, limit int) ([]RecentCase, error) {
	if s.failCases {
		return nil, errStoreDown
	}
	return s.cases, nil
}

func (s *stubStore) RecentHearings(ctx context.Context, ownerID string, limit int) ([]RecentHearing, error) {
	if s.failHearings {
		return nil, errStoreDown
	}
	return s.hearings, nil
}

func (s *stubStore) RecentDocuments(ctx context.Context, ownerID string, limit int) ([]RecentDocument, error) {
	if s.failDocuments {
		return nil, errStoreDown
	}
	return s.documents, nil
}

func newTestService(store Store) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStatsAllZeroForEmptyOwner(t *testing.T) {
	svc := newTestService(&stubStore{})

	st := svc.Stats(context.Background(), "owner-1")

	assert.Equal(t, Stats{}, st)
}

func TestStatsNoProfileReturnsZeros(t *testing.T) {
	svc := newTestService(&stubStore{caseCount: 7, clientCount: 3})

	st := svc.Stats(context.Background(), "")

	assert.Equal(t, Stats{}, st)
}

func TestStatsCounts(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store := &stubStore{
		caseCount:   4,
		clientCount: 2,
		hearingDates: []time.Time{
			now.Add(time.Hour),
			now.Add(10 * 24 * time.Hour),
		},
		taskDueDates: []time.Time{now.Add(-time.Hour)},
	}
	svc := newTestService(store)
	svc.now = func() time.Time { return now }

	st := svc.Stats(context.Background(), "owner-1")

	assert.Equal(t, Stats{TotalCases: 4, UpcomingHearings: 2, OverdueTasks: 1, ActiveClients: 2}, st)
}

func TestStatsUpcomingWindowIsHalfOpen(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	store := &stubStore{
		hearingDates: []time.Time{
			now,                                           // exactly now: included
			now.Add(30*24*time.Hour - time.Second),        // 29d 23:59:59: included
			now.Add(30 * 24 * time.Hour),                  // exactly +30d: excluded
			now.Add(30*24*time.Hour + time.Second),        // 30d 1s: excluded
			now.Add(-time.Second),                         // past: excluded
		},
	}
	svc := newTestService(store)
	svc.now = func() time.Time { return now }

	st := svc.Stats(context.Background(), "owner-1")

	assert.Equal(t, 2, st.UpcomingHearings)
}

func TestStatsFailedCounterDegradesToZero(t *testing.T) {
	store := &stubStore{caseCount: 9, clientCount: 5, failHearings: true, failTasks: true}
	svc := newTestService(store)

	st := svc.Stats(context.Background(), "owner-1")

	assert.Equal(t, Stats{TotalCases: 9, UpcomingHearings: 0, OverdueTasks: 0, ActiveClients: 5}, st)
}

func TestActivityMergeOrder(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	t4 := t3.Add(time.Hour)
	t5 := t4.Add(time.Hour)

	store := &stubStore{
		cases: []RecentCase{
			{CaseNumber: "C-3", CaseTitle: "Third", CreatedAt: t3},
			{CaseNumber: "C-2", CaseTitle: "Second", CreatedAt: t2},
			{CaseNumber: "C-1", CaseTitle: "First", CreatedAt: t1},
		},
		hearings: []RecentHearing{
			{CaseID: "case-id", HearingDate: t4, HearingType: "Regular", CaseNumber: "C-3"},
		},
		documents: []RecentDocument{
			{Filename: "petition.pdf", UploadedAt: t5, CaseNumber: "C-3"},
		},
	}
	svc := newTestService(store)

	feed := svc.Activity(context.Background(), "owner-1", 10)

	require.Len(t, feed, 5)
	assert.Equal(t, "document", feed[0].Type)
	assert.Equal(t, t5, feed[0].Timestamp)
	assert.Equal(t, "hearing", feed[1].Type)
	assert.Equal(t, t4, feed[1].Timestamp)
	assert.Equal(t, "case-C-3", feed[2].ID)
	assert.Equal(t, "case-C-2", feed[3].ID)
	assert.Equal(t, "case-C-1", feed[4].ID)
}

func TestActivityTieBreakKeepsCategoryOrder(t *testing.T) {
	ts := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

	store := &stubStore{
		cases:     []RecentCase{{CaseNumber: "C-1", CaseTitle: "Tie", CreatedAt: ts}},
		hearings:  []RecentHearing{{CaseID: "x", HearingDate: ts, HearingType: "Urgent", CaseNumber: "C-1"}},
		documents: []RecentDocument{{Filename: "order.pdf", UploadedAt: ts, CaseNumber: "C-1"}},
	}
	svc := newTestService(store)

	feed := svc.Activity(context.Background(), "owner-1", 10)

	require.Len(t, feed, 3)
	assert.Equal(t, "case", feed[0].Type)
	assert.Equal(t, "hearing", feed[1].Type)
	assert.Equal(t, "document", feed[2].Type)
}

func TestActivityNeverExceedsTenAndIsSorted(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	store := &stubStore{}
	for i := 0; i < 5; i++ {
		store.cases = append(store.cases, RecentCase{
			CaseNumber: "C", CaseTitle: "t", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		store.hearings = append(store.hearings, RecentHearing{
			CaseID: "x", HearingDate: base.Add(time.Duration(i+5) * time.Minute), HearingType: "Regular",
		})
		store.documents = append(store.documents, RecentDocument{
			Filename: "f", UploadedAt: base.Add(time.Duration(i+10) * time.Minute),
		})
	}
	svc := newTestService(store)

	feed := svc.Activity(context.Background(), "owner-1", 25)

	require.Len(t, feed, 10)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Timestamp.After(feed[i-1].Timestamp),
			"feed must be non-increasing by timestamp")
	}
}

func TestActivityFailedSourceIsSkipped(t *testing.T) {
	ts := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	store := &stubStore{
		cases:        []RecentCase{{CaseNumber: "C-1", CaseTitle: "Only", CreatedAt: ts}},
		failHearings: true,
		documents:    []RecentDocument{{Filename: "a.pdf", UploadedAt: ts.Add(time.Hour)}},
	}
	svc := newTestService(store)

	feed := svc.Activity(context.Background(), "owner-1", 10)

	require.Len(t, feed, 2)
	assert.Equal(t, "document", feed[0].Type)
	assert.Equal(t, "case", feed[1].Type)
}

func TestActivityNoProfileReturnsEmpty(t *testing.T) {
	store := &stubStore{
		cases: []RecentCase{{CaseNumber: "C-1", CreatedAt: time.Now()}},
	}
	svc := newTestService(store)

	feed := svc.Activity(context.Background(), "", 10)

	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestActivityDescriptionsAndColors(t *testing.T) {
	ts := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	store := &stubStore{
		hearings: []RecentHearing{
			{CaseID: "id-1", HearingDate: ts, HearingType: "Final Argument", CaseNumber: "WP/123/2026"},
			{CaseID: "id-2", HearingDate: ts.Add(-time.Hour), HearingType: "Evidence"},
		},
	}
	svc := newTestService(store)

	feed := svc.Activity(context.Background(), "owner-1", 10)

	require.Len(t, feed, 2)
	assert.Equal(t, "Hearing scheduled for WP/123/2026", feed[0].Title)
	assert.Equal(t, "Final Argument on 15/09/2026", feed[0].Description)
	assert.Equal(t, "bg-green-500", feed[0].IconColor)
	assert.Equal(t, "Hearing scheduled for Case", feed[1].Title)
}
