package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

const (
	upcomingWindow  = 30 * 24 * time.Hour
	recentPerSource = 5
	feedLimit       = 10

	colorCase     = "bg-blue-500"
	colorHearing  = "bg-green-500"
	colorDocument = "bg-purple-500"
)

// Stats is the dashboard counters snapshot.
type Stats struct {
	TotalCases       int `json:"totalCases"`
	UpcomingHearings int `json:"upcomingHearings"`
	OverdueTasks     int `json:"overdueTasks"`
	ActiveClients    int `json:"activeClients"`
}

// Activity is one entry of the merged recent-activity feed.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	IconColor   string    `json:"iconColor"`
}

type RecentCase struct {
	CaseNumber string
	CaseTitle  string
	CreatedAt  time.Time
}

type RecentHearing struct {
	CaseID      string
	HearingDate time.Time
	HearingType string
	CaseNumber  string
}

type RecentDocument struct {
	Filename   string
	UploadedAt time.Time
	CaseNumber string
}

// Store is the query surface the aggregation needs. Repo implements it over
// Postgres; tests substitute stubs.
type Store interface {
	CountCases(ctx context.Context, ownerID string) (int, error)
	CountHearingsBetween(ctx context.Context, ownerID string, from, to time.Time) (int, error)
	CountOverdueTasks(ctx context.Context, ownerID string, now time.Time) (int, error)
	CountClients(ctx context.Context, ownerID string) (int, error)
	RecentCases(ctx context.Context, ownerID string, limit int) ([]RecentCase, error)
	RecentHearings(ctx context.Context, ownerID string, limit int) ([]RecentHearing, error)
	RecentDocuments(ctx context.Context, ownerID string, limit int) ([]RecentDocument, error)
}

type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Stats computes the four dashboard counters for one owner. The counts are
// independent: a failing sub-query degrades that counter to zero instead of
// failing the snapshot. An empty ownerID (no profile yet) yields all zeros.
func (s *Service) Stats(ctx context.Context, ownerID string) Stats {
	if ownerID == "" {
		return Stats{}
	}

	now := s.now().UTC()
	var st Stats
	var wg sync.WaitGroup

	count := func(dst *int, name string, fn func() (int, error)) {
		defer wg.Done()
		n, err := fn()
		if err != nil {
			s.log.Warn("dashboard counter failed", "counter", name, "error", err)
			return
		}
		*dst = n
	}

	wg.Add(4)
	go count(&st.TotalCases, "total_cases", func() (int, error) {
		return s.store.CountCases(ctx, ownerID)
	})
	go count(&st.UpcomingHearings, "upcoming_hearings", func() (int, error) {
		// Half-open window: a hearing exactly 30 days out is no longer "upcoming".
		return s.store.CountHearingsBetween(ctx, ownerID, now, now.Add(upcomingWindow))
	})
	go count(&st.OverdueTasks, "overdue_tasks", func() (int, error) {
		return s.store.CountOverdueTasks(ctx, ownerID, now)
	})
	go count(&st.ActiveClients, "active_clients", func() (int, error) {
		return s.store.CountClients(ctx, ownerID)
	})
	wg.Wait()

	return st
}

// Activity assembles the merged recent-activity feed: the most recent cases,
// hearings, and documents, mapped to a uniform shape, sorted newest first and
// truncated. A failing sub-fetch contributes an empty list; the others still
// appear. Entries with equal timestamps keep their concatenation order
// (cases, then hearings, then documents).
func (s *Service) Activity(ctx context.Context, ownerID string, limit int) []Activity {
	if ownerID == "" {
		return []Activity{}
	}
	if limit <= 0 || limit > feedLimit {
		limit = feedLimit
	}

	var (
		recentCases []RecentCase
		hearings    []RecentHearing
		documents   []RecentDocument
		wg          sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		v, err := s.store.RecentCases(ctx, ownerID, recentPerSource)
		if err != nil {
			s.log.Warn("activity fetch failed", "source", "cases", "error", err)
			return
		}
		recentCases = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.store.RecentHearings(ctx, ownerID, recentPerSource)
		if err != nil {
			s.log.Warn("activity fetch failed", "source", "hearings", "error", err)
			return
		}
		hearings = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.store.RecentDocuments(ctx, ownerID, recentPerSource)
		if err != nil {
			s.log.Warn("activity fetch failed", "source", "documents", "error", err)
			return
		}
		documents = v
	}()
	wg.Wait()

	feed := make([]Activity, 0, len(recentCases)+len(hearings)+len(documents))

	for _, c := range recentCases {
		feed = append(feed, Activity{
			ID:          "case-" + c.CaseNumber,
			Type:        "case",
			Title:       fmt.Sprintf("New case %s created", c.CaseNumber),
			Description: c.CaseTitle,
			Timestamp:   c.CreatedAt,
			IconColor:   colorCase,
		})
	}
	for _, h := range hearings {
		feed = append(feed, Activity{
			ID:          fmt.Sprintf("hearing-%s-%s", h.CaseID, h.HearingDate.Format(time.RFC3339)),
			Type:        "hearing",
			Title:       fmt.Sprintf("Hearing scheduled for %s", caseLabel(h.CaseNumber)),
			Description: fmt.Sprintf("%s on %s", h.HearingType, h.HearingDate.Format("02/01/2006")),
			Timestamp:   h.HearingDate,
			IconColor:   colorHearing,
		})
	}
	for _, d := range documents {
		feed = append(feed, Activity{
			ID:          "doc-" + d.Filename,
			Type:        "document",
			Title:       "Document uploaded",
			Description: fmt.Sprintf("%s for %s", d.Filename, caseLabel(d.CaseNumber)),
			Timestamp:   d.UploadedAt,
			IconColor:   colorDocument,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})

	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

func caseLabel(caseNumber string) string {
	if caseNumber == "" {
		return "Case"
	}
	return caseNumber
}
