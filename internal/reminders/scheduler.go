package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/advocate-diary/advocate-backend/internal/hearings"
	"github.com/advocate-diary/advocate-backend/internal/notifications"
)

const (
	lookahead      = 24 * time.Hour
	dedupeTTL      = 48 * time.Hour
	dedupePrefix   = "reminder:hearing:"
	reminderSpec   = "0 0 * * * *" // top of every hour
	runTimeout     = 30 * time.Second
	reminderLink   = "/hearings"
	dateOnlyLayout = "2006-01-02"
)

// Scheduler sends hearing reminders on an hourly cron. Each hearing within
// the lookahead window produces at most one notification; a Redis SETNX key
// marks hearings already reminded so restarts and overlapping windows do not
// duplicate.
type Scheduler struct {
	hearings *hearings.Repo
	notes    *notifications.Repo
	redis    *redis.Client
	log      *slog.Logger
	now      func() time.Time

	cron *cron.Cron
}

func NewScheduler(h *hearings.Repo, n *notifications.Repo, rdb *redis.Client, log *slog.Logger) *Scheduler {
	return &Scheduler{hearings: h, notes: n, redis: rdb, log: log, now: time.Now}
}

func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(reminderSpec, s.runOnce); err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	c.Start()
	s.cron = c
	s.log.Info("hearing reminder scheduler started", "spec", reminderSpec)
	return nil
}

// Stop halts the cron and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	now := s.now()
	sent, err := s.Remind(ctx, now)
	if err != nil {
		s.log.Error("reminder run failed", "error", err)
		return
	}
	if sent > 0 {
		s.log.Info("hearing reminders sent", "count", sent)
	}
}

// Remind notifies owners of hearings starting within the lookahead window
// and reports how many notifications were created.
func (s *Scheduler) Remind(ctx context.Context, now time.Time) (int, error) {
	upcoming, err := s.hearings.StartingBetween(ctx, now, now.Add(lookahead))
	if err != nil {
		return 0, fmt.Errorf("failed to load upcoming hearings: %w", err)
	}

	sent := 0
	for _, h := range upcoming {
		fresh, err := s.redis.SetNX(ctx, dedupeKey(h), 1, dedupeTTL).Result()
		if err != nil {
			s.log.Warn("reminder dedupe check failed", "hearing_id", h.ID, "error", err)
			continue
		}
		if !fresh {
			continue
		}

		if _, err := s.notes.Create(ctx, notifications.NewNotification{
			UserID:  h.CreatedBy,
			Type:    notifications.TypeHearing,
			Title:   "Upcoming hearing",
			Message: reminderMessage(h),
			LinkURL: reminderLink,
		}); err != nil {
			// Release the dedupe key so the next run retries this hearing.
			s.redis.Del(ctx, dedupeKey(h))
			s.log.Warn("reminder notification failed", "hearing_id", h.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func dedupeKey(h hearings.Hearing) string {
	return dedupePrefix + h.ID + ":" + h.HearingDate.UTC().Format(dateOnlyLayout)
}

func reminderMessage(h hearings.Hearing) string {
	label := h.CaseNumber
	if label == "" {
		label = "your case"
	}
	return fmt.Sprintf("%s hearing for %s at %s", h.HearingType, label, h.HearingDate.Format("15:04 on 02/01/2006"))
}
