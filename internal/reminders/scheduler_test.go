package reminders

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocate-diary/advocate-backend/internal/hearings"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestDedupeKeyIncludesHearingDate(t *testing.T) {
	h := hearings.Hearing{
		ID:          "abc-123",
		HearingDate: time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "reminder:hearing:abc-123:2026-09-15", dedupeKey(h))
}

func TestDedupeKeySetOnlyOnce(t *testing.T) {
	client := testRedis(t)
	ctx := context.Background()

	h := hearings.Hearing{ID: "h-1", HearingDate: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)}

	first, err := client.SetNX(ctx, dedupeKey(h), 1, dedupeTTL).Result()
	require.NoError(t, err)
	assert.True(t, first)

	second, err := client.SetNX(ctx, dedupeKey(h), 1, dedupeTTL).Result()
	require.NoError(t, err)
	assert.False(t, second)
}

func TestReminderMessage(t *testing.T) {
	h := hearings.Hearing{
		HearingType: "Final Argument",
		CaseNumber:  "WP/123/2026",
		HearingDate: time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "Final Argument hearing for WP/123/2026 at 10:30 on 15/09/2026", reminderMessage(h))
}

func TestReminderMessageWithoutCaseNumber(t *testing.T) {
	h := hearings.Hearing{
		HearingType: "Regular",
		HearingDate: time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "Regular hearing for your case at 10:30 on 15/09/2026", reminderMessage(h))
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler(nil, nil, testRedis(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Stop() // must not panic
}
