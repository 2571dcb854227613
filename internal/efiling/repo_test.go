package efiling

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestRepoCreateAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRepo(client)
	ctx := context.Background()

	d := &Draft{
		UserID:     "user-1",
		CaseID:     "case-1",
		Court:      "High Court of Delhi",
		FilingType: "Writ Petition",
		Status:     StatusDraft,
		Step:       1,
	}
	require.NoError(t, repo.Create(ctx, d))
	require.NotEmpty(t, d.DraftID)
	assert.False(t, d.CreatedAt.IsZero())

	got, err := repo.Get(ctx, d.DraftID)
	require.NoError(t, err)
	assert.Equal(t, "High Court of Delhi", got.Court)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, StatusDraft, got.Status)
}

func TestRepoGetMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRepo(client)

	_, err := repo.Get(context.Background(), "no-such-draft")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRepoUpdate(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRepo(client)
	ctx := context.Background()

	d := &Draft{UserID: "user-1", Court: "District Court", Status: StatusDraft, Step: 1}
	require.NoError(t, repo.Create(ctx, d))

	d.Step = 3
	d.Plaintiff = "State"
	require.NoError(t, repo.Update(ctx, d))

	got, err := repo.Get(ctx, d.DraftID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Step)
	assert.Equal(t, "State", got.Plaintiff)
}

func TestRepoListByUser(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRepo(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &Draft{UserID: "user-1", Court: "High Court", Status: StatusDraft}))
	}
	require.NoError(t, repo.Create(ctx, &Draft{UserID: "user-2", Court: "High Court", Status: StatusDraft}))

	drafts, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, drafts, 3)
	for _, d := range drafts {
		assert.Equal(t, "user-1", d.UserID)
	}
}

func TestRepoListDropsExpiredDrafts(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRepo(client)
	ctx := context.Background()

	d := &Draft{UserID: "user-1", Court: "High Court", Status: StatusDraft}
	require.NoError(t, repo.Create(ctx, d))

	// Push past the draft TTL; the set key outlives the expired member.
	mr.FastForward(draftTTL + time.Minute)
	mr.SAdd(userDraftSetPrefix+"user-1", d.DraftID)

	drafts, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestRepoDelete(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRepo(client)
	ctx := context.Background()

	d := &Draft{UserID: "user-1", Court: "High Court", Status: StatusDraft}
	require.NoError(t, repo.Create(ctx, d))

	require.NoError(t, repo.Delete(ctx, d.DraftID))

	_, err := repo.Get(ctx, d.DraftID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	drafts, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, drafts)
}
