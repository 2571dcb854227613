package efiling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix     = "efiling:draft:" // Draft data: efiling:draft:{draft_id}
	userDraftSetPrefix = "efiling:user:"  // Set of draft IDs per user: efiling:user:{user_id}
	draftTTL           = 7 * 24 * time.Hour
)

// Repo stores wizard drafts in Redis with a TTL.
type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Create(ctx context.Context, d *Draft) error {
	if d.DraftID == "" {
		d.DraftID = uuid.New().String()
	}
	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.draftKey(d.DraftID), data, draftTTL)
	pipe.SAdd(ctx, r.userDraftSetKey(d.UserID), d.DraftID)
	pipe.Expire(ctx, r.userDraftSetKey(d.UserID), draftTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, draftID string) (*Draft, error) {
	data, err := r.client.Get(ctx, r.draftKey(draftID)).Result()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &d, nil
}

func (r *Repo) Update(ctx context.Context, d *Draft) error {
	d.UpdatedAt = time.Now()

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := r.client.Set(ctx, r.draftKey(d.DraftID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	return nil
}

// ListByUser returns the user's live drafts. Expired draft ids still present
// in the set are dropped silently.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Draft, error) {
	ids, err := r.client.SMembers(ctx, r.userDraftSetKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	out := make([]Draft, 0, len(ids))
	for _, id := range ids {
		d, err := r.Get(ctx, id)
		if err == ErrDraftNotFound {
			r.client.SRem(ctx, r.userDraftSetKey(userID), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, draftID string) error {
	d, err := r.Get(ctx, draftID)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.draftKey(draftID))
	pipe.SRem(ctx, r.userDraftSetKey(d.UserID), draftID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

func (r *Repo) draftKey(draftID string) string {
	return draftKeyPrefix + draftID
}

func (r *Repo) userDraftSetKey(userID string) string {
	return userDraftSetPrefix + userID
}
