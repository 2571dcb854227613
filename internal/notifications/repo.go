package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/advocate-diary/advocate-backend/internal/db"
)

var ErrNotFound = errors.New("notification not found")

const (
	TypeHearing  = "hearing"
	TypeCase     = "case"
	TypeDocument = "document"
	TypeOther    = "other"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	LinkURL   string    `json:"link_url"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

const notificationColumns = `
id::text, user_id::text, type, title, coalesce(message,''), coalesce(link_url,''), is_read, created_at`

func scanNotification(row pgx.Row, n *Notification) error {
	return row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.LinkURL, &n.IsRead, &n.CreatedAt)
}

func (r *Repo) collect(ctx context.Context, q string, args ...any) ([]Notification, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Notification, 0, 16)
	for rows.Next() {
		var n Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	const q = `
select ` + notificationColumns + `
from notifications
where user_id = $1::uuid
order by created_at desc;
`
	return r.collect(ctx, q, userID)
}

func (r *Repo) UnreadByUser(ctx context.Context, userID string) ([]Notification, error) {
	const q = `
select ` + notificationColumns + `
from notifications
where user_id = $1::uuid and is_read = false
order by created_at desc;
`
	return r.collect(ctx, q, userID)
}

func (r *Repo) MarkRead(ctx context.Context, userID, id string) (*Notification, error) {
	const q = `
update notifications
set is_read = true
where id = $2::uuid and user_id = $1::uuid
returning ` + notificationColumns + `;
`
	var n Notification
	err := scanNotification(r.db.QueryRow(ctx, q, userID, id), &n)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllRead flips every unread notification and reports how many changed.
func (r *Repo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	const q = `
update notifications
set is_read = true
where user_id = $1::uuid and is_read = false;
`
	ct, err := r.db.Exec(ctx, q, userID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

type NewNotification struct {
	UserID  string
	Type    string
	Title   string
	Message string
	LinkURL string
}

// Create inserts a notification. Used by the reminder job and the e-filing
// submission flow, not exposed over HTTP.
func (r *Repo) Create(ctx context.Context, n NewNotification) (*Notification, error) {
	const q = `
insert into notifications (user_id, type, title, message, link_url)
values ($1::uuid, $2, $3, $4, nullif($5,''))
returning ` + notificationColumns + `;
`
	var out Notification
	err := scanNotification(r.db.QueryRow(ctx, q, n.UserID, n.Type, n.Title, n.Message, n.LinkURL), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
