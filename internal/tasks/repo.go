package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/advocate-diary/advocate-backend/internal/db"
)

var ErrNotFound = errors.New("task not found")

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CaseID      *string    `json:"case_id"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Fields struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CaseID      *string `json:"case_id"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

const taskColumns = `
id::text, title, coalesce(description,''), case_id::text, due_date, status,
coalesce(priority,''), created_by::text, created_at, updated_at`

func scanTask(row pgx.Row, t *Task) error {
	return row.Scan(&t.ID, &t.Title, &t.Description, &t.CaseID, &t.DueDate,
		&t.Status, &t.Priority, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
}

func (r *Repo) List(ctx context.Context, ownerID string) ([]Task, error) {
	const q = `
select ` + taskColumns + `
from tasks
where created_by = $1::uuid
order by due_date asc nulls last, created_at desc;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0, 16)
	for rows.Next() {
		var t Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, ownerID string, f Fields) (*Task, error) {
	const q = `
insert into tasks (title, description, case_id, due_date, status, priority, created_by)
values ($2, $3, $4::uuid, $5::timestamptz, coalesce($6, 'Pending'), $7, $1::uuid)
returning ` + taskColumns + `;
`
	var t Task
	err := scanTask(r.db.QueryRow(ctx, q, ownerID, f.Title, f.Description, f.CaseID, f.DueDate, f.Status, f.Priority), &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) Update(ctx context.Context, ownerID, id string, f Fields) (*Task, error) {
	const q = `
update tasks set
  title       = coalesce($3, title),
  description = coalesce($4, description),
  case_id     = coalesce($5::uuid, case_id),
  due_date    = coalesce($6::timestamptz, due_date),
  status      = coalesce($7, status),
  priority    = coalesce($8, priority),
  updated_at  = now()
where id = $2::uuid and created_by = $1::uuid
returning ` + taskColumns + `;
`
	var t Task
	err := scanTask(r.db.QueryRow(ctx, q, ownerID, id, f.Title, f.Description, f.CaseID, f.DueDate, f.Status, f.Priority), &t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `delete from tasks where id = $2::uuid and created_by = $1::uuid;`

	ct, err := r.db.Exec(ctx, q, ownerID, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
