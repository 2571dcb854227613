package hearings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/advocate-diary/advocate-backend/internal/db"
)

var ErrNotFound = errors.New("hearing not found")

type Hearing struct {
	ID          string    `json:"id"`
	CaseID      string    `json:"case_id"`
	HearingDate time.Time `json:"hearing_date"`
	HearingType string    `json:"hearing_type"`
	Court       string    `json:"court"`
	Notes       string    `json:"notes"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined from the parent case.
	CaseNumber string `json:"case_number,omitempty"`
	CaseTitle  string `json:"case_title,omitempty"`
}

type Fields struct {
	CaseID      *string `json:"case_id"`
	HearingDate *string `json:"hearing_date"`
	HearingType *string `json:"hearing_type"`
	Court       *string `json:"court"`
	Notes       *string `json:"notes"`
}

type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

const hearingColumns = `
h.id::text, h.case_id::text, h.hearing_date, h.hearing_type,
coalesce(h.court,''), coalesce(h.notes,''), h.created_by::text, h.created_at, h.updated_at,
coalesce(c.case_number,''), coalesce(c.case_title,'')`

func scanHearing(row pgx.Row, h *Hearing) error {
	return row.Scan(&h.ID, &h.CaseID, &h.HearingDate, &h.HearingType,
		&h.Court, &h.Notes, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt,
		&h.CaseNumber, &h.CaseTitle)
}

func (r *Repo) collect(ctx context.Context, q string, args ...any) ([]Hearing, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Hearing, 0, 16)
	for rows.Next() {
		var h Hearing
		if err := scanHearing(rows, &h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) List(ctx context.Context, ownerID string) ([]Hearing, error) {
	const q = `
select ` + hearingColumns + `
from hearings h
left join cases c on c.id = h.case_id
where h.created_by = $1::uuid
order by h.hearing_date asc;
`
	return r.collect(ctx, q, ownerID)
}

// Today returns the owner's hearings falling within the local calendar day.
func (r *Repo) Today(ctx context.Context, ownerID string, now time.Time) ([]Hearing, error) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	const q = `
select ` + hearingColumns + `
from hearings h
left join cases c on c.id = h.case_id
where h.created_by = $1::uuid and h.hearing_date >= $2 and h.hearing_date < $3
order by h.hearing_date asc;
`
	return r.collect(ctx, q, ownerID, start, end)
}

// StartingBetween returns hearings of every user whose date falls in
// [from, to). Used by the reminder job.
func (r *Repo) StartingBetween(ctx context.Context, from, to time.Time) ([]Hearing, error) {
	const q = `
select ` + hearingColumns + `
from hearings h
left join cases c on c.id = h.case_id
where h.hearing_date >= $1 and h.hearing_date < $2
order by h.hearing_date asc;
`
	return r.collect(ctx, q, from, to)
}

func (r *Repo) Create(ctx context.Context, ownerID string, f Fields) (*Hearing, error) {
	const q = `
with ins as (
  insert into hearings (case_id, hearing_date, hearing_type, court, notes, created_by)
  values ($2::uuid, $3::timestamptz, coalesce($4, 'Regular'), $5, $6, $1::uuid)
  returning *
)
select ` + hearingColumns + `
from ins h
left join cases c on c.id = h.case_id;
`
	var h Hearing
	err := scanHearing(r.db.QueryRow(ctx, q, ownerID, f.CaseID, f.HearingDate, f.HearingType, f.Court, f.Notes), &h)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *Repo) Update(ctx context.Context, ownerID, id string, f Fields) (*Hearing, error) {
	const q = `
with upd as (
  update hearings set
    case_id      = coalesce($3::uuid, case_id),
    hearing_date = coalesce($4::timestamptz, hearing_date),
    hearing_type = coalesce($5, hearing_type),
    court        = coalesce($6, court),
    notes        = coalesce($7, notes),
    updated_at   = now()
  where id = $2::uuid and created_by = $1::uuid
  returning *
)
select ` + hearingColumns + `
from upd h
left join cases c on c.id = h.case_id;
`
	var h Hearing
	err := scanHearing(r.db.QueryRow(ctx, q, ownerID, id, f.CaseID, f.HearingDate, f.HearingType, f.Court, f.Notes), &h)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `delete from hearings where id = $2::uuid and created_by = $1::uuid;`

	ct, err := r.db.Exec(ctx, q, ownerID, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
