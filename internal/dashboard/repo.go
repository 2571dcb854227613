package dashboard

import (
	"context"
	"time"

	"github.com/advocate-diary/advocate-backend/internal/db"
)

// Repo implements Store over Postgres.
type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

func (r *Repo) count(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) CountCases(ctx context.Context, ownerID string) (int, error) {
	const q = `select count(*) from cases where created_by = $1::uuid;`
	return r.count(ctx, q, ownerID)
}

func (r *Repo) CountHearingsBetween(ctx context.Context, ownerID string, from, to time.Time) (int, error) {
	const q = `
select count(*)
from hearings
where created_by = $1::uuid and hearing_date >= $2 and hearing_date < $3;
`
	return r.count(ctx, q, ownerID, from, to)
}

func (r *Repo) CountOverdueTasks(ctx context.Context, ownerID string, now time.Time) (int, error) {
	const q = `
select count(*)
from tasks
where created_by = $1::uuid and status = 'Pending' and due_date < $2;
`
	return r.count(ctx, q, ownerID, now)
}

func (r *Repo) CountClients(ctx context.Context, ownerID string) (int, error) {
	const q = `select count(*) from clients where created_by = $1::uuid;`
	return r.count(ctx, q, ownerID)
}

func (r *Repo) RecentCases(ctx context.Context, ownerID string, limit int) ([]RecentCase, error) {
	const q = `
select case_number, case_title, created_at
from cases
where created_by = $1::uuid
order by created_at desc
limit $2;
`
	rows, err := r.db.Query(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecentCase, 0, limit)
	for rows.Next() {
		var c RecentCase
		if err := rows.Scan(&c.CaseNumber, &c.CaseTitle, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) RecentHearings(ctx context.Context, ownerID string, limit int) ([]RecentHearing, error) {
	const q = `
select h.case_id::text, h.hearing_date, h.hearing_type, coalesce(c.case_number,'')
from hearings h
left join cases c on c.id = h.case_id
where h.created_by = $1::uuid
order by h.created_at desc
limit $2;
`
	rows, err := r.db.Query(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecentHearing, 0, limit)
	for rows.Next() {
		var h RecentHearing
		if err := rows.Scan(&h.CaseID, &h.HearingDate, &h.HearingType, &h.CaseNumber); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) RecentDocuments(ctx context.Context, ownerID string, limit int) ([]RecentDocument, error) {
	const q = `
select d.filename, d.uploaded_at, coalesce(c.case_number,'')
from documents d
left join cases c on c.id = d.case_id
where d.uploaded_by = $1::uuid
order by d.uploaded_at desc
limit $2;
`
	rows, err := r.db.Query(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecentDocument, 0, limit)
	for rows.Next() {
		var d RecentDocument
		if err := rows.Scan(&d.Filename, &d.UploadedAt, &d.CaseNumber); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
