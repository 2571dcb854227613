package cases

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/advocate-diary/advocate-backend/internal/db"
)

// ErrNotFound covers both a missing row and a row owned by someone else.
var ErrNotFound = errors.New("case not found")

// Case statuses as used by the practice workflow.
var validStatuses = map[string]struct{}{
	"Pending":  {},
	"Active":   {},
	"Urgent":   {},
	"Closed":   {},
	"Disposed": {},
	"Stayed":   {},
}

func ValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}

type Case struct {
	ID          string     `json:"id"`
	CaseNumber  string     `json:"case_number"`
	CaseTitle   string     `json:"case_title"`
	ClientID    *string    `json:"client_id"`
	ClientName  *string    `json:"client_name"`
	Court       string     `json:"court"`
	Judge       string     `json:"judge"`
	CaseType    string     `json:"case_type"`
	Status      string     `json:"status"`
	FilingDate  *time.Time `json:"filing_date"`
	Description string     `json:"description"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Hearing struct {
	ID          string    `json:"id"`
	HearingDate time.Time `json:"hearing_date"`
	HearingType string    `json:"hearing_type"`
	Court       string    `json:"court"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type TimelineEntry struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	User        string    `json:"user"`
}

// Detail is a case joined with its nested collections.
type Detail struct {
	Case
	Hearings  []Hearing       `json:"hearings"`
	Documents []Document      `json:"documents"`
	Timeline  []TimelineEntry `json:"timeline"`
}

type Fields struct {
	CaseNumber  *string `json:"case_number"`
	CaseTitle   *string `json:"case_title"`
	ClientID    *string `json:"client_id"`
	Court       *string `json:"court"`
	Judge       *string `json:"judge"`
	CaseType    *string `json:"case_type"`
	Status      *string `json:"status"`
	FilingDate  *string `json:"filing_date"`
	Description *string `json:"description"`
}

type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

const caseColumns = `
c.id::text, c.case_number, c.case_title, c.client_id::text, cl.name,
coalesce(c.court,''), coalesce(c.judge,''), coalesce(c.case_type,''), c.status,
c.filing_date, coalesce(c.description,''), c.created_by::text, c.created_at, c.updated_at`

func scanCase(row pgx.Row, cs *Case) error {
	return row.Scan(
		&cs.ID, &cs.CaseNumber, &cs.CaseTitle, &cs.ClientID, &cs.ClientName,
		&cs.Court, &cs.Judge, &cs.CaseType, &cs.Status,
		&cs.FilingDate, &cs.Description, &cs.CreatedBy, &cs.CreatedAt, &cs.UpdatedAt,
	)
}

func (r *Repo) List(ctx context.Context, ownerID string) ([]Case, error) {
	const q = `
select ` + caseColumns + `
from cases c
left join clients cl on cl.id = c.client_id
where c.created_by = $1::uuid
order by c.created_at desc;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Case, 0, 16)
	for rows.Next() {
		var cs Case
		if err := scanCase(rows, &cs); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, ownerID, id string) (*Detail, error) {
	const q = `
select ` + caseColumns + `
from cases c
left join clients cl on cl.id = c.client_id
where c.id = $2::uuid and c.created_by = $1::uuid;
`
	var d Detail
	err := scanCase(r.db.QueryRow(ctx, q, ownerID, id), &d.Case)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if d.Hearings, err = r.caseHearings(ctx, id); err != nil {
		return nil, err
	}
	if d.Documents, err = r.caseDocuments(ctx, id); err != nil {
		return nil, err
	}

	d.Timeline = []TimelineEntry{
		{Date: d.CreatedAt, Type: "Filing", Description: "Case filed", User: "System"},
	}
	return &d, nil
}

func (r *Repo) caseHearings(ctx context.Context, caseID string) ([]Hearing, error) {
	const q = `
select id::text, hearing_date, hearing_type, coalesce(court,''), coalesce(notes,''), created_at
from hearings
where case_id = $1::uuid
order by hearing_date asc;
`
	rows, err := r.db.Query(ctx, q, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Hearing, 0, 8)
	for rows.Next() {
		var h Hearing
		if err := rows.Scan(&h.ID, &h.HearingDate, &h.HearingType, &h.Court, &h.Notes, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) caseDocuments(ctx context.Context, caseID string) ([]Document, error) {
	const q = `
select id::text, filename, coalesce(file_type,''), coalesce(file_url,''), uploaded_at
from documents
where case_id = $1::uuid
order by uploaded_at desc;
`
	rows, err := r.db.Query(ctx, q, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0, 8)
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.FileType, &d.FileURL, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, ownerID string, f Fields) (*Case, error) {
	const q = `
with ins as (
  insert into cases (case_number, case_title, client_id, court, judge, case_type, status, filing_date, description, created_by)
  values ($2, $3, $4::uuid, $5, $6, $7, coalesce($8, 'Pending'), $9::date, $10, $1::uuid)
  returning *
)
select ` + caseColumns + `
from ins c
left join clients cl on cl.id = c.client_id;
`
	var cs Case
	err := scanCase(r.db.QueryRow(ctx, q,
		ownerID, f.CaseNumber, f.CaseTitle, f.ClientID, f.Court, f.Judge,
		f.CaseType, f.Status, f.FilingDate, f.Description,
	), &cs)
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

// Update merges the provided fields into the row; nil fields keep their
// current value. The owner predicate makes cross-user ids look like 404s.
func (r *Repo) Update(ctx context.Context, ownerID, id string, f Fields) (*Case, error) {
	const q = `
with upd as (
  update cases set
    case_number = coalesce($3, case_number),
    case_title  = coalesce($4, case_title),
    client_id   = coalesce($5::uuid, client_id),
    court       = coalesce($6, court),
    judge       = coalesce($7, judge),
    case_type   = coalesce($8, case_type),
    status      = coalesce($9, status),
    filing_date = coalesce($10::date, filing_date),
    description = coalesce($11, description),
    updated_at  = now()
  where id = $2::uuid and created_by = $1::uuid
  returning *
)
select ` + caseColumns + `
from upd c
left join clients cl on cl.id = c.client_id;
`
	var cs Case
	err := scanCase(r.db.QueryRow(ctx, q,
		ownerID, id, f.CaseNumber, f.CaseTitle, f.ClientID, f.Court, f.Judge,
		f.CaseType, f.Status, f.FilingDate, f.Description,
	), &cs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `delete from cases where id = $2::uuid and created_by = $1::uuid;`

	ct, err := r.db.Exec(ctx, q, ownerID, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
