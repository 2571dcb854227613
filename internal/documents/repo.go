package documents

import (
	"context"
	"time"

	"github.com/advocate-diary/advocate-backend/internal/db"
)

type Document struct {
	ID         string    `json:"id"`
	CaseID     string    `json:"case_id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileURL    string    `json:"file_url"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Fields struct {
	CaseID   *string `json:"case_id"`
	Filename *string `json:"filename"`
	FileType *string `json:"file_type"`
	FileURL  *string `json:"file_url"`
}

type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

// List returns the owner's documents, newest upload first, optionally
// filtered to one case.
func (r *Repo) List(ctx context.Context, ownerID string, caseID *string) ([]Document, error) {
	const q = `
select id::text, case_id::text, filename, coalesce(file_type,''), coalesce(file_url,''), uploaded_by::text, uploaded_at
from documents
where uploaded_by = $1::uuid and ($2::uuid is null or case_id = $2::uuid)
order by uploaded_at desc;
`
	rows, err := r.db.Query(ctx, q, ownerID, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0, 16)
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.CaseID, &d.Filename, &d.FileType, &d.FileURL, &d.UploadedBy, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, ownerID string, f Fields) (*Document, error) {
	const q = `
insert into documents (case_id, filename, file_type, file_url, uploaded_by)
values ($2::uuid, $3, $4, $5, $1::uuid)
returning id::text, case_id::text, filename, coalesce(file_type,''), coalesce(file_url,''), uploaded_by::text, uploaded_at;
`
	var d Document
	err := r.db.QueryRow(ctx, q, ownerID, f.CaseID, f.Filename, f.FileType, f.FileURL).
		Scan(&d.ID, &d.CaseID, &d.Filename, &d.FileType, &d.FileURL, &d.UploadedBy, &d.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `delete from documents where id = $2::uuid and uploaded_by = $1::uuid;`

	ct, err := r.db.Exec(ctx, q, ownerID, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
