package clients

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/advocate-diary/advocate-backend/internal/db"
)

var ErrNotFound = errors.New("client not found")

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Derived, not stored.
	CasesCount      int     `json:"cases_count"`
	OutstandingFees float64 `json:"outstanding_fees"`
}

type CaseRef struct {
	ID         string `json:"id"`
	CaseNumber string `json:"case_number"`
	Status     string `json:"status"`
}

type Invoice struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"due_date"`
	PaidDate  *time.Time `json:"paid_date"`
	CreatedAt time.Time  `json:"created_at"`
}

// Detail is a client joined with its cases and invoices.
type Detail struct {
	Client
	Cases    []CaseRef `json:"cases"`
	Invoices []Invoice `json:"invoices"`
}

type Fields struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

const clientColumns = `
id::text, name, coalesce(email,''), coalesce(phone,''), coalesce(address,''),
created_by::text, created_at, updated_at`

func scanClient(row pgx.Row, cl *Client) error {
	return row.Scan(&cl.ID, &cl.Name, &cl.Email, &cl.Phone, &cl.Address,
		&cl.CreatedBy, &cl.CreatedAt, &cl.UpdatedAt)
}

func (r *Repo) List(ctx context.Context, ownerID string) ([]Client, error) {
	const q = `
select ` + clientColumns + `
from clients
where created_by = $1::uuid
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Client, 0, 16)
	for rows.Next() {
		var cl Client
		if err := scanClient(rows, &cl); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts, err := r.caseCounts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	invoices, err := r.invoicesByClient(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for i := range out {
		out[i].CasesCount = counts[out[i].ID]
		out[i].OutstandingFees = OutstandingFees(invoices[out[i].ID])
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, ownerID, id string) (*Detail, error) {
	const q = `
select ` + clientColumns + `
from clients
where id = $2::uuid and created_by = $1::uuid;
`
	var d Detail
	err := scanClient(r.db.QueryRow(ctx, q, ownerID, id), &d.Client)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if d.Cases, err = r.clientCases(ctx, id); err != nil {
		return nil, err
	}
	if d.Invoices, err = r.clientInvoices(ctx, id); err != nil {
		return nil, err
	}

	d.CasesCount = len(d.Cases)
	d.OutstandingFees = OutstandingFees(d.Invoices)
	return &d, nil
}

func (r *Repo) Create(ctx context.Context, ownerID string, f Fields) (*Client, error) {
	const q = `
insert into clients (name, email, phone, address, created_by)
values ($2, $3, $4, $5, $1::uuid)
returning ` + clientColumns + `;
`
	var cl Client
	if err := scanClient(r.db.QueryRow(ctx, q, ownerID, f.Name, f.Email, f.Phone, f.Address), &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *Repo) Update(ctx context.Context, ownerID, id string, f Fields) (*Client, error) {
	const q = `
update clients set
  name    = coalesce($3, name),
  email   = coalesce($4, email),
  phone   = coalesce($5, phone),
  address = coalesce($6, address),
  updated_at = now()
where id = $2::uuid and created_by = $1::uuid
returning ` + clientColumns + `;
`
	var cl Client
	err := scanClient(r.db.QueryRow(ctx, q, ownerID, id, f.Name, f.Email, f.Phone, f.Address), &cl)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *Repo) caseCounts(ctx context.Context, ownerID string) (map[string]int, error) {
	const q = `
select client_id::text, count(*)
from cases
where created_by = $1::uuid and client_id is not null
group by client_id;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *Repo) invoicesByClient(ctx context.Context, ownerID string) (map[string][]Invoice, error) {
	const q = `
select i.id::text, i.client_id::text, i.amount::float8, i.status, i.due_date, i.paid_date, i.created_at
from invoices i
join clients c on c.id = i.client_id
where c.created_by = $1::uuid;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byClient := make(map[string][]Invoice)
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.Amount, &inv.Status, &inv.DueDate, &inv.PaidDate, &inv.CreatedAt); err != nil {
			return nil, err
		}
		byClient[inv.ClientID] = append(byClient[inv.ClientID], inv)
	}
	return byClient, rows.Err()
}

func (r *Repo) clientCases(ctx context.Context, clientID string) ([]CaseRef, error) {
	const q = `
select id::text, case_number, status
from cases
where client_id = $1::uuid
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CaseRef, 0, 8)
	for rows.Next() {
		var cr CaseRef
		if err := rows.Scan(&cr.ID, &cr.CaseNumber, &cr.Status); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *Repo) clientInvoices(ctx context.Context, clientID string) ([]Invoice, error) {
	const q = `
select id::text, client_id::text, amount::float8, status, due_date, paid_date, created_at
from invoices
where client_id = $1::uuid
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Invoice, 0, 8)
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.Amount, &inv.Status, &inv.DueDate, &inv.PaidDate, &inv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
