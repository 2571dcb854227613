package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/advocate-diary/advocate-backend/internal/auth"
	"github.com/advocate-diary/advocate-backend/internal/db"
)

type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

type Profile struct {
	ID               string    `json:"id"`
	FirebaseUID      string    `json:"firebase_uid"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	BarCouncilNumber string    `json:"bar_council_number"`
	PhotoURL         *string   `json:"photo_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpsertProfile struct {
	FirebaseUID      string
	Email            string
	FullName         string
	BarCouncilNumber string
	PhotoURL         string
}

// Upsert creates the profile row on first sync and refreshes it afterwards,
// keyed on the external subject uid.
func (r *Repo) Upsert(ctx context.Context, u UpsertProfile) (*Profile, error) {
	if u.FirebaseUID == "" {
		return nil, fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, full_name, bar_council_number, photo_url, updated_at)
values ($1, coalesce(nullif($2,''), ''), coalesce(nullif($3,''), 'Counsel'), coalesce(nullif($4,''), ''), nullif($5,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(nullif(excluded.email,''), users.email),
  full_name = coalesce(nullif(excluded.full_name,''), users.full_name),
  bar_council_number = coalesce(nullif(excluded.bar_council_number,''), users.bar_council_number),
  photo_url = coalesce(excluded.photo_url, users.photo_url),
  updated_at = now()
returning id::text, firebase_uid, email, full_name, bar_council_number, photo_url, created_at, updated_at;
`
	var p Profile
	err := r.db.QueryRow(ctx, q, u.FirebaseUID, u.Email, u.FullName, u.BarCouncilNumber, u.PhotoURL).
		Scan(&p.ID, &p.FirebaseUID, &p.Email, &p.FullName, &p.BarCouncilNumber, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// BySubject fetches the full profile row for a subject uid.
func (r *Repo) BySubject(ctx context.Context, firebaseUID string) (*Profile, error) {
	const q = `
select id::text, firebase_uid, email, full_name, bar_council_number, photo_url, created_at, updated_at
from users
where firebase_uid = $1;
`
	var p Profile
	err := r.db.QueryRow(ctx, q, firebaseUID).
		Scan(&p.ID, &p.FirebaseUID, &p.Email, &p.FullName, &p.BarCouncilNumber, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.ErrNoProfile
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IDBySubject resolves the internal user id for a subject uid. Satisfies
// auth.SubjectResolver.
func (r *Repo) IDBySubject(ctx context.Context, subjectUID string) (string, error) {
	const q = `select id::text from users where firebase_uid = $1;`

	var id string
	err := r.db.QueryRow(ctx, q, subjectUID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", auth.ErrNoProfile
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
