package cases

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestPool connects to the database named by TEST_DB_DSN, skipping the
// test when it is not set. The schema from migrations/0001_init.sql must be
// applied beforehand.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(context.Background()))
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool, firebaseUID string) string {
	t.Helper()

	var id string
	err := pool.QueryRow(context.Background(), `
		insert into users (firebase_uid, email, full_name)
		values ($1, $1 || '@example.com', 'Test Counsel')
		on conflict (firebase_uid) do update set updated_at = now()
		returning id::text;
	`, firebaseUID).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Exec(context.Background(), `delete from users where id = $1::uuid;`, id)
	})
	return id
}

func TestCaseRoundTripReturnsClientName(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	ownerID := createTestUser(t, pool, "it-case-roundtrip")

	var clientID string
	err := pool.QueryRow(ctx, `
		insert into clients (name, created_by) values ('Ramesh Traders', $1::uuid)
		returning id::text;
	`, ownerID).Scan(&clientID)
	require.NoError(t, err)

	repo := NewRepo(pool)

	number := "OS/42/2026"
	title := "Ramesh Traders v. State"
	created, err := repo.Create(ctx, ownerID, Fields{
		CaseNumber: &number,
		CaseTitle:  &title,
		ClientID:   &clientID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.ClientName)
	assert.Equal(t, "Ramesh Traders", *created.ClientName)

	got, err := repo.Get(ctx, ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "OS/42/2026", got.CaseNumber)
	require.NotNil(t, got.ClientName)
	assert.Equal(t, "Ramesh Traders", *got.ClientName)
	require.Len(t, got.Timeline, 1)
	assert.Equal(t, "Case filed", got.Timeline[0].Description)
}

func TestCaseOwnershipHidesForeignRows(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	ownerID := createTestUser(t, pool, "it-case-owner-a")
	otherID := createTestUser(t, pool, "it-case-owner-b")

	repo := NewRepo(pool)

	number := "CRL/7/2026"
	title := "State v. Unknown"
	created, err := repo.Create(ctx, ownerID, Fields{CaseNumber: &number, CaseTitle: &title})
	require.NoError(t, err)

	_, err = repo.Get(ctx, otherID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := repo.Delete(ctx, otherID, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, ownerID, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
