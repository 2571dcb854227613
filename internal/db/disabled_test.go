package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledQuery(t *testing.T) {
	var q Querier = Disabled{}

	rows, err := q.Query(context.Background(), "select 1")
	assert.Nil(t, rows)
	require.ErrorIs(t, err, ErrUnconfigured)
}

func TestDisabledQueryRowScan(t *testing.T) {
	var q Querier = Disabled{}

	var n int
	err := q.QueryRow(context.Background(), "select count(*) from cases").Scan(&n)
	require.ErrorIs(t, err, ErrUnconfigured)
	assert.Zero(t, n)
}

func TestDisabledExec(t *testing.T) {
	var q Querier = Disabled{}

	tag, err := q.Exec(context.Background(), "delete from cases where id = $1", "x")
	require.ErrorIs(t, err, ErrUnconfigured)
	assert.Zero(t, tag.RowsAffected())
}
