package dbx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS photos (id INTEGER PRIMARY KEY, filename TEXT);`)
	require.NoError(t, err)
	return db
}

func TestDBTX_SatisfiedByDBAndTx(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	var h DBTX = db
	_, err := h.ExecContext(ctx, `INSERT INTO photos(filename) VALUES ('cat.jpg')`)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	h = tx

	var n int
	require.NoError(t, h.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&n))
	require.Equal(t, 1, n)
	require.NoError(t, tx.Rollback())
}
