package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/jazzgraph/db"
	"github.com/teranos/jazzgraph/errors"
)

func TestSQLiteSnapshotRoundTrip(t *testing.T) {
	conn, err := db.OpenWithMigrations(":memory:", nil)
	require.NoError(t, err)
	defer conn.Close()

	orig, err := Default()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, SaveSQLite(ctx, conn, orig))

	back, err := LoadSQLite(ctx, conn)
	require.NoError(t, err)

	require.Len(t, back.Artists, len(orig.Artists))
	require.Len(t, back.Albums, len(orig.Albums))
	require.Len(t, back.Eras, len(orig.Eras))

	for i := range orig.Artists {
		assert.Equal(t, orig.Artists[i].ID, back.Artists[i].ID, "store order preserved")
		assert.Equal(t, orig.Artists[i].Influences, back.Artists[i].Influences)
		assert.Equal(t, orig.Artists[i].InfluencedBy, back.Artists[i].InfluencedBy)
		assert.Equal(t, orig.Artists[i].DeathYear, back.Artists[i].DeathYear)
	}
	assert.Equal(t, orig.Albums[1].Reviews, back.Albums[1].Reviews)
	assert.Equal(t, orig.Eras[2].Years, back.Eras[2].Years)

	// saving again replaces, not appends
	require.NoError(t, SaveSQLite(ctx, conn, orig))
	again, err := LoadSQLite(ctx, conn)
	require.NoError(t, err)
	assert.Len(t, again.Artists, len(orig.Artists))
}

func TestLoadSQLite_EmptySnapshot(t *testing.T) {
	conn, err := db.OpenWithMigrations(":memory:", nil)
	require.NoError(t, err)
	defer conn.Close()

	_, err = LoadSQLite(context.Background(), conn)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestLoadSQLite_QueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT id, name, period").WillReturnError(errors.New("disk I/O error"))

	_, err = LoadSQLite(context.Background(), conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query eras")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSQLite_BadListColumn(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT id, name, period").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "period", "start_year", "end_year", "description", "characteristics", "key_artists", "color"}).
			AddRow("bebop", "Bebop", "1940s", 1940, 1955, "", "not json", "[]", "#84cc16"))

	_, err = LoadSQLite(context.Background(), conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "era bebop characteristics")
}

func TestSaveSQLite_RollsBackOnFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM albums").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM artists").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	c, err := New([]Artist{{ID: "a"}}, nil, nil)
	require.NoError(t, err)

	err = SaveSQLite(context.Background(), conn, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear artists")
	assert.NoError(t, mock.ExpectationsWereMet())
}
