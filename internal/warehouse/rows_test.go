package warehouse

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/grantstack-labs/grantsql/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"NAME", "STATE", "impact_score_numeric"}).
			AddRow([]byte("Alpha"), "CA", 8.5).
			AddRow([]byte("Beta"), nil, 6.0),
	)

	rows, err := db.Query("SELECT NAME, STATE, impact_score_numeric FROM non_profits_final")
	require.NoError(t, err)

	res, err := collectRows(&adapter.Rows{Rows: rows})
	require.NoError(t, err)

	assert.Equal(t, []string{"NAME", "STATE", "impact_score_numeric"}, res.Columns)
	require.Len(t, res.Rows, 2)

	// []byte values are converted to strings for readability
	assert.Equal(t, "Alpha", res.Rows[0]["NAME"])
	assert.Equal(t, "CA", res.Rows[0]["STATE"])
	assert.Equal(t, 8.5, res.Rows[0]["impact_score_numeric"])

	// NULLs stay nil
	assert.Nil(t, res.Rows[1]["STATE"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectRows_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"a", "b"}))

	rows, err := db.Query("SELECT a, b FROM empty")
	require.NoError(t, err)

	res, err := collectRows(&adapter.Rows{Rows: rows})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, res.Columns)
	assert.Empty(t, res.Rows)
}
