package desk

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, label, location, type FROM desks ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "location", "type"}).
			AddRow("D1", "Desk 1", "A1", "Standard").
			AddRow("D3", "Desk 3", nil, nil))

	desks, err := NewRepository(db).List(context.Background())

	require.NoError(t, err)
	require.Len(t, desks, 2)
	require.NotNil(t, desks[0].Location)
	assert.Equal(t, "A1", *desks[0].Location)
	assert.Equal(t, "Standard", *desks[0].Type)
	assert.Nil(t, desks[1].Location)
	assert.Nil(t, desks[1].Type)
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, label, location, type FROM desks WHERE id = $1")).
		WithArgs("D2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "location", "type"}).
			AddRow("D2", "Desk 2", "A2", "Standard"))
	mock.ExpectQuery("FROM desks").
		WithArgs("D9").
		WillReturnError(sql.ErrNoRows)

	repo := NewRepository(db)

	desk, err := repo.GetByID(context.Background(), "D2")
	require.NoError(t, err)
	assert.Equal(t, "Desk 2", desk.Label)

	_, err = repo.GetByID(context.Background(), "D9")
	assert.ErrorIs(t, err, ErrDeskNotFound)
}
