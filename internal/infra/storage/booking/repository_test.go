package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/dbmetrics"
	"github.com/m04kA/yakidesk/pkg/ptr"
	"github.com/m04kA/yakidesk/pkg/txmanager"
	"github.com/m04kA/yakidesk/pkg/types"
)

func newMockRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	createdAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO bookings (id,desk_id,user_id,booking_date,time_slot) VALUES ($1,$2,$3,$4,$5) RETURNING created_at",
	)).
		WithArgs("b-1", "D1", "alice", "2026-05-12", "morning").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	b, err := repo.Create(context.Background(), &domain.Booking{
		ID:       "b-1",
		DeskID:   "D1",
		UserID:   "alice",
		Date:     "2026-05-12",
		TimeSlot: domain.SlotMorning,
	})

	require.NoError(t, err)
	assert.Equal(t, createdAt, b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_KeepsDriverError(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), &domain.Booking{ID: "b-1", DeskID: "D1", UserID: "alice", Date: "2026-05-12", TimeSlot: domain.SlotMorning})

	require.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsSerializationFailure(err))
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Booking{ID: "b-1", DeskID: "D1", UserID: "alice", Date: "2026-05-12", TimeSlot: domain.SlotMorning})

	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	createdAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, desk_id, user_id, booking_date, time_slot, created_at FROM bookings WHERE id = $1",
	)).
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow("b-1", "D2", "bob", time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC), "full-day", createdAt))

	b, err := repo.GetByID(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, "D2", b.DeskID)
	assert.Equal(t, types.DateString("2026-05-12"), b.Date)
	assert.Equal(t, domain.SlotFullDay, b.TimeSlot)
	assert.Equal(t, createdAt, b.CreatedAt)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .* FROM bookings").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByFilter_ByDate(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, desk_id, user_id, booking_date, time_slot, created_at FROM bookings WHERE booking_date = $1 ORDER BY booking_date ASC, created_at ASC",
	)).
		WithArgs("2026-05-12").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow("b-1", "D1", "alice", "2026-05-12", "morning", time.Now()).
			AddRow("b-2", "D1", "bob", "2026-05-12", "afternoon", time.Now()))

	bookings, err := repo.GetByFilter(context.Background(), domain.BookingsFilter{Date: ptr.Ptr(types.DateString("2026-05-12"))})

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, domain.SlotAfternoon, bookings[1].TimeSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByFilter_LocksRowsInTransaction(t *testing.T) {
	repo, db, mock := newMockRepo(t)
	tm := txmanager.NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE booking_date = $1 AND desk_id = $2 ORDER BY booking_date ASC, created_at ASC FOR UPDATE")).
		WithArgs("2026-05-12", "D1").
		WillReturnRows(sqlmock.NewRows(bookingColumns))
	mock.ExpectCommit()

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		bookings, err := repo.GetByFilter(ctx, domain.BookingsFilter{
			Date:   ptr.Ptr(types.DateString("2026-05-12")),
			DeskID: ptr.Ptr("D1"),
		})
		assert.Empty(t, bookings)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByFilter_ByUser(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE user_id = $1 ORDER BY")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow("b-1", "D3", "alice", "2026-05-10", "full-day", time.Now()))

	bookings, err := repo.GetByFilter(context.Background(), domain.BookingsFilter{UserID: ptr.Ptr("alice")})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "D3", bookings[0].DeskID)
}

func TestRepository_Delete(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "b-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "b-1"), ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
