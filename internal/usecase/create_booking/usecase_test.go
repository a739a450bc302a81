package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/yakidesk/internal/availability"
	"github.com/m04kA/yakidesk/internal/domain"
	bookingRepo "github.com/m04kA/yakidesk/internal/infra/storage/booking"
	deskRepo "github.com/m04kA/yakidesk/internal/infra/storage/desk"
	userRepo "github.com/m04kA/yakidesk/internal/infra/storage/user"
	"github.com/m04kA/yakidesk/internal/integrations/notifier"
	"github.com/m04kA/yakidesk/internal/resolver"
	"github.com/m04kA/yakidesk/pkg/logger"
	"github.com/m04kA/yakidesk/pkg/txmanager"
	"github.com/m04kA/yakidesk/pkg/types"
)

var fixedNow = time.Date(2026, 5, 10, 8, 30, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return fixedNow }

// fakeBookingRepo хранилище бронирований в памяти с инъекцией ошибок
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	createErr error
	deleteErr map[string]error
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *fakeBookingRepo) GetByFilter(_ context.Context, f domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if f.Date != nil && b.Date != *f.Date {
			continue
		}
		if f.DeskID != nil && b.DeskID != *f.DeskID {
			continue
		}
		if f.UserID != nil && b.UserID != *f.UserID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.deleteErr[id]; err != nil {
		return err
	}
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.bookings))
	for _, b := range r.bookings {
		ids = append(ids, b.ID)
	}
	return ids
}

type fakeDeskRepo struct{}

func (fakeDeskRepo) GetByID(_ context.Context, id string) (*domain.Desk, error) {
	switch id {
	case "D1", "D2", "D3":
		return &domain.Desk{ID: id, Label: "Desk"}, nil
	}
	return nil, deskRepo.ErrDeskNotFound
}

type fakeUserRepo map[string]domain.UserStatus

func (r fakeUserRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	status, ok := r[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &domain.UserProfile{ID: id, Status: status}, nil
}

// fakeTx выполняет fn без транзакции; before вызывается перед fn
type fakeTx struct {
	before func()
	err    error
}

func (tx *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx.err != nil {
		return tx.err
	}
	if tx.before != nil {
		tx.before()
	}
	return fn(ctx)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event notifier.Event) error {
	return m.Called(ctx, event).Error(0)
}

type recordedMetrics struct {
	actions    []string
	operations []string
}

func (m *recordedMetrics) RecordBookingAction(action string) {
	m.actions = append(m.actions, action)
}

func (m *recordedMetrics) RecordBookingOperation(operation, status string) {
	m.operations = append(m.operations, operation+":"+status)
}

type fixture struct {
	uc        *UseCase
	repo      *fakeBookingRepo
	tx        *fakeTx
	publisher *mockPublisher
	metrics   *recordedMetrics
}

func newFixture(existing ...*domain.Booking) *fixture {
	seq := 0
	f := &fixture{
		repo:      &fakeBookingRepo{bookings: existing, deleteErr: map[string]error{}},
		tx:        &fakeTx{},
		publisher: &mockPublisher{},
		metrics:   &recordedMetrics{},
	}
	res := resolver.New(resolver.WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("new-%d", seq)
	}))
	users := fakeUserRepo{"alice": domain.UserStatusApproved, "bob": domain.UserStatusApproved, "pat": domain.UserStatusPending}

	f.uc = NewUseCase(f.repo, fakeDeskRepo{}, users, res, f.tx, f.publisher, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{}
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func existing(id, desk, user, date string, slot domain.TimeSlot) *domain.Booking {
	return &domain.Booking{ID: id, DeskID: desk, UserID: user, Date: types.DateString(date), TimeSlot: slot}
}

var (
	alice = domain.Actor{UserID: "alice", Name: "Alice"}
	bob   = domain.Actor{UserID: "bob", Name: "Bob"}
	root  = domain.Actor{UserID: "admin", Name: "Admin", Root: true}
)

func TestExecute_CreateOnFreeSlot(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: alice, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"})

	require.NoError(t, err)
	assert.Equal(t, resolver.ActionCreate, resp.Action)
	assert.True(t, resp.Created())
	assert.Equal(t, []OperationResult{{Operation: OperationCreate, BookingID: "new-1", Status: StatusConfirmed}}, resp.Operations)
	assert.Equal(t, []string{"new-1"}, f.repo.ids())
	assert.Equal(t, []string{"create"}, f.metrics.actions)
	assert.Equal(t, []string{"create:confirmed"}, f.metrics.operations)
	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e notifier.Event) bool {
		return e.Type == notifier.EventBookingCreated && e.BookingID == "new-1" && e.UserID == "alice"
	}))
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Actor: alice, DeskID: "D1", Date: "2026-05-10", TimeSlot: "afternoon"})

	assert.NoError(t, err)
}

func TestExecute_NonRootConflict(t *testing.T) {
	f := newFixture(existing("b1", "D1", "alice", "2026-05-12", domain.SlotMorning))

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: bob, DeskID: "D1", Date: "2026-05-12", TimeSlot: "full-day"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, []string{"b1"}, f.repo.ids())
	assert.Equal(t, []string{"reject_slot_taken"}, f.metrics.actions)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestExecute_RootOverride(t *testing.T) {
	f := newFixture(existing("b1", "D1", "bob", "2026-05-12", domain.SlotAfternoon))

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: root, DeskID: "D1", Date: "2026-05-12", TimeSlot: "afternoon"})

	require.NoError(t, err)
	assert.Equal(t, resolver.ActionCreateAndCancel, resp.Action)
	assert.True(t, resp.Created())
	assert.Equal(t, []OperationResult{
		{Operation: OperationDelete, BookingID: "b1", Status: StatusConfirmed},
		{Operation: OperationCreate, BookingID: "new-1", Status: StatusConfirmed},
	}, resp.Operations)
	assert.Equal(t, []string{"new-1"}, f.repo.ids())
	assert.Empty(t, availability.FindViolations(f.repo.bookings))
	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e notifier.Event) bool {
		return e.Type == notifier.EventBookingOverridden &&
			e.SupersededBookingID == "b1" && e.SupersededUserID == "bob" && e.ActorID == "admin"
	}))
}

func TestExecute_RootFullDayOverTwoBookings(t *testing.T) {
	f := newFixture(
		existing("b1", "D1", "alice", "2026-05-12", domain.SlotMorning),
		existing("b2", "D1", "bob", "2026-05-12", domain.SlotAfternoon),
		existing("b3", "D2", "bob", "2026-05-12", domain.SlotMorning),
	)

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: root, DeskID: "D1", Date: "2026-05-12", TimeSlot: "full-day"})

	require.NoError(t, err)
	require.Len(t, resp.Operations, 3)
	assert.Len(t, resp.Superseded, 2)
	assert.ElementsMatch(t, []string{"b3", "new-1"}, f.repo.ids())
	f.publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestExecute_OverrideDeleteFails(t *testing.T) {
	f := newFixture(existing("b1", "D1", "bob", "2026-05-12", domain.SlotAfternoon))
	f.repo.deleteErr["b1"] = errors.New("connection refused")

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: root, DeskID: "D1", Date: "2026-05-12", TimeSlot: "afternoon"})

	require.NoError(t, err)
	assert.False(t, resp.Created())
	assert.Equal(t, StatusFailed, resp.Operations[0].Status)
	assert.Equal(t, StatusFailed, resp.Operations[1].Status)
	assert.Contains(t, resp.Operations[1].Error, "skipped")
	assert.Equal(t, []string{"b1"}, f.repo.ids())
	assert.Equal(t, []string{"delete:failed", "create:failed"}, f.metrics.operations)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestExecute_OverrideCreateFailsAfterDelete(t *testing.T) {
	f := newFixture(existing("b1", "D1", "bob", "2026-05-12", domain.SlotAfternoon))
	f.repo.createErr = errors.New("disk full")

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: root, DeskID: "D1", Date: "2026-05-12", TimeSlot: "afternoon"})

	require.NoError(t, err)
	assert.False(t, resp.Created())
	assert.Equal(t, StatusConfirmed, resp.Operations[0].Status)
	assert.Equal(t, StatusFailed, resp.Operations[1].Status)
	assert.Empty(t, f.repo.ids())
	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e notifier.Event) bool {
		return e.Type == notifier.EventBookingCancelled && e.BookingID == "b1" && e.UserID == "bob"
	}))
}

func TestExecute_ConflictAppearsBeforeCommit(t *testing.T) {
	f := newFixture()
	f.tx.before = func() {
		f.repo.bookings = append(f.repo.bookings, existing("race", "D1", "bob", "2026-05-12", domain.SlotFullDay))
	}

	_, err := f.uc.Execute(context.Background(), &Request{Actor: alice, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, []string{"race"}, f.repo.ids())
	assert.Equal(t, []string{"create:failed"}, f.metrics.operations)
}

func TestExecute_SerializationFailure(t *testing.T) {
	f := newFixture()
	f.tx.err = fmt.Errorf("%w: could not serialize access", txmanager.ErrSerializationFailure)

	_, err := f.uc.Execute(context.Background(), &Request{Actor: alice, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"})

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_StoreFailureOnCreate(t *testing.T) {
	f := newFixture()
	f.repo.createErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), &Request{Actor: alice, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture()
	f.publisher = &mockPublisher{}
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	f.uc.publisher = f.publisher

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: alice, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"})

	require.NoError(t, err)
	assert.True(t, resp.Created())
}

func TestExecute_RejectsBeforeTouchingStore(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "anonymous", req: Request{Actor: domain.Anonymous, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"}, want: ErrUnauthenticated},
		{name: "past date", req: Request{Actor: alice, DeskID: "D1", Date: "2026-05-09", TimeSlot: "morning"}, want: ErrInvalidDate},
		{name: "bad slot", req: Request{Actor: alice, DeskID: "D1", Date: "2026-05-12", TimeSlot: "evening"}, want: ErrInvalidInput},
		{name: "bad date", req: Request{Actor: alice, DeskID: "D1", Date: "2026/05/12", TimeSlot: "morning"}, want: ErrInvalidInput},
		{name: "no desk", req: Request{Actor: alice, Date: "2026-05-12", TimeSlot: "morning"}, want: ErrInvalidInput},
		{name: "unknown desk", req: Request{Actor: alice, DeskID: "D9", Date: "2026-05-12", TimeSlot: "morning"}, want: ErrDeskNotFound},
		{name: "pending user", req: Request{Actor: domain.Actor{UserID: "pat"}, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"}, want: ErrNotApproved},
		{name: "no profile", req: Request{Actor: domain.Actor{UserID: "ghost"}, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"}, want: ErrNotApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.repo.ids())
		})
	}
}

func TestExecute_RootSkipsApproval(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Actor: domain.Actor{UserID: "ghost-root", Root: true}, DeskID: "D1", Date: "2026-05-12", TimeSlot: "morning"})

	assert.NoError(t, err)
}
