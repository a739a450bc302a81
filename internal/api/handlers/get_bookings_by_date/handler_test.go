package get_bookings_by_date

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/yakidesk/internal/api/middleware"
	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/service/bookings"
	"github.com/m04kA/yakidesk/internal/service/bookings/models"
	"github.com/m04kA/yakidesk/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByDate(ctx context.Context, actor domain.Actor, rawDate string) (*models.DayBookingsResponse, error) {
	args := m.Called(ctx, actor, rawDate)
	resp, _ := args.Get(0).(*models.DayBookingsResponse)
	return resp, args.Error(1)
}

func doRequest(svc BookingService, actor domain.Actor, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_RootSeesViolations(t *testing.T) {
	svc := new(mockService)
	root := domain.Actor{UserID: "root", Root: true}
	svc.On("GetByDate", mock.Anything, root, "2026-05-12").Return(&models.DayBookingsResponse{
		Date: "2026-05-12",
		Bookings: []models.BookingResponse{
			{ID: "b1", DeskID: "D1", TimeSlot: "morning"},
			{ID: "b2", DeskID: "D1", TimeSlot: "full-day"},
		},
		Total: 2,
		Violations: []models.ViolationResponse{
			{DeskID: "D1", Date: "2026-05-12", FirstBookingID: "b1", SecondBookingID: "b2"},
		},
	}, nil)

	rec := doRequest(svc, root, "/api/v1/bookings?date=2026-05-12")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.DayBookingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "b2", resp.Violations[0].SecondBookingID)
}

func TestHandler_UserWithoutViolations(t *testing.T) {
	svc := new(mockService)
	svc.On("GetByDate", mock.Anything, mock.Anything, "2026-05-12").Return(&models.DayBookingsResponse{
		Date:     "2026-05-12",
		Bookings: []models.BookingResponse{},
	}, nil)

	rec := doRequest(svc, domain.Actor{UserID: "alice"}, "/api/v1/bookings?date=2026-05-12")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "violations")
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{"missing date", "/api/v1/bookings", nil, http.StatusBadRequest},
		{"invalid date", "/api/v1/bookings?date=tomorrow", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"unauthenticated", "/api/v1/bookings?date=2026-05-12", bookings.ErrUnauthenticated, http.StatusUnauthorized},
		{"store down", "/api/v1/bookings?date=2026-05-12", bookings.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.err != nil {
				svc.On("GetByDate", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := doRequest(svc, domain.Actor{UserID: "alice"}, tt.target)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
