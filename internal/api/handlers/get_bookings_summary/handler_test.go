package get_bookings_summary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashBooking/internal/service/bookings"
	"github.com/m04kA/SMC-WashBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) Summary(ctx context.Context, locationID string, date time.Time) (*models.BookingsSummaryResponse, error) {
	args := m.Called(ctx, locationID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingsSummaryResponse), args.Error(1)
}

func doRequest(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/manager/bookings/summary"+query, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Summary(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := new(mockBookingService)
	svc.On("Summary", mock.Anything, "loc-1", mock.MatchedBy(func(d time.Time) bool {
		return d.Equal(day)
	})).Return(&models.BookingsSummaryResponse{
		LocationID: "loc-1",
		Date:       "2025-03-10",
		Total:      3,
		Paid:       2,
		Free:       1,
		ByService:  map[string]int{"basic": 2, "quick": 1},
		ByBay:      map[int]int{1: 2, 2: 1},
	}, nil)

	rec := doRequest(NewHandler(svc, logger.NewWithWriter(io.Discard, "error")), "?locationId=loc-1&date=2025-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingsSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.Paid)
	assert.Equal(t, 1, body.Free)
	assert.Equal(t, map[string]int{"basic": 2, "quick": 1}, body.ByService)
	assert.Equal(t, map[int]int{1: 2, 2: 1}, body.ByBay)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		wantCall   bool
	}{
		{"missing location", "?date=2025-03-10", nil, http.StatusBadRequest, false},
		{"missing date", "?locationId=loc-1", nil, http.StatusBadRequest, false},
		{"bad date", "?locationId=loc-1&date=10-03-2025", nil, http.StatusBadRequest, false},
		{"unknown location", "?locationId=loc-9&date=2025-03-10", bookings.ErrLocationNotFound, http.StatusNotFound, true},
		{"store failure", "?locationId=loc-1&date=2025-03-10", bookings.ErrInternal, http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockBookingService)
			if tt.wantCall {
				svc.On("Summary", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := doRequest(NewHandler(svc, logger.NewWithWriter(io.Discard, "error")), tt.query)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			if !tt.wantCall {
				svc.AssertNotCalled(t, "Summary", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
