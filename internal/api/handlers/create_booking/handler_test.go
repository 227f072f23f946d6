package create_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WashBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-WashBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
	"github.com/m04kA/SMC-WashBooking/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

func doRequest(h *Handler, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.WithIdentity(req.Context(), userID, domain.RoleCustomer))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"locationId":"loc-1","serviceId":"basic","date":"2025-03-10","startTime":"09:00"}`

func TestHandler_Created(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.UserID == "u-1" && r.LocationID == "loc-1" && r.StartTime == "09:00"
	})).Return(&createBooking.Response{
		ID:              "b-1",
		UserID:          "u-1",
		LocationID:      "loc-1",
		ServiceID:       "basic",
		Date:            time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		StartInstant:    time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          "paid",
		BayID:           1,
		RewardsWarning:  ptr.Ptr("booking created, loyalty point was not credited"),
	}, nil)

	rec := doRequest(NewHandler(uc, logger.NewWithWriter(io.Discard, "error")), "u-1", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "b-1", body.ID)
	assert.Equal(t, "2025-03-10T07:00:00Z", body.StartTime)
	assert.Equal(t, "09:00", body.TimeSlot)
	require.NotNil(t, body.RewardsWarning)
	assert.Nil(t, body.Rewards)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot taken", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"unknown location", createBooking.ErrLocationNotFound, http.StatusNotFound},
		{"unknown service", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"off grid", createBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{"past slot", createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"store failure", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := doRequest(NewHandler(uc, logger.NewWithWriter(io.Discard, "error")), "u-1", validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandler_RejectsBeforeUseCase(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       string
		wantStatus int
	}{
		{"no identity", "", validBody, http.StatusUnauthorized},
		{"broken json", "u-1", `{"locationId":`, http.StatusBadRequest},
		{"unknown field", "u-1", `{"locationId":"loc-1","userId":"someone-else"}`, http.StatusBadRequest},
		{"bad date", "u-1", `{"locationId":"loc-1","serviceId":"basic","date":"10.03.2025","startTime":"09:00"}`, http.StatusBadRequest},
		{"bad time", "u-1", `{"locationId":"loc-1","serviceId":"basic","date":"2025-03-10","startTime":"9"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)

			rec := doRequest(NewHandler(uc, logger.NewWithWriter(io.Discard, "error")), tt.userID, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
