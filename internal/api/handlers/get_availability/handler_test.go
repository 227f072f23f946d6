package get_availability

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

	getAvailability "github.com/m04kA/SMC-WashBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailability.Response), args.Error(1)
}

func TestHandler_Handle(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		query      string
		setup      func(uc *mockUseCase)
		wantStatus int
		wantSlots  []string
	}{
		{
			name:  "returns free labels",
			query: "?locationId=loc-1&date=2025-03-10",
			setup: func(uc *mockUseCase) {
				uc.On("Execute", mock.Anything, &getAvailability.Request{LocationID: "loc-1", Date: day}).
					Return(&getAvailability.Response{
						Date:       day,
						LocationID: "loc-1",
						ActiveBays: 1,
						Slots:      []types.TimeString{"07:00", "09:30"},
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantSlots:  []string{"07:00", "09:30"},
		},
		{
			name:  "empty day still returns a list",
			query: "?locationId=loc-1&date=2025-03-10",
			setup: func(uc *mockUseCase) {
				uc.On("Execute", mock.Anything, mock.Anything).
					Return(&getAvailability.Response{Date: day, LocationID: "loc-1"}, nil)
			},
			wantStatus: http.StatusOK,
			wantSlots:  []string{},
		},
		{
			name:       "missing location",
			query:      "?date=2025-03-10",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed date",
			query:      "?locationId=loc-1&date=10-03-2025",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "unknown location",
			query: "?locationId=nope&date=2025-03-10",
			setup: func(uc *mockUseCase) {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailability.ErrLocationNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:  "store failure",
			query: "?locationId=loc-1&date=2025-03-10",
			setup: func(uc *mockUseCase) {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailability.ErrInternal)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			if tt.setup != nil {
				tt.setup(uc)
			}
			h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantSlots != nil {
				var body AvailabilityResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantSlots, body.Slots)
			}
			if tt.setup == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
