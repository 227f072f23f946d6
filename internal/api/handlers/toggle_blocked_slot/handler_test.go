package toggle_blocked_slot

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

	"github.com/m04kA/SMC-WashBooking/internal/service/blockedslots"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Toggle(ctx context.Context, locationID string, date time.Time, slot types.TimeString) (bool, error) {
	args := m.Called(ctx, locationID, date, slot)
	return args.Bool(0), args.Error(1)
}

func TestHandler_Handle(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		body        string
		blocked     bool
		err         error
		callService bool
		wantStatus  int
	}{
		{
			name:        "blocks a free slot",
			body:        `{"locationId":"loc-1","date":"2025-03-10","timeSlot":"10:00"}`,
			blocked:     true,
			callService: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "off-grid slot",
			body:        `{"locationId":"loc-1","date":"2025-03-10","timeSlot":"10:00"}`,
			err:         blockedslots.ErrInvalidTimeSlot,
			callService: true,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "unknown location",
			body:        `{"locationId":"loc-1","date":"2025-03-10","timeSlot":"10:00"}`,
			err:         blockedslots.ErrLocationNotFound,
			callService: true,
			wantStatus:  http.StatusNotFound,
		},
		{
			name:       "malformed time",
			body:       `{"locationId":"loc-1","date":"2025-03-10","timeSlot":"ten"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed date",
			body:       `{"locationId":"loc-1","date":"2025/03/10","timeSlot":"10:00"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.callService {
				svc.On("Toggle", mock.Anything, "loc-1", day, types.TimeString("10:00")).Return(tt.blocked, tt.err)
			}
			h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/manager/blocked-slots", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var body ToggleResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.True(t, body.Blocked)
				assert.Equal(t, "10:00", body.TimeSlot)
			}
			if !tt.callService {
				svc.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
