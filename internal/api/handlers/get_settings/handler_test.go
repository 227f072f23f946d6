package get_settings

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

	"github.com/m04kA/SMC-WashBooking/internal/service/settings"
	"github.com/m04kA/SMC-WashBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
	"github.com/m04kA/SMC-WashBooking/pkg/ptr"
)

type mockSettingsService struct {
	mock.Mock
}

func (m *mockSettingsService) Get(ctx context.Context, req *models.GetSettingsRequest) (*models.SettingsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SettingsResponse), args.Error(1)
}

func doRequest(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/manager/settings"+query, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_WithDate(t *testing.T) {
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	svc := new(mockSettingsService)
	svc.On("Get", mock.Anything, mock.MatchedBy(func(r *models.GetSettingsRequest) bool {
		return r.LocationID == "loc-1" && r.Date != nil && r.Date.Equal(day)
	})).Return(&models.SettingsResponse{
		LocationID:       "loc-1",
		GlobalActiveBays: ptr.Ptr(3),
		Date:             &day,
		DailyActiveBays:  ptr.Ptr(1),
		DefaultBays:      2,
		EffectiveBays:    1,
	}, nil)

	rec := doRequest(NewHandler(svc, logger.NewWithWriter(io.Discard, "error")), "?locationId=loc-1&date=2025-03-15")

	require.Equal(t, http.StatusOK, rec.Code)
	var body SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Date)
	assert.Equal(t, "2025-03-15", *body.Date)
	require.NotNil(t, body.DailyActiveBays)
	assert.Equal(t, 1, *body.DailyActiveBays)
	assert.Equal(t, 1, body.EffectiveBays)
	assert.Equal(t, 2, body.DefaultBays)
	svc.AssertExpectations(t)
}

func TestHandler_WithoutDate(t *testing.T) {
	svc := new(mockSettingsService)
	svc.On("Get", mock.Anything, mock.MatchedBy(func(r *models.GetSettingsRequest) bool {
		return r.LocationID == "loc-1" && r.Date == nil
	})).Return(&models.SettingsResponse{
		LocationID:    "loc-1",
		DefaultBays:   2,
		EffectiveBays: 2,
	}, nil)

	rec := doRequest(NewHandler(svc, logger.NewWithWriter(io.Discard, "error")), "?locationId=loc-1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["globalActiveBays"])
	assert.NotContains(t, body, "date")
	assert.NotContains(t, body, "dailyActiveBays")
	assert.EqualValues(t, 2, body["effectiveBays"])
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		wantCall   bool
	}{
		{"missing location", "?date=2025-03-15", nil, http.StatusBadRequest, false},
		{"bad date", "?locationId=loc-1&date=2025-3-15", nil, http.StatusBadRequest, false},
		{"unknown location", "?locationId=loc-9", settings.ErrLocationNotFound, http.StatusNotFound, true},
		{"invalid input", "?locationId=loc-1", settings.ErrInvalidInput, http.StatusBadRequest, true},
		{"store failure", "?locationId=loc-1", settings.ErrInternal, http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockSettingsService)
			if tt.wantCall {
				svc.On("Get", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := doRequest(NewHandler(svc, logger.NewWithWriter(io.Discard, "error")), tt.query)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if !tt.wantCall {
				svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
			}
		})
	}
}
