package redeem_free_wash

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	rewardsRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/rewards"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

type fakeBookings struct {
	bookings []*domain.Booking
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBookings) GetByLocationInRange(_ context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.LocationID == filter.LocationID && !b.StartTime.Before(filter.From) && b.StartTime.Before(filter.To) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeLocations struct{}

var basic = &domain.Service{ID: "basic", LocationID: "loc-1", DurationMinutes: 30, IsActive: true}

func (fakeLocations) GetByID(_ context.Context, id string) (*domain.Location, error) {
	if id != "loc-1" {
		return nil, locationRepo.ErrLocationNotFound
	}
	return &domain.Location{ID: id}, nil
}

func (fakeLocations) GetService(_ context.Context, _, serviceID string) (*domain.Service, error) {
	if serviceID != basic.ID {
		return nil, locationRepo.ErrServiceNotFound
	}
	return basic, nil
}

func (fakeLocations) ListServices(context.Context, string, bool) ([]*domain.Service, error) {
	return []*domain.Service{basic}, nil
}

type fakeRewards struct {
	ledger  map[string]domain.Rewards
	upserts int
}

func (f *fakeRewards) Get(_ context.Context, userID, locationID string) (*domain.Rewards, error) {
	rw, ok := f.ledger[userID+"/"+locationID]
	if !ok {
		return nil, rewardsRepo.ErrRewardsNotFound
	}
	return &rw, nil
}

func (f *fakeRewards) Upsert(_ context.Context, rw *domain.Rewards) (*domain.Rewards, error) {
	f.upserts++
	f.ledger[rw.UserID+"/"+rw.LocationID] = *rw
	return rw, nil
}

// fakeBlocked хранит заблокированные слоты по ключу "дата/время"
type fakeBlocked map[string]bool

func (f fakeBlocked) Exists(_ context.Context, _ string, date time.Time, slot types.TimeString) (bool, error) {
	return f[date.Format(domain.DateFormat)+"/"+string(slot)], nil
}

type fixedBays int

func (f fixedBays) Resolve(context.Context, string, time.Time) (int, error) {
	return int(f), nil
}

// rollbackTx откатывает изменения fakes, если fn вернула ошибку
type rollbackTx struct {
	mu       sync.Mutex
	bookings *fakeBookings
	rewards  *fakeRewards
}

func (r *rollbackTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	savedBookings := append([]*domain.Booking(nil), r.bookings.bookings...)
	savedLedger := make(map[string]domain.Rewards, len(r.rewards.ledger))
	for k, v := range r.rewards.ledger {
		savedLedger[k] = v
	}

	if err := fn(ctx); err != nil {
		r.bookings.bookings = savedBookings
		r.rewards.ledger = savedLedger
		return err
	}
	return nil
}

type noopMetrics struct{}

func (noopMetrics) IncBookingCreated(string) {}
func (noopMetrics) IncBookingConflict() {}

type fixedTime time.Time

func (f fixedTime) Now() time.Time {
	return time.Time(f)
}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T, bookings *fakeBookings, rewards *fakeRewards, bays int) *UseCase {
	t.Helper()
	grid, err := domain.NewGrid(domain.GridConfig{
		OpenTime:            "07:00",
		CloseTime:           "18:00",
		SlotIntervalMinutes: 15,
		UTCOffsetMinutes:    120,
	})
	require.NoError(t, err)

	return NewUseCase(
		bookings,
		fakeLocations{},
		fakeBlocked{},
		rewards,
		fixedBays(bays),
		&rollbackTx{bookings: bookings, rewards: rewards},
		grid,
		noopMetrics{},
		logger.NewWithWriter(io.Discard, "error"),
	).WithTimeProvider(fixedTime(time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)))
}

func request() *Request {
	return &Request{
		UserID:     "u-1",
		LocationID: "loc-1",
		ServiceID:  "basic",
		Date:       day,
		StartTime:  "11:00",
	}
}

func TestExecute_RedeemsFreeWash(t *testing.T) {
	bookings := &fakeBookings{}
	rewards := &fakeRewards{ledger: map[string]domain.Rewards{
		"u-1/loc-1": {UserID: "u-1", LocationID: "loc-1", LoyaltyPoints: 4, FreeWashes: 2},
	}}

	resp, err := newUseCase(t, bookings, rewards, 1).Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, "free", resp.Status)
	assert.Equal(t, 1, resp.BayID)
	assert.Equal(t, 1, resp.RemainingFreeWashes)
	assert.Equal(t, 4, resp.LoyaltyPoints)
	require.Len(t, bookings.bookings, 1)
	assert.Equal(t, domain.StatusFree, bookings.bookings[0].Status)
	assert.Equal(t, 1, rewards.ledger["u-1/loc-1"].FreeWashes)
}

func TestExecute_NoFreeWashLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name   string
		ledger map[string]domain.Rewards
	}{
		{
			name: "zero balance",
			ledger: map[string]domain.Rewards{
				"u-1/loc-1": {UserID: "u-1", LocationID: "loc-1", LoyaltyPoints: 9, FreeWashes: 0},
			},
		},
		{
			name:   "no ledger entry",
			ledger: map[string]domain.Rewards{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookings{}
			rewards := &fakeRewards{ledger: tt.ledger}
			before := len(tt.ledger)

			_, err := newUseCase(t, bookings, rewards, 1).Execute(context.Background(), request())

			assert.ErrorIs(t, err, ErrNoRewardAvailable)
			assert.Empty(t, bookings.bookings)
			assert.Zero(t, rewards.upserts)
			assert.Len(t, rewards.ledger, before)
		})
	}
}

func TestExecute_FullSlotKeepsFreeWash(t *testing.T) {
	bookings := &fakeBookings{}
	rewards := &fakeRewards{ledger: map[string]domain.Rewards{
		"u-1/loc-1": {UserID: "u-1", LocationID: "loc-1", FreeWashes: 1},
	}}
	uc := newUseCase(t, bookings, rewards, 1)
	bookings.bookings = append(bookings.bookings, &domain.Booking{
		ID:         "taken",
		LocationID: "loc-1",
		ServiceID:  "basic",
		StartTime:  uc.grid.Instant(day, "11:00"),
		BayID:      1,
	})

	_, err := uc.Execute(context.Background(), request())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, bookings.bookings, 1)
	assert.Equal(t, 1, rewards.ledger["u-1/loc-1"].FreeWashes)
}

func TestExecute_BlockedSlotKeepsFreeWash(t *testing.T) {
	bookings := &fakeBookings{}
	rewards := &fakeRewards{ledger: map[string]domain.Rewards{
		"u-1/loc-1": {UserID: "u-1", LocationID: "loc-1", FreeWashes: 1},
	}}
	uc := newUseCase(t, bookings, rewards, 2)
	uc.blockedRepo = fakeBlocked{"2025-03-10/12:00": true}

	req := request()
	req.StartTime = "12:00"
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, bookings.bookings)
	assert.Zero(t, rewards.upserts)
	assert.Equal(t, 1, rewards.ledger["u-1/loc-1"].FreeWashes)
}

func TestExecute_InvalidRequest(t *testing.T) {
	bookings := &fakeBookings{}
	rewards := &fakeRewards{ledger: map[string]domain.Rewards{}}
	uc := newUseCase(t, bookings, rewards, 1)

	req := request()
	req.StartTime = "11:07"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req = request()
	req.UserID = ""
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
