package create_booking

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/booking"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
	"github.com/m04kA/SMC-WashBooking/pkg/txmanager"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

type fakeBookings struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.LocationID == b.LocationID && existing.StartTime.Equal(b.StartTime) && existing.BayID == b.BayID {
			return nil, bookingRepo.ErrDuplicateBay
		}
	}
	b.CreatedAt = time.Now()
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBookings) GetByLocationInRange(_ context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.LocationID == filter.LocationID && !b.StartTime.Before(filter.From) && b.StartTime.Before(filter.To) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeLocations struct {
	services []*domain.Service
}

func (f *fakeLocations) GetByID(_ context.Context, id string) (*domain.Location, error) {
	if id != "loc-1" {
		return nil, locationRepo.ErrLocationNotFound
	}
	return &domain.Location{ID: id}, nil
}

func (f *fakeLocations) GetService(_ context.Context, locationID, serviceID string) (*domain.Service, error) {
	for _, s := range f.services {
		if s.LocationID == locationID && s.ID == serviceID {
			return s, nil
		}
	}
	return nil, locationRepo.ErrServiceNotFound
}

func (f *fakeLocations) ListServices(_ context.Context, _ string, _ bool) ([]*domain.Service, error) {
	return f.services, nil
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

type fakeUsers struct{}

func (fakeUsers) GetOrCreate(_ context.Context, userID string) (*domain.User, error) {
	return &domain.User{ID: userID}, nil
}

type fakeRewards struct {
	mu      sync.Mutex
	ledger  map[string]*domain.Rewards
	failErr error
}

func newFakeRewards() *fakeRewards {
	return &fakeRewards{ledger: make(map[string]*domain.Rewards)}
}

func (f *fakeRewards) AccruePoint(_ context.Context, userID, locationID string) (*domain.Rewards, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := userID + "/" + locationID
	rw, ok := f.ledger[key]
	if !ok {
		rw = domain.NewRewards(userID, locationID)
		f.ledger[key] = rw
	}
	rw.Accrue()
	copied := *rw
	return &copied, nil
}

// serialTx выполняет транзакции строго по одной, как сериализуемая изоляция
type serialTx struct {
	mu sync.Mutex
}

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type exhaustedTx struct{}

func (exhaustedTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return txmanager.ErrRetriesExhausted
}

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
	failures  int
}

func (m *countingMetrics) IncBookingCreated(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *countingMetrics) IncBookingConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

func (m *countingMetrics) IncRewardAccrualFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time {
	return time.Time(f)
}

type fixture struct {
	grid     *domain.Grid
	bookings *fakeBookings
	rewards  *fakeRewards
	metrics  *countingMetrics
	blocked  fakeBlocked
	tx       TransactionManager
	bays     int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	grid, err := domain.NewGrid(domain.GridConfig{
		OpenTime:            "07:00",
		CloseTime:           "18:00",
		SlotIntervalMinutes: 15,
		UTCOffsetMinutes:    120,
	})
	require.NoError(t, err)
	return &fixture{
		grid:     grid,
		bookings: &fakeBookings{},
		rewards:  newFakeRewards(),
		metrics:  &countingMetrics{},
		blocked:  fakeBlocked{},
		tx:       &serialTx{},
		bays:     1,
	}
}

func (f *fixture) useCase() *UseCase {
	locations := &fakeLocations{services: []*domain.Service{
		{ID: "basic", LocationID: "loc-1", DurationMinutes: 30, IsActive: true},
		{ID: "retired", LocationID: "loc-1", DurationMinutes: 30, IsActive: false},
	}}
	return NewUseCase(
		f.bookings,
		locations,
		f.blocked,
		fixedBays(f.bays),
		fakeUsers{},
		f.rewards,
		f.tx,
		f.grid,
		f.metrics,
		logger.NewWithWriter(io.Discard, "error"),
	).WithTimeProvider(fixedTime(time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)))
}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func request(user string) *Request {
	return &Request{
		UserID:     user,
		LocationID: "loc-1",
		ServiceID:  "basic",
		Date:       day,
		StartTime:  "09:00",
	}
}

func TestExecute_CreatesPaidBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase().Execute(context.Background(), request("u-1"))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, resp.BayID)
	assert.Equal(t, "paid", resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	// 09:00 SAST = 07:00 UTC
	assert.Equal(t, time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), resp.StartInstant)
	require.NotNil(t, resp.Rewards)
	assert.Equal(t, 1, resp.Rewards.LoyaltyPoints)
	assert.Nil(t, resp.RewardsWarning)
	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_ConcurrentCommitsForLastBay(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase()

	var (
		wg      sync.WaitGroup
		results = make([]*Response, 2)
		errs    = make([]error, 2)
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.Execute(context.Background(), request("u-1"))
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for i := range errs {
		switch {
		case errs[i] == nil:
			succeeded++
			assert.Equal(t, 1, results[i].BayID)
		case errors.Is(errs[i], ErrSlotNotAvailable):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", errs[i])
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, 1, f.bookings.count())
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_SecondBayAtSameInstant(t *testing.T) {
	f := newFixture(t)
	f.bays = 2
	uc := f.useCase()

	first, err := uc.Execute(context.Background(), request("u-1"))
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), request("u-2"))
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), request("u-3"))

	assert.Equal(t, 1, first.BayID)
	assert.Equal(t, 2, second.BayID)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BlockedSlotIsRejected(t *testing.T) {
	f := newFixture(t)
	f.bays = 3
	f.blocked["2025-03-10/12:00"] = true
	uc := f.useCase()

	req := request("u-1")
	req.StartTime = "12:00"
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, f.bookings.count())
	assert.Empty(t, f.rewards.ledger)

	// соседний слот остается доступным
	req = request("u-1")
	req.StartTime = "12:15"
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.BayID)
}

func TestExecute_TenthBookingEarnsFreeWash(t *testing.T) {
	f := newFixture(t)
	f.rewards.ledger["u-1/loc-1"] = &domain.Rewards{UserID: "u-1", LocationID: "loc-1", LoyaltyPoints: 9}

	resp, err := f.useCase().Execute(context.Background(), request("u-1"))

	require.NoError(t, err)
	require.NotNil(t, resp.Rewards)
	assert.Equal(t, 0, resp.Rewards.LoyaltyPoints)
	assert.Equal(t, 1, resp.Rewards.FreeWashes)
}

func TestExecute_RewardsFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.rewards.failErr = errors.New("ledger unavailable")

	resp, err := f.useCase().Execute(context.Background(), request("u-1"))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Nil(t, resp.Rewards)
	require.NotNil(t, resp.RewardsWarning)
	assert.Equal(t, 1, f.bookings.count())
	assert.Equal(t, 1, f.metrics.failures)
}

func TestExecute_RetriesExhaustedIsConflict(t *testing.T) {
	f := newFixture(t)
	f.tx = exhaustedTx{}

	_, err := f.useCase().Execute(context.Background(), request("u-1"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, f.bookings.count())
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "missing service",
			mutate:  func(r *Request) { r.ServiceID = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed time",
			mutate:  func(r *Request) { r.StartTime = "9am" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "time off the grid",
			mutate:  func(r *Request) { r.StartTime = "09:10" },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "time after close",
			mutate:  func(r *Request) { r.StartTime = "18:00" },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "slot in the past",
			mutate:  func(r *Request) { r.Date = day.AddDate(0, 0, -2) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "unknown location",
			mutate:  func(r *Request) { r.LocationID = "loc-2" },
			wantErr: ErrLocationNotFound,
		},
		{
			name:    "unknown service",
			mutate:  func(r *Request) { r.ServiceID = "polish" },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "disabled service",
			mutate:  func(r *Request) { r.ServiceID = "retired" },
			wantErr: ErrServiceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := request("u-1")
			tt.mutate(req)

			_, err := f.useCase().Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.bookings.count())
		})
	}
}
