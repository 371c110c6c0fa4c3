package booking

import (
	"context"
	"testing"
	"time"

	"ofiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 55
	}
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepo) CancelWithReason(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockBookingRepo) ConfirmCompletion(ctx context.Context, id int64, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, clientID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByMaster(ctx context.Context, masterID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, masterID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockListingReader struct {
	mock.Mock
}

func (m *MockListingReader) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockConsumer struct {
	mock.Mock
}

func (m *MockConsumer) ConsumeApplication(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func activeListing() *domain.Listing {
	return &domain.Listing{ID: 3, MasterID: 20, Title: "Plomería", PriceBase: 1500, Active: true}
}

func TestCreate_Success(t *testing.T) {
	repo := new(MockBookingRepo)
	listings := new(MockListingReader)

	listings.On("GetByID", mock.Anything, int64(3)).Return(activeListing(), nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ClientID == 10 && b.MasterID == 20 && b.TotalPrice == 1500 && b.Status == domain.BookingPending
	})).Return(nil)

	b, err := NewService(repo, listings, nil, nil, nil).Create(context.Background(), 10, CreateRequest{
		ListingID: 3, ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 55, b.ID)
	repo.AssertExpectations(t)
}

func TestCreate_OwnListing(t *testing.T) {
	listings := new(MockListingReader)
	listings.On("GetByID", mock.Anything, int64(3)).Return(activeListing(), nil)

	_, err := NewService(new(MockBookingRepo), listings, nil, nil, nil).Create(context.Background(), 20, CreateRequest{
		ListingID: 3, ScheduledAt: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrOwnListing)
}

func TestCreate_InactiveListing(t *testing.T) {
	listings := new(MockListingReader)
	l := activeListing()
	l.Active = false
	listings.On("GetByID", mock.Anything, int64(3)).Return(l, nil)

	_, err := NewService(new(MockBookingRepo), listings, nil, nil, nil).Create(context.Background(), 10, CreateRequest{
		ListingID: 3, ScheduledAt: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrListingInactive)
}

func TestCreate_ListingNotFound(t *testing.T) {
	listings := new(MockListingReader)
	listings.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(new(MockBookingRepo), listings, nil, nil, nil).Create(context.Background(), 10, CreateRequest{
		ListingID: 3, ScheduledAt: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestSetStatus_ConfirmConsumesApplication(t *testing.T) {
	repo := new(MockBookingRepo)
	subs := new(MockConsumer)

	repo.On("GetByID", mock.Anything, int64(55)).
		Return(&domain.Booking{ID: 55, ClientID: 10, MasterID: 20, Status: domain.BookingPending}, nil)
	subs.On("ConsumeApplication", mock.Anything, int64(20)).Return(nil)
	repo.On("UpdateStatus", mock.Anything, int64(55), domain.BookingConfirmed).Return(nil)

	b, err := NewService(repo, new(MockListingReader), subs, nil, nil).
		SetStatus(context.Background(), 20, 55, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	subs.AssertExpectations(t)
}

func TestSetStatus_LimitBlocksConfirm(t *testing.T) {
	repo := new(MockBookingRepo)
	subs := new(MockConsumer)

	repo.On("GetByID", mock.Anything, int64(55)).
		Return(&domain.Booking{ID: 55, ClientID: 10, MasterID: 20, Status: domain.BookingPending}, nil)
	limitErr := assert.AnError
	subs.On("ConsumeApplication", mock.Anything, int64(20)).Return(limitErr)

	_, err := NewService(repo, new(MockListingReader), subs, nil, nil).
		SetStatus(context.Background(), 20, 55, domain.BookingConfirmed)
	assert.ErrorIs(t, err, limitErr)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetStatus_InvalidTransition(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).
		Return(&domain.Booking{ID: 55, ClientID: 10, MasterID: 20, Status: domain.BookingPending}, nil)

	_, err := NewService(repo, new(MockListingReader), nil, nil, nil).
		SetStatus(context.Background(), 20, 55, domain.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSetStatus_WrongMaster(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).
		Return(&domain.Booking{ID: 55, ClientID: 10, MasterID: 20, Status: domain.BookingPending}, nil)

	_, err := NewService(repo, new(MockListingReader), nil, nil, nil).
		SetStatus(context.Background(), 999, 55, domain.BookingConfirmed)
	assert.ErrorIs(t, err, ErrNotBookingMaster)
}

func TestCancel_RequiresReason(t *testing.T) {
	err := NewService(new(MockBookingRepo), new(MockListingReader), nil, nil, nil).
		Cancel(context.Background(), 10, 55, "")
	assert.ErrorIs(t, err, ErrCancelReasonNeeded)
}

func TestCancel_AfterStartRefused(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).
		Return(&domain.Booking{ID: 55, ClientID: 10, MasterID: 20, Status: domain.BookingInProgress}, nil)

	err := NewService(repo, new(MockListingReader), nil, nil, nil).
		Cancel(context.Background(), 10, 55, "cambio de planes")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmCompletion_Success(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).
		Return(&domain.Booking{ID: 55, ClientID: 10, MasterID: 20, Status: domain.BookingCompleted}, nil)
	repo.On("ConfirmCompletion", mock.Anything, int64(55), mock.Anything).Return(true, nil)

	require.NoError(t, NewService(repo, new(MockListingReader), nil, nil, nil).
		ConfirmCompletion(context.Background(), 10, 55))
}

func TestConfirmCompletion_NotCompleted(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).
		Return(&domain.Booking{ID: 55, ClientID: 10, MasterID: 20, Status: domain.BookingConfirmed}, nil)

	err := NewService(repo, new(MockListingReader), nil, nil, nil).
		ConfirmCompletion(context.Background(), 10, 55)
	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestConfirmCompletion_OnlyClient(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).
		Return(&domain.Booking{ID: 55, ClientID: 10, MasterID: 20, Status: domain.BookingCompleted}, nil)

	err := NewService(repo, new(MockListingReader), nil, nil, nil).
		ConfirmCompletion(context.Background(), 20, 55)
	assert.ErrorIs(t, err, ErrNotBookingClient)
}
