package catalog

import (
	"context"
	"testing"

	"ofiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	if l != nil {
		l.ID = 3
	}
	return args.Error(0)
}

func (m *MockListingRepo) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepo) List(ctx context.Context, category, city string, limit, offset int) ([]domain.Listing, error) {
	args := m.Called(ctx, category, city, limit, offset)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepo) ListByMaster(ctx context.Context, masterID int64) ([]domain.Listing, error) {
	args := m.Called(ctx, masterID)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func verifiedMaster() *domain.User {
	return &domain.User{ID: 20, Role: domain.RoleMaster, MasterStatus: domain.MasterVerified}
}

func TestCreate_VerifiedMaster(t *testing.T) {
	repo := new(MockListingRepo)
	users := new(MockUserReader)

	users.On("GetByID", mock.Anything, int64(20)).Return(verifiedMaster(), nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.MasterID == 20 && l.Active && l.PriceBase == 1500
	})).Return(nil)

	l, err := NewService(repo, users, nil).Create(context.Background(), 20, CreateListingRequest{
		Title: "Plomería", Category: "plomeria", PriceBase: 1500,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, l.ID)
}

func TestCreate_PendingMasterRefused(t *testing.T) {
	users := new(MockUserReader)
	u := verifiedMaster()
	u.MasterStatus = domain.MasterPending
	users.On("GetByID", mock.Anything, int64(20)).Return(u, nil)

	_, err := NewService(new(MockListingRepo), users, nil).Create(context.Background(), 20, CreateListingRequest{
		Title: "Plomería", Category: "plomeria", PriceBase: 1500,
	})
	assert.ErrorIs(t, err, ErrMasterNotAllowed)
}

func TestCreate_ClientRefused(t *testing.T) {
	users := new(MockUserReader)
	users.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10, Role: domain.RoleClient}, nil)

	_, err := NewService(new(MockListingRepo), users, nil).Create(context.Background(), 10, CreateListingRequest{
		Title: "Plomería", Category: "plomeria", PriceBase: 1500,
	})
	assert.ErrorIs(t, err, ErrMasterNotAllowed)
}

func TestUpdate_OnlyOwner(t *testing.T) {
	repo := new(MockListingRepo)
	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Listing{ID: 3, MasterID: 20, PriceBase: 1500}, nil)

	_, err := NewService(repo, new(MockUserReader), nil).Update(context.Background(), 99, 3, UpdateListingRequest{})
	assert.ErrorIs(t, err, ErrNotListingOwner)
}

func TestUpdate_PatchesFields(t *testing.T) {
	repo := new(MockListingRepo)
	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Listing{ID: 3, MasterID: 20, Title: "Old", PriceBase: 1500, Active: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Title == "New" && l.PriceBase == 1800 && !l.Active
	})).Return(nil)

	title := "New"
	price := 1800.0
	active := false
	l, err := NewService(repo, new(MockUserReader), nil).Update(context.Background(), 20, 3, UpdateListingRequest{
		Title: &title, PriceBase: &price, Active: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", l.Title)
}
