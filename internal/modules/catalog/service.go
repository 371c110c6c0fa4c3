package catalog

import (
	"context"
	"errors"

	"ofiz/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	listings listingRepo
	users    userReader
	loggerf  func(format string, args ...interface{})
}

func NewService(listings listingRepo, users userReader, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{listings: listings, users: users, loggerf: loggerf}
}

// Create publishes a listing. Only verified masters can publish.
func (s *Service) Create(ctx context.Context, masterID int64, req CreateListingRequest) (*domain.Listing, error) {
	if req.PriceBase <= 0 {
		return nil, ErrInvalidPrice
	}

	u, err := s.users.GetByID(ctx, masterID)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleMaster || u.MasterStatus != domain.MasterVerified {
		return nil, ErrMasterNotAllowed
	}

	l := &domain.Listing{
		MasterID:    masterID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		PriceBase:   req.PriceBase,
		City:        req.City,
		Active:      true,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=listing published listing_id=%d master_id=%d category=%s", l.ID, masterID, req.Category)
	return l, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) Update(ctx context.Context, masterID, id int64, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.MasterID != masterID {
		return nil, ErrNotListingOwner
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Category != nil {
		l.Category = *req.Category
	}
	if req.PriceBase != nil {
		if *req.PriceBase <= 0 {
			return nil, ErrInvalidPrice
		}
		l.PriceBase = *req.PriceBase
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.Active != nil {
		l.Active = *req.Active
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Listing, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.listings.List(ctx, q.Category, q.City, limit, q.Offset)
}

func (s *Service) MyListings(ctx context.Context, masterID int64) ([]domain.Listing, error) {
	return s.listings.ListByMaster(ctx, masterID)
}
