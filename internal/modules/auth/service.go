package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"ofiz/internal/domain"
	"ofiz/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type Service struct {
	users   userRepo
	jwt     jwtService
	credits creditGranter
	loggerf func(format string, args ...interface{})
}

func NewService(users userRepo, jwt jwtService, credits creditGranter, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{users: users, jwt: jwt, credits: credits, loggerf: loggerf}
}

func (s *Service) RegisterClient(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return s.register(ctx, req, domain.RoleClient)
}

// RegisterMaster creates the account plus its professional profile. The
// account stays pending until an admin verifies it.
func (s *Service) RegisterMaster(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := s.register(ctx, req, domain.RoleMaster)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateMasterProfile(ctx, &domain.MasterProfile{
		UserID:   resp.User.ID,
		Category: req.Category,
		Headline: req.Headline,
	}); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) RegisterBusiness(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return s.register(ctx, req, domain.RoleBusiness)
}

func (s *Service) register(ctx context.Context, req RegisterRequest, role domain.UserRole) (*AuthResponse, error) {
	if len(req.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	var referrer *domain.User
	if req.ReferralCode != "" {
		var err error
		referrer, err = s.users.GetByReferralCode(ctx, strings.ToUpper(strings.TrimSpace(req.ReferralCode)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownReferralCode
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		Name:         req.Name,
		Phone:        req.Phone,
		City:         req.City,
		ReferralCode: newReferralCode(),
	}
	if role == domain.RoleMaster {
		u.MasterStatus = domain.MasterPending
	}
	if referrer != nil {
		u.ReferredBy = &referrer.ID
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.loggerf("level=info msg=user registered user_id=%d role=%s", u.ID, role)

	if referrer != nil && s.credits != nil {
		if err := s.credits.GrantReferralReward(ctx, referrer.ID, u.ID); err != nil {
			s.loggerf("level=error msg=referral reward grant failed referrer_id=%d referred_id=%d err=%v", referrer.ID, u.ID, err)
		}
	}

	token, err := s.jwt.GenerateToken(u.ID, string(role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// newReferralCode returns an 8-char uppercase hex code. Collisions are
// caught by the unique index on users.referral_code.
func newReferralCode() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return strings.ToUpper(hex.EncodeToString(b[:]))
}
