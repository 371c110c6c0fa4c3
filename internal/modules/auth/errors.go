package auth

import "errors"

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrWeakPassword        = errors.New("password must be at least 8 characters")
	ErrUnknownReferralCode = errors.New("unknown referral code")
)
