package auth

import "ofiz/internal/domain"

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	ReferralCode string `json:"referral_code"`

	// Master registration only.
	Category string `json:"category"`
	Headline string `json:"headline"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
