package admin

import "errors"

var (
	ErrMasterNotFound = errors.New("master account not found")
	ErrReasonRequired = errors.New("a rejection reason is required")
	ErrInvalidStatus  = errors.New("invalid payment status filter")
)
