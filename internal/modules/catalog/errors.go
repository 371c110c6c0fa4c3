package catalog

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrNotListingOwner  = errors.New("only the listing's owner can do this")
	ErrMasterNotAllowed = errors.New("only verified professionals can publish listings")
	ErrInvalidPrice     = errors.New("price must be positive")
)
