package subscription

import "errors"

var (
	ErrPlanNotFound       = errors.New("subscription plan not found")
	ErrPlanNotForRole     = errors.New("plan is not available for this account type")
	ErrNoActiveSub        = errors.New("no active subscription")
	ErrApplicationLimit   = errors.New("application limit reached for the current plan")
	ErrContactLimit       = errors.New("contact limit reached for the current plan")
	ErrCardTokenRequired  = errors.New("card token is required")
	ErrPaymentNotApproved = errors.New("payment was not approved")
)

// LimitError carries the usage numbers alongside the sentinel so handlers
// can tell the caller how far over they are.
type LimitError struct {
	Err   error
	Used  int
	Limit int
	Plan  string
}

func (e *LimitError) Error() string { return e.Err.Error() }
func (e *LimitError) Unwrap() error { return e.Err }
