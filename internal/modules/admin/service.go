package admin

import (
	"context"
	"errors"

	"ofiz/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	users    userRepo
	payments paymentLister
	loggerf  func(format string, args ...interface{})
}

func NewService(users userRepo, payments paymentLister, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{users: users, payments: payments, loggerf: loggerf}
}

func (s *Service) ListPendingMasters(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.users.ListMastersByStatus(ctx, domain.MasterPending, limit, offset)
}

// VerifyMaster approves a pending professional account.
func (s *Service) VerifyMaster(ctx context.Context, adminID, masterID int64) error {
	if err := s.users.SetMasterStatus(ctx, masterID, adminID, domain.MasterVerified, ""); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMasterNotFound
		}
		return err
	}
	s.loggerf("level=info msg=master verified master_id=%d admin_id=%d", masterID, adminID)
	return nil
}

// RejectMaster declines a professional account with a reason the applicant
// sees.
func (s *Service) RejectMaster(ctx context.Context, adminID, masterID int64, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if err := s.users.SetMasterStatus(ctx, masterID, adminID, domain.MasterRejected, reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMasterNotFound
		}
		return err
	}
	s.loggerf("level=info msg=master rejected master_id=%d admin_id=%d", masterID, adminID)
	return nil
}

var paymentStatuses = map[string]domain.PaymentStatus{
	"":         "",
	"pending":  domain.PaymentPending,
	"approved": domain.PaymentApproved,
	"released": domain.PaymentReleased,
	"rejected": domain.PaymentRejected,
	"failed":   domain.PaymentFailed,
}

func (s *Service) ListPayments(ctx context.Context, q PaymentsQuery) ([]domain.Payment, error) {
	status, ok := paymentStatuses[q.Status]
	if !ok {
		return nil, ErrInvalidStatus
	}
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.payments.List(ctx, status, limit, q.Offset)
}
