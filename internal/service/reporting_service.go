package service

import (
	"context"
	"time"

	"subscription-billing/internal/core/ports"
	"subscription-billing/pkg/apperror"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	payRepo ports.PaymentRepository
	subRepo ports.SubscriptionRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(payRepo ports.PaymentRepository, subRepo ports.SubscriptionRepository) ports.ReportingService {
	return &reportingService{payRepo: payRepo, subRepo: subRepo}
}

// GetBillingStats returns aggregated charge and subscription stats.
func (s *reportingService) GetBillingStats(ctx context.Context, period string) (*ports.BillingStats, error) {
	var from *time.Time

	switch period {
	case "day":
		t := time.Now().AddDate(0, 0, -1)
		from = &t
	case "week":
		t := time.Now().AddDate(0, 0, -7)
		from = &t
	case "month":
		t := time.Now().AddDate(0, -1, 0)
		from = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	payments, err := s.payRepo.GetStats(ctx, from)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	counts, err := s.subRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return &ports.BillingStats{
		Payments:      *payments,
		Subscriptions: counts,
	}, nil
}
