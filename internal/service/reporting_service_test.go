package service

import (
	"context"
	"testing"

	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportingService_GetBillingStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payRepo := mocks.NewMockPaymentRepository(ctrl)
	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	svc := NewReportingService(payRepo, subRepo)
	ctx := context.Background()

	payRepo.EXPECT().GetStats(ctx, gomock.Any()).Return(&ports.PaymentStats{
		TotalAttempts: 120,
		Successful:    110,
		Failed:        10,
		Revenue:       108900,
	}, nil)
	subRepo.EXPECT().CountByStatus(ctx).Return(map[domain.SubscriptionStatus]int64{
		domain.SubscriptionStatusActive:    95,
		domain.SubscriptionStatusPastDue:   4,
		domain.SubscriptionStatusCancelled: 12,
	}, nil)

	stats, err := svc.GetBillingStats(ctx, "month")
	require.NoError(t, err)
	assert.Equal(t, int64(110), stats.Payments.Successful)
	assert.Equal(t, int64(108900), stats.Payments.Revenue)
	assert.Equal(t, int64(95), stats.Subscriptions[domain.SubscriptionStatusActive])
}

func TestReportingService_GetBillingStats_AllTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payRepo := mocks.NewMockPaymentRepository(ctrl)
	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	svc := NewReportingService(payRepo, subRepo)
	ctx := context.Background()

	// "all" means no time filter
	payRepo.EXPECT().GetStats(ctx, nil).Return(&ports.PaymentStats{}, nil)
	subRepo.EXPECT().CountByStatus(ctx).Return(nil, nil)

	_, err := svc.GetBillingStats(ctx, "all")
	require.NoError(t, err)
}

func TestReportingService_GetBillingStats_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewReportingService(mocks.NewMockPaymentRepository(ctrl), mocks.NewMockSubscriptionRepository(ctrl))

	_, err := svc.GetBillingStats(context.Background(), "fortnight")
	require.Error(t, err)
}
