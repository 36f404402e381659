package handler

import (
	"time"

	"subscription-billing/internal/adapter/http/dto"
	"subscription-billing/internal/adapter/http/middleware"
	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/internal/service"
	"subscription-billing/pkg/apperror"
	"subscription-billing/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SubscriptionHandler handles subscription lifecycle endpoints.
type SubscriptionHandler struct {
	ledger  ports.Ledger
	gateway ports.GatewayClient
	payRepo ports.PaymentRepository
	catalog *domain.PlanCatalog
	log     zerolog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(ledger ports.Ledger, gateway ports.GatewayClient, payRepo ports.PaymentRepository, catalog *domain.PlanCatalog, log zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		ledger:  ledger,
		gateway: gateway,
		payRepo: payRepo,
		catalog: catalog,
		log:     log,
	}
}

// Subscribe handles POST /api/v1/subscriptions. It returns the signed gateway
// form; the subscription itself is created when the authorization callback
// arrives.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	plan, found := h.catalog.Lookup(req.PlanID)
	if !found {
		response.Error(c, apperror.ErrUnknownPlan(req.PlanID))
		return
	}

	existing, err := h.ledger.CurrentSubscription(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if existing != nil {
		response.Error(c, apperror.ErrSubscriptionExists())
		return
	}

	form, err := h.gateway.BuildAuthorizeForm(ports.AuthorizeRequest{
		OwnerID:   ownerID,
		MemberRef: service.NewMemberRef(ownerID, time.Now()),
		Plan:      plan,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.AuthorizeFormResponse{
		Action:  form.Action,
		Method:  form.Method,
		Fields:  form.Fields,
		TradeNo: form.TradeNo,
	})
}

// GetCurrent handles GET /api/v1/subscriptions/current.
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	sub, err := h.ledger.CurrentSubscription(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if sub == nil {
		response.Error(c, apperror.ErrNotFound("subscription"))
		return
	}

	response.OK(c, dto.ToSubscriptionResponse(sub))
}

// Cancel handles POST /api/v1/subscriptions/cancel. Immediate cancellation
// attempts a prorated refund of the unused period; the refund is best-effort
// and never blocks the cancellation itself.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if !req.AtPeriodEnd {
		h.refundUnusedPeriod(c, ownerID)
	}

	if err := h.ledger.Cancel(c.Request.Context(), ownerID, req.AtPeriodEnd); err != nil {
		response.Error(c, err)
		return
	}

	sub, err := h.ledger.CurrentSubscription(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if sub == nil {
		response.OK(c, gin.H{"status": string(domain.SubscriptionStatusCancelled)})
		return
	}
	response.OK(c, dto.ToSubscriptionResponse(sub))
}

// Downgrade handles POST /api/v1/subscriptions/downgrade.
func (h *SubscriptionHandler) Downgrade(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.DowngradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.ledger.Downgrade(c.Request.Context(), ownerID, req.PlanID, req.AtPeriodEnd); err != nil {
		response.Error(c, err)
		return
	}

	sub, err := h.ledger.CurrentSubscription(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if sub == nil {
		response.Error(c, apperror.ErrNotFound("subscription"))
		return
	}
	response.OK(c, dto.ToSubscriptionResponse(sub))
}

// refundUnusedPeriod refunds the prorated remainder of the current period.
// Failures are logged only; the gateway's refund endpoint being down must not
// keep an owner subscribed.
func (h *SubscriptionHandler) refundUnusedPeriod(c *gin.Context, ownerID uuid.UUID) {
	ctx := c.Request.Context()

	sub, err := h.ledger.CurrentSubscription(ctx, ownerID)
	if err != nil || sub == nil || sub.Status != domain.SubscriptionStatusActive {
		return
	}

	payment, err := h.payRepo.GetLastSuccessBySubscription(ctx, sub.ID)
	if err != nil || payment == nil || payment.GatewayTradeNo == nil {
		return
	}

	now := time.Now().UTC()
	totalDays := int(sub.CurrentPeriodEnd.Sub(sub.CurrentPeriodStart).Hours() / 24)
	remainingDays := int(sub.CurrentPeriodEnd.Sub(now).Hours() / 24)
	amount := service.ProrateRefund(payment.Amount, totalDays, remainingDays)
	if amount <= 0 {
		return
	}

	result, err := h.gateway.Refund(ctx, ports.RefundRequest{
		GatewayTradeNo: *payment.GatewayTradeNo,
		TradeNo:        payment.TradeNo,
		Amount:         amount,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("subscription_id", sub.ID.String()).Msg("prorated refund failed")
		return
	}
	if !result.Success {
		h.log.Warn().
			Str("subscription_id", sub.ID.String()).
			Str("rtn_code", result.ResponseCode).
			Msg("gateway declined prorated refund")
		return
	}

	h.log.Info().
		Str("subscription_id", sub.ID.String()).
		Int64("amount", result.RefundedAmount).
		Msg("prorated refund issued")
}
