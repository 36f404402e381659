package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AckOK is the acknowledgement body the gateway expects. Anything else makes
// it redeliver, so every handled request acks with this regardless of outcome.
const AckOK = "1|OK"

const processDateLayout = "2006/01/02 15:04:05"

// WebhookServiceImpl implements ports.WebhookProcessor. Every inbound call is
// persisted before any processing; the (event_type, external_ref) unique key
// in the database is the dedup source of truth, with Redis as a fast path.
type WebhookServiceImpl struct {
	codec      ports.SignatureCodec
	ledger     ports.Ledger
	eventRepo  ports.WebhookEventRepository
	dedupStore ports.WebhookDedupStore

	retryBackoff time.Duration
	dedupTTL     time.Duration

	log zerolog.Logger
}

// NewWebhookService creates a new WebhookServiceImpl.
func NewWebhookService(
	codec ports.SignatureCodec,
	ledger ports.Ledger,
	eventRepo ports.WebhookEventRepository,
	dedupStore ports.WebhookDedupStore,
	retryBackoff, dedupTTL time.Duration,
	log zerolog.Logger,
) *WebhookServiceImpl {
	return &WebhookServiceImpl{
		codec:        codec,
		ledger:       ledger,
		eventRepo:    eventRepo,
		dedupStore:   dedupStore,
		retryBackoff: retryBackoff,
		dedupTTL:     dedupTTL,
		log:          log,
	}
}

// Process handles one inbound gateway callback. The returned ack is always
// sent with HTTP 200; a non-nil error is internal and never reaches the
// gateway as a status code.
func (s *WebhookServiceImpl) Process(ctx context.Context, in ports.InboundWebhook) (string, error) {
	externalRef := externalRef(in.Fields)
	if externalRef == "" {
		return AckOK, apperror.Validation("callback carries no trade reference")
	}

	// Redis fast path. A store error falls through to the database check.
	if settled, err := s.dedupStore.IsSettled(ctx, in.EventType, externalRef); err != nil {
		s.log.Warn().Err(err).Msg("dedup store unavailable, falling back to database")
	} else if settled {
		s.log.Debug().
			Str("event_type", in.EventType).
			Str("external_ref", externalRef).
			Msg("duplicate delivery dropped via dedup store")
		return AckOK, nil
	}

	// Persist before any processing, committing independently, so the audit
	// trail survives a crash in later steps.
	now := time.Now().UTC()
	event, duplicate, err := s.eventRepo.Insert(ctx, &domain.WebhookEvent{
		ID:            uuid.New(),
		EventType:     in.EventType,
		ExternalRef:   externalRef,
		RawHeaders:    in.RawHeaders,
		RawBody:       in.RawBody,
		SourceIP:      in.SourceIP,
		Processing:    domain.WebhookProcessingReceived,
		DeliveryCount: 1,
		ReceivedAt:    now,
		UpdatedAt:     now,
	})
	if err != nil {
		return AckOK, apperror.InternalError(fmt.Errorf("persist webhook event: %w", err))
	}
	if duplicate && event.IsSettled() {
		s.markSettled(ctx, event)
		return AckOK, nil
	}

	return AckOK, s.dispatch(ctx, event, in.Fields)
}

// Reprocess re-runs a previously failed event from its stored raw body.
// Called by the scheduler's retry sweep.
func (s *WebhookServiceImpl) Reprocess(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load webhook event: %w", err))
	}
	if event == nil {
		return apperror.ErrNotFound("webhook event")
	}
	if event.IsSettled() {
		return nil
	}

	values, err := url.ParseQuery(event.RawBody)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("parse stored webhook body: %w", err))
	}
	fields := make(map[string]string, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}

	event.RetryCount++
	return s.dispatch(ctx, event, fields)
}

// dispatch verifies the signature and routes the event to the matching ledger
// transition, then records the final processing status and linked ids.
func (s *WebhookServiceImpl) dispatch(ctx context.Context, event *domain.WebhookEvent, fields map[string]string) error {
	if !s.codec.Verify(fields) {
		// Flagged for manual review; never retried automatically.
		event.SignatureValid = false
		s.fail(ctx, event, "signature verification failed", false)
		s.log.Error().
			Str("event_type", event.EventType).
			Str("external_ref", event.ExternalRef).
			Str("source_ip", event.SourceIP).
			Msg("webhook signature invalid")
		return apperror.ErrSignatureInvalid()
	}

	event.SignatureValid = true
	event.Processing = domain.WebhookProcessingProcessing
	if rtn, ok := fields["RtnCode"]; ok {
		event.ParsedStatus = &rtn
	}
	event.UpdatedAt = time.Now().UTC()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return apperror.InternalError(fmt.Errorf("mark webhook processing: %w", err))
	}

	result, err := s.route(ctx, event, fields)
	if err != nil {
		// Conflicts are deliveries the ledger can no longer accept; dropping
		// them is the correct terminal outcome, not a retryable failure.
		if apperror.IsCode(err, "SUB_002") || apperror.IsCode(err, "SUB_001") {
			s.log.Warn().Err(err).
				Str("event_type", event.EventType).
				Str("external_ref", event.ExternalRef).
				Msg("webhook dropped by ledger")
			s.settle(ctx, event, nil)
			return nil
		}
		s.fail(ctx, event, err.Error(), true)
		return err
	}

	s.settle(ctx, event, result)
	return nil
}

// route maps an event to the ledger transition it triggers.
func (s *WebhookServiceImpl) route(ctx context.Context, event *domain.WebhookEvent, fields map[string]string) (*ports.LedgerResult, error) {
	rtnCode := fields["RtnCode"]
	occurredAt := parseProcessDate(fields["process_date"])

	switch event.EventType {
	case domain.EventTypeAuthorization:
		if rtnCode != rtnCodeSuccess {
			// A failed binding never created anything to transition. Settle the
			// event; the user simply retries the authorize flow.
			s.log.Warn().
				Str("external_ref", event.ExternalRef).
				Str("rtn_code", rtnCode).
				Msg("card binding rejected by gateway")
			return nil, nil
		}
		ownerID, err := uuid.Parse(fields["CustomField1"])
		if err != nil {
			return nil, apperror.Validation("callback carries no owner reference")
		}
		return s.ledger.RecordAuthorizationSuccess(ctx, ports.AuthorizationEvent{
			OwnerID:        ownerID,
			MemberRef:      fields["MerchantMemberID"],
			GatewayAuthRef: fields["gwsr"],
			CardBrand:      cardBrand(fields["card6no"]),
			CardLast4:      fields["card4no"],
			PlanID:         fields["CustomField2"],
			TradeNo:        fields["MerchantTradeNo"],
			GatewayTradeNo: fields["gwsr"],
			Amount:         parseAmount(fields),
			OccurredAt:     occurredAt,
		})

	case domain.EventTypeCharge:
		ev := ports.ChargeEvent{
			MemberRef:      fields["MerchantMemberID"],
			TradeNo:        fields["MerchantTradeNo"],
			GatewayTradeNo: fields["gwsr"],
			Amount:         parseAmount(fields),
			OccurredAt:     occurredAt,
		}
		if rtnCode == rtnCodeSuccess {
			return s.ledger.RecordChargeSuccess(ctx, ev)
		}
		ev.Reason = declineReason(rtnCode)
		return s.ledger.RecordChargeFailure(ctx, ev)

	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown event type %q", event.EventType))
	}
}

// settle marks the event succeeded, links the touched records, and primes the
// dedup fast path.
func (s *WebhookServiceImpl) settle(ctx context.Context, event *domain.WebhookEvent, result *ports.LedgerResult) {
	event.Processing = domain.WebhookProcessingSucceeded
	event.LastError = nil
	event.NextRetryAt = nil
	if result != nil {
		if result.Subscription != nil {
			event.SubscriptionID = &result.Subscription.ID
		}
		if result.Payment != nil {
			event.PaymentID = &result.Payment.ID
		}
		if result.Authorization != nil {
			event.AuthorizationID = &result.Authorization.ID
		}
	}
	event.UpdatedAt = time.Now().UTC()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		s.log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to settle webhook event")
		return
	}
	s.markSettled(ctx, event)
}

// fail marks the event failed; retryable failures get picked up by the
// scheduler's retry sweep.
func (s *WebhookServiceImpl) fail(ctx context.Context, event *domain.WebhookEvent, detail string, retryable bool) {
	event.Processing = domain.WebhookProcessingFailed
	event.LastError = &detail
	if retryable {
		shift := event.RetryCount
		if shift > 5 {
			shift = 5
		}
		next := time.Now().UTC().Add(s.retryBackoff << shift)
		event.NextRetryAt = &next
	} else {
		event.NextRetryAt = nil
	}
	event.UpdatedAt = time.Now().UTC()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		s.log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to record webhook failure")
	}
}

// markSettled primes the Redis dedup fast path, best-effort.
func (s *WebhookServiceImpl) markSettled(ctx context.Context, event *domain.WebhookEvent) {
	if err := s.dedupStore.MarkSettled(ctx, event.EventType, event.ExternalRef, s.dedupTTL); err != nil {
		s.log.Warn().Err(err).Msg("failed to prime dedup store")
	}
}

// externalRef picks the gateway's transaction reference out of the callback.
// Recurring charge callbacks carry gwsr; the binding callback additionally
// carries the merchant trade number of the first charge.
func externalRef(fields map[string]string) string {
	if ref := strings.TrimSpace(fields["gwsr"]); ref != "" {
		return ref
	}
	return strings.TrimSpace(fields["MerchantTradeNo"])
}

// parseAmount reads the charged amount in minor units. Recurring callbacks
// carry "amount", the binding callback "TotalAmount".
func parseAmount(fields map[string]string) int64 {
	for _, key := range []string{"amount", "TotalAmount"} {
		if v := fields[key]; v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// parseProcessDate parses the gateway's local timestamp, falling back to now.
func parseProcessDate(v string) time.Time {
	if t, err := time.Parse(processDateLayout, v); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}

// cardBrand maps a card BIN prefix to a display brand.
func cardBrand(card6no string) string {
	switch {
	case strings.HasPrefix(card6no, "4"):
		return "VISA"
	case strings.HasPrefix(card6no, "5"):
		return "MasterCard"
	case strings.HasPrefix(card6no, "35"):
		return "JCB"
	case strings.HasPrefix(card6no, "3"):
		return "AMEX"
	default:
		return "UNKNOWN"
	}
}
