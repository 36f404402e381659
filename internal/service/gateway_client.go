package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"subscription-billing/config"
	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/pkg/apperror"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gateway response codes. RtnCode "1" is the only success value.
const rtnCodeSuccess = "1"

// declineReasons maps known gateway decline codes to coarse reason codes.
// Raw gateway text never leaves the core.
var declineReasons = map[string]string{
	"10100058": domain.ReasonCardExpired,
	"10100251": domain.ReasonCardExpired,
}

// GatewayClientImpl implements ports.GatewayClient against the gateway's
// form-POST protocol.
type GatewayClientImpl struct {
	cfg        config.GatewayConfig
	codec      ports.SignatureCodec
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewGatewayClient creates a gateway client bound to one merchant config.
func NewGatewayClient(cfg config.GatewayConfig, codec ports.SignatureCodec, httpClient HTTPClient, log zerolog.Logger) *GatewayClientImpl {
	return &GatewayClientImpl{
		cfg:        cfg,
		codec:      codec,
		httpClient: httpClient,
		log:        log,
	}
}

// BuildAuthorizeForm assembles the signed redirect form for a payment-method
// binding plus first charge. The owner's browser posts it to the gateway.
func (g *GatewayClientImpl) BuildAuthorizeForm(req ports.AuthorizeRequest) (*ports.AuthorizeForm, error) {
	if !req.Plan.Cycle.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("invalid billing cycle %q", req.Plan.Cycle))
	}

	now := time.Now()
	tradeNo := NewTradeNo(g.cfg.TradePrefix, req.OwnerID, now)

	fields := map[string]string{
		"MerchantID":        g.cfg.MerchantID,
		"MerchantMemberID":  req.MemberRef,
		"MerchantTradeNo":   tradeNo,
		"MerchantTradeDate": now.Format("2006/01/02 15:04:05"),
		"PaymentType":       "aio",
		"ChoosePayment":     "Credit",
		"TotalAmount":       strconv.FormatInt(req.Plan.Amount, 10),
		"TradeDesc":         req.Plan.Name,
		"ItemName":          req.Plan.Name,
		"PeriodType":        req.Plan.Cycle.PeriodType(),
		"Frequency":         "1",
		"PeriodAmount":      strconv.FormatInt(req.Plan.Amount, 10),
		"ExecTimes":         strconv.Itoa(req.ExecLimit),
		"ReturnURL":         g.cfg.CallbackURL + "/webhooks/" + domain.EventTypeAuthorization,
		"PeriodReturnURL":   g.cfg.CallbackURL + "/webhooks/" + domain.EventTypeCharge,
		"OrderResultURL":    g.cfg.ReturnURL,
		"EncryptType":       "1",
		// Echoed back verbatim in the callback; the webhook processor resolves
		// the owner and plan from these.
		"CustomField1": req.OwnerID.String(),
		"CustomField2": req.Plan.ID,
	}
	fields[MacValueField] = g.codec.Sign(fields)

	return &ports.AuthorizeForm{
		Action:  g.cfg.AuthorizeURL,
		Method:  http.MethodPost,
		Fields:  fields,
		TradeNo: tradeNo,
	}, nil
}

// Charge issues a recurring charge against an existing authorization and
// parses the synchronous acknowledgement. The asynchronous webhook remains
// the authoritative outcome.
func (g *GatewayClientImpl) Charge(ctx context.Context, req ports.ChargeRequest) (*ports.ChargeResult, error) {
	fields := map[string]string{
		"MerchantID":       g.cfg.MerchantID,
		"MerchantMemberID": req.MemberRef,
		"MerchantTradeNo":  req.TradeNo,
		"TotalAmount":      strconv.FormatInt(req.Amount, 10),
	}

	resp, err := g.postForm(ctx, g.cfg.ChargeURL, fields)
	if err != nil {
		return nil, err
	}

	result := &ports.ChargeResult{
		ResponseCode:   resp["RtnCode"],
		GatewayTradeNo: resp["TradeNo"],
	}
	if resp["RtnCode"] == rtnCodeSuccess {
		result.Success = true
		return result, nil
	}

	result.Reason = declineReason(resp["RtnCode"])
	g.log.Warn().
		Str("trade_no", req.TradeNo).
		Str("rtn_code", resp["RtnCode"]).
		Str("rtn_msg", resp["RtnMsg"]).
		Msg("gateway declined charge")
	return result, nil
}

// Refund reverses a captured charge. Amount must already be prorated via
// ProrateRefund.
func (g *GatewayClientImpl) Refund(ctx context.Context, req ports.RefundRequest) (*ports.RefundResult, error) {
	fields := map[string]string{
		"MerchantID":      g.cfg.MerchantID,
		"MerchantTradeNo": req.TradeNo,
		"TradeNo":         req.GatewayTradeNo,
		"Action":          "R",
		"TotalAmount":     strconv.FormatInt(req.Amount, 10),
	}

	resp, err := g.postForm(ctx, g.cfg.RefundURL, fields)
	if err != nil {
		return nil, err
	}

	result := &ports.RefundResult{ResponseCode: resp["RtnCode"]}
	if resp["RtnCode"] == rtnCodeSuccess {
		result.Success = true
		result.RefundedAmount = req.Amount
	} else {
		g.log.Warn().
			Str("gateway_trade_no", req.GatewayTradeNo).
			Str("rtn_code", resp["RtnCode"]).
			Str("rtn_msg", resp["RtnMsg"]).
			Msg("gateway declined refund")
	}
	return result, nil
}

// postForm signs fields, submits the form POST, and parses the form-encoded
// acknowledgement. Network errors and 5xx map to GW_002 (ambiguous, retryable);
// 4xx maps to GW_001 (configuration error, fatal).
func (g *GatewayClientImpl) postForm(ctx context.Context, endpoint string, fields map[string]string) (map[string]string, error) {
	fields[MacValueField] = g.codec.Sign(fields)

	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build gateway request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		// Timeouts are ambiguous: neither success nor failure. The caller must
		// not transition the ledger; only an explicit response or the webhook may.
		return nil, apperror.ErrGatewayUnavailable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, apperror.ErrGatewayUnavailable(fmt.Errorf("gateway returned %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return nil, apperror.ErrGatewayRejected(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(fmt.Errorf("parse gateway ack: %w", err))
	}

	parsed := make(map[string]string, len(values))
	for k := range values {
		parsed[k] = values.Get(k)
	}

	if !g.codec.Verify(parsed) {
		return nil, apperror.ErrSignatureInvalid()
	}
	return parsed, nil
}

// declineReason maps a gateway decline code to a coarse user-visible reason.
func declineReason(rtnCode string) string {
	if reason, ok := declineReasons[rtnCode]; ok {
		return reason
	}
	return domain.ReasonPaymentFailed
}

// ProrateRefund computes the refundable amount for an interrupted period:
// amount * max(0, remainingDays) / totalDays, floored to the minor unit.
func ProrateRefund(amount int64, totalDays, remainingDays int) int64 {
	if totalDays <= 0 || remainingDays <= 0 {
		return 0
	}
	if remainingDays > totalDays {
		remainingDays = totalDays
	}
	return amount * int64(remainingDays) / int64(totalDays)
}
