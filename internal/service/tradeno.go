package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Merchant trade number layout. The gateway caps the field at 20 characters:
// 3-char prefix + 9 rightmost digits of a nanosecond timestamp + 8-char
// owner slice.
const (
	tradeNoMaxLen      = 20
	tradeNoTimeDigits  = 9
	tradeNoOwnerDigits = 8
)

// NewTradeNo derives a gateway-safe idempotency key for one logical charge
// attempt. The timestamp digits separate attempts, the owner slice separates
// owners charged in the same instant. Generated once per attempt; reused on
// retry only when the prior outcome is unknown.
func NewTradeNo(prefix string, ownerID uuid.UUID, now time.Time) string {
	if len(prefix) > tradeNoMaxLen-tradeNoTimeDigits-tradeNoOwnerDigits {
		prefix = prefix[:tradeNoMaxLen-tradeNoTimeDigits-tradeNoOwnerDigits]
	}

	ts := strconv.FormatInt(now.UnixNano(), 10)
	if len(ts) > tradeNoTimeDigits {
		ts = ts[len(ts)-tradeNoTimeDigits:]
	}

	return prefix + ts + ownerSlice(ownerID)
}

// NewMemberRef derives the member id sent to the gateway when binding a
// payment method. Unique per binding attempt; the callback echoes it back and
// it becomes the stored Authorization.MemberRef.
func NewMemberRef(ownerID uuid.UUID, now time.Time) string {
	return "M" + now.Format("060102150405") + ownerSlice(ownerID)
}

// ownerSlice returns a fixed-width, alphanumeric-only slice of the owner id,
// zero-padded on the left.
func ownerSlice(ownerID uuid.UUID) string {
	var b strings.Builder
	for _, r := range ownerID.String() {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	s := strings.ToUpper(b.String())
	if len(s) > tradeNoOwnerDigits {
		s = s[len(s)-tradeNoOwnerDigits:]
	}
	for len(s) < tradeNoOwnerDigits {
		s = "0" + s
	}
	return s
}
