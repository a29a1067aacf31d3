package scheduling

import (
	"time"

	"slotwise/models"
)

// cancellationFee computes the fee owed for cancelling at the given moment.
//
// The tiers overlap, so precedence is explicit: the tightest window wins.
// Inside FullFeeWithin (default 2h) the full price is charged; inside
// HalfFeeWithin (default 24h) half; otherwise the per-service policy
// deadline is consulted and a late cancellation inside it also charges
// half. All windows are half-open — cancelling at exactly 2h0m0s before
// start is not "<2h" and lands in the 50% tier.
func (s *DefaultService) cancellationFee(booking models.Booking, policy models.CancellationPolicy, at time.Time) float64 {
	remaining := booking.StartTime.Sub(at)

	switch {
	case remaining < s.settings.FullFeeWithin:
		return booking.Price
	case remaining < s.settings.HalfFeeWithin:
		return booking.Price * 0.5
	case policy.DeadlineHours > 0 && remaining < time.Duration(policy.DeadlineHours)*time.Hour:
		return booking.Price * 0.5
	default:
		return 0
	}
}
