// Package inventory derives sale-eligibility status for stocked batches and
// serves the stock alert feeds.
package inventory

import (
	"time"

	"github.com/cisystem/cisystem/internal/dates"
)

// Status is the sale-eligibility verdict for a batch.
type Status string

const (
	StatusOutOfStock  Status = "OUT_OF_STOCK"
	StatusExpired     Status = "EXPIRED"
	StatusNearExpiry  Status = "NEAR_EXPIRY"
	StatusSellAllowed Status = "SELL_ALLOWED"
)

// NearExpiryMonths is the look-ahead window for the near-expiry verdict.
const NearExpiryMonths = 3

// Classify derives the status for a batch. Quantity is checked before expiry,
// so a depleted expired batch reports OUT_OF_STOCK. An unparsable expiry date
// is treated as the epoch, which classifies as expired rather than sellable.
func Classify(qty float64, expiryDate string, today time.Time) Status {
	if qty <= 0 {
		return StatusOutOfStock
	}
	expiry, err := dates.ParseISO(expiryDate)
	if err != nil {
		expiry = time.Unix(0, 0).UTC()
	}
	anchor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if expiry.Before(anchor) {
		return StatusExpired
	}
	if !expiry.After(dates.AddMonths(anchor, NearExpiryMonths)) {
		return StatusNearExpiry
	}
	return StatusSellAllowed
}
