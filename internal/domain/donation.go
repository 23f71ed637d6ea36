package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation represents a supporter contribution recorded by staff.
type Donation struct {
	ID        string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
