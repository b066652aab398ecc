package domain

import "github.com/shopspring/decimal"

// Listing read-only view of a hosted property
type Listing struct {
	ID          int64
	HostID      int64
	Title       string
	Address     string
	NightlyRate decimal.Decimal
}

// IsHostedBy returns true if the user hosts the listing
func (l *Listing) IsHostedBy(userID int64) bool {
	return l.HostID == userID
}
