package domain

import (
	"time"

	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid represents a value offered by a user on an auction ("lance").
// The auction is a relation by id only, the bid does not control its lifecycle.
type Bid struct {
	ID        uuid.UUID
	AuctionID uuid.UUID
	Bidder    *userdomain.User // shared, not owned
	Value     decimal.Decimal
	Timestamp time.Time
}

// NewBid creates a new Bid referencing auction, a nil auction leaves the
// reference empty until the bid is attached with Auction.AddBid.
// The timestamp is kept at TimePrecision.
func NewBid(timestamp time.Time, bidder *userdomain.User, value decimal.Decimal, auction *Auction) *Bid {
	b := &Bid{
		Bidder:    bidder,
		Value:     value,
		Timestamp: timestamp.Truncate(TimePrecision),
	}
	if auction != nil {
		b.AuctionID = auction.ID()
	}
	return b
}
