package domain

import (
	"context"

	"github.com/google/uuid"
)

// AuctionRepository is the persistence gateway for auctions and their bids.
// FindByID returns (nil, nil) when the auction does not exist.
type AuctionRepository interface {
	Save(ctx context.Context, auction *Auction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Auction, error)
	FindAll(ctx context.Context) ([]*Auction, error)
}
