package application

import (
	"context"
	"time"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	"github.com/cristianortiz/leilaoEngine/internal/auction/query"
)

// AuctionStore is the persistence the use cases need: the repository plus
// server side predicate execution.
type AuctionStore interface {
	domain.AuctionRepository
	query.Finder
}

// TxRunner runs fn inside a transaction carried by ctx, db.TxManager implements it
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock returns the current time
type Clock func() time.Time
