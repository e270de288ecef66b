package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	"github.com/cristianortiz/leilaoEngine/internal/auction/query"
	"github.com/google/uuid"
)

// AuctionRepository is a concurrency-safe in-memory implementation of
// domain.AuctionRepository and query.Finder. It keeps the saved pointers, so changes
// made to an auction after Save are seen by later reads, and it iterates in
// insertion order.
type AuctionRepository struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	auctions map[uuid.UUID]*domain.Auction
}

// NewAuctionRepository creates an empty repository
func NewAuctionRepository() *AuctionRepository {
	return &AuctionRepository{
		auctions: make(map[uuid.UUID]*domain.Auction),
	}
}

// Save assigns ids to the auction and its bids when missing and stores it
func (r *AuctionRepository) Save(_ context.Context, auction *domain.Auction) error {
	if auction == nil {
		return domain.ErrNilAuction
	}
	if err := auction.Validate(); err != nil {
		return fmt.Errorf("save auction: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if auction.ID() == uuid.Nil {
		auction.AssignID(uuid.New())
	}
	for _, b := range auction.Bids() {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
	}

	if _, ok := r.auctions[auction.ID()]; !ok {
		r.order = append(r.order, auction.ID())
	}
	r.auctions[auction.ID()] = auction
	return nil
}

// FindByID returns (nil, nil) when the auction is unknown
func (r *AuctionRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.auctions[id]; ok {
		return a, nil
	}
	return nil, nil
}

// FindAll returns every auction in insertion order
func (r *AuctionRepository) FindAll(_ context.Context) ([]*domain.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Auction, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.auctions[id])
	}
	return result, nil
}

// Find evaluates p in memory over every stored auction
func (r *AuctionRepository) Find(ctx context.Context, p query.Predicate) ([]*domain.Auction, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(all, p)
}
