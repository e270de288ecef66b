package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	"github.com/cristianortiz/leilaoEngine/internal/auction/query"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
)

// ListAuctionsUseCase answers the named auction queries. Candidates come from the
// store's Find and the in-memory engine runs again on them, so every backend
// returns the same result set and malformed graphs are rejected.
type ListAuctionsUseCase struct {
	store AuctionStore
	now   Clock
}

// NewListAuctionsUseCase creates a new instance of ListAuctionsUseCase
func NewListAuctionsUseCase(store AuctionStore, now Clock) *ListAuctionsUseCase {
	return &ListAuctionsUseCase{store: store, now: now}
}

func (uc *ListAuctionsUseCase) find(ctx context.Context, name string, p query.Predicate) ([]*domain.Auction, error) {
	candidates, err := uc.store.Find(ctx, p)
	if err != nil {
		log.Error("Failed to query auctions", zap.String("query", name), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	log.Debug("Auction query", zap.String("query", name), zap.Int("candidates", len(candidates)))
	return candidates, nil
}

func (uc *ListAuctionsUseCase) CountOpen(ctx context.Context) (int, error) {
	candidates, err := uc.find(ctx, "count open", query.Open{})
	if err != nil {
		return 0, err
	}
	return query.CountOpen(candidates)
}

func (uc *ListAuctionsUseCase) ListNew(ctx context.Context) ([]*domain.Auction, error) {
	candidates, err := uc.find(ctx, "list new", query.New{})
	if err != nil {
		return nil, err
	}
	return query.ListNew(candidates)
}

// ListOld uses the injected clock as the reference instant
func (uc *ListAuctionsUseCase) ListOld(ctx context.Context) ([]*domain.Auction, error) {
	now := uc.now()
	candidates, err := uc.find(ctx, "list old", query.Old{Now: now})
	if err != nil {
		return nil, err
	}
	return query.ListOld(candidates, now)
}

func (uc *ListAuctionsUseCase) ListInPeriod(ctx context.Context, start, end time.Time) ([]*domain.Auction, error) {
	candidates, err := uc.find(ctx, "list in period", query.InPeriod{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return query.ListInPeriod(candidates, start, end)
}

func (uc *ListAuctionsUseCase) ListDisputedBetween(ctx context.Context, minValue, maxValue decimal.Decimal) ([]*domain.Auction, error) {
	candidates, err := uc.find(ctx, "list disputed between", query.DisputedBetween{Min: minValue, Max: maxValue})
	if err != nil {
		return nil, err
	}
	return query.ListDisputedBetween(candidates, minValue, maxValue)
}

func (uc *ListAuctionsUseCase) ListByUser(ctx context.Context, user *userdomain.User) ([]*domain.Auction, error) {
	if user == nil {
		return nil, userdomain.ErrNilUser
	}
	candidates, err := uc.find(ctx, "list by user", query.InvolvesUser{User: user})
	if err != nil {
		return nil, err
	}
	return query.ListByUser(candidates, user)
}
