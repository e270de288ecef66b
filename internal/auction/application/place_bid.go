package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	"github.com/cristianortiz/leilaoEngine/internal/shared/logger"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
)

var log = logger.GetLogger()

// AddBidDTO carries the data of a new bid. A zero Timestamp means now.
type AddBidDTO struct {
	AuctionID uuid.UUID
	Bidder    *userdomain.User
	Value     decimal.Decimal
	Timestamp time.Time
}

// AddBidUseCase appends a bid to a stored auction. Bids are recorded as given:
// no minimum increment, no owner check and closed auctions still accept them.
type AddBidUseCase struct {
	store AuctionStore
	tx    TxRunner
	now   Clock
}

// NewAddBidUseCase creates a new instance of AddBidUseCase
func NewAddBidUseCase(store AuctionStore, tx TxRunner, now Clock) *AddBidUseCase {
	return &AddBidUseCase{store: store, tx: tx, now: now}
}

func (uc *AddBidUseCase) Execute(ctx context.Context, cmd AddBidDTO) (*domain.Bid, error) {
	if cmd.Bidder == nil {
		return nil, fmt.Errorf("add bid to auction %s: %w", cmd.AuctionID, domain.ErrMissingBidder)
	}
	log.Info("Executing AddBidUseCase",
		zap.String("auctionID", cmd.AuctionID.String()),
		zap.Stringer("bidder", cmd.Bidder),
		zap.String("value", cmd.Value.String()),
	)

	timestamp := cmd.Timestamp
	if timestamp.IsZero() {
		timestamp = uc.now()
	}

	var bid *domain.Bid
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		auction, err := loadForUpdate(ctx, uc.store, cmd.AuctionID)
		if err != nil {
			return err
		}
		bid = domain.NewBid(timestamp, cmd.Bidder, cmd.Value, auction)
		auction.AddBid(bid)
		return uc.store.Save(ctx, auction)
	})
	if err != nil {
		return nil, fmt.Errorf("add bid to auction %s: %w", cmd.AuctionID, err)
	}
	return bid, nil
}
