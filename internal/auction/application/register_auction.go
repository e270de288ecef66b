package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
)

// RegisterAuctionUseCase persists a new auction with its owner and initial bids
type RegisterAuctionUseCase struct {
	store AuctionStore
	tx    TxRunner
}

// NewRegisterAuctionUseCase creates a new instance of RegisterAuctionUseCase
func NewRegisterAuctionUseCase(store AuctionStore, tx TxRunner) *RegisterAuctionUseCase {
	return &RegisterAuctionUseCase{store: store, tx: tx}
}

func (uc *RegisterAuctionUseCase) Execute(ctx context.Context, auction *domain.Auction) error {
	if auction == nil {
		return domain.ErrNilAuction
	}
	if err := auction.Validate(); err != nil {
		log.Warn("RegisterAuctionUseCase: Malformed auction",
			zap.String("name", auction.Name()),
			zap.Error(err),
		)
		return fmt.Errorf("register auction %q: %w", auction.Name(), err)
	}

	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		return uc.store.Save(ctx, auction)
	})
	if err != nil {
		log.Error("RegisterAuctionUseCase: Failed to save auction",
			zap.String("name", auction.Name()),
			zap.Error(err),
		)
		return fmt.Errorf("register auction %q: %w", auction.Name(), err)
	}

	log.Info("Auction registered",
		zap.String("auctionID", auction.ID().String()),
		zap.String("name", auction.Name()),
		zap.Int("bids", len(auction.Bids())),
	)
	return nil
}
