package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
)

// CloseAuctionUseCase closes a stored auction, closing twice is a no-op
type CloseAuctionUseCase struct {
	store AuctionStore
	tx    TxRunner
}

// NewCloseAuctionUseCase creates a new instance of CloseAuctionUseCase
func NewCloseAuctionUseCase(store AuctionStore, tx TxRunner) *CloseAuctionUseCase {
	return &CloseAuctionUseCase{store: store, tx: tx}
}

func (uc *CloseAuctionUseCase) Execute(ctx context.Context, auctionID uuid.UUID) error {
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		auction, err := loadForUpdate(ctx, uc.store, auctionID)
		if err != nil {
			return err
		}
		auction.Close()
		return uc.store.Save(ctx, auction)
	})
	if err != nil {
		return fmt.Errorf("close auction %s: %w", auctionID, err)
	}

	log.Info("Auction closed", zap.String("auctionID", auctionID.String()))
	return nil
}

// loadAuction turns the repository's absent result into ErrAuctionNotFound
func loadAuction(ctx context.Context, store AuctionStore, id uuid.UUID) (*domain.Auction, error) {
	auction, err := store.FindByID(ctx, id)
	if err != nil {
		log.Error("Failed to load auction",
			zap.String("auctionID", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if auction == nil {
		return nil, domain.ErrAuctionNotFound
	}
	return auction, nil
}

// loadForUpdate returns a copy of the stored auction. Stores may hand out the
// instance they keep, changes must only reach them through a successful Save.
func loadForUpdate(ctx context.Context, store AuctionStore, id uuid.UUID) (*domain.Auction, error) {
	auction, err := loadAuction(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return auction.Clone(), nil
}
