package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
)

// AuctionService defines application interface layer of auction module,
// exposes the use cases to the outer layers
type AuctionService interface {
	Register(ctx context.Context, auction *domain.Auction) error
	CloseAuction(ctx context.Context, auctionID uuid.UUID) error
	// AddBid records a bid on a stored auction and returns it
	AddBid(ctx context.Context, cmd AddBidDTO) (*domain.Bid, error)
	GetSummary(ctx context.Context, auctionID uuid.UUID) (*AuctionSummaryDTO, error)

	CountOpen(ctx context.Context) (int, error)
	ListNew(ctx context.Context) ([]*domain.Auction, error)
	ListOld(ctx context.Context) ([]*domain.Auction, error)
	ListInPeriod(ctx context.Context, start, end time.Time) ([]*domain.Auction, error)
	ListDisputedBetween(ctx context.Context, minValue, maxValue decimal.Decimal) ([]*domain.Auction, error)
	ListByUser(ctx context.Context, user *userdomain.User) ([]*domain.Auction, error)
}

// concrete implementation of AuctionService
type auctionService struct {
	registerUC *RegisterAuctionUseCase
	closeUC    *CloseAuctionUseCase
	addBidUC   *AddBidUseCase
	summaryUC  *GetAuctionSummaryUseCase
	*ListAuctionsUseCase
}

// NewAuctionService wires every use case over the same store, transaction runner and clock.
// A nil clock means time.Now.
func NewAuctionService(store AuctionStore, tx TxRunner, now Clock) AuctionService {
	if now == nil {
		now = time.Now
	}
	return &auctionService{
		registerUC:          NewRegisterAuctionUseCase(store, tx),
		closeUC:             NewCloseAuctionUseCase(store, tx),
		addBidUC:            NewAddBidUseCase(store, tx, now),
		summaryUC:           NewGetAuctionSummaryUseCase(store),
		ListAuctionsUseCase: NewListAuctionsUseCase(store, now),
	}
}

func (as *auctionService) Register(ctx context.Context, auction *domain.Auction) error {
	return as.registerUC.Execute(ctx, auction)
}

func (as *auctionService) CloseAuction(ctx context.Context, auctionID uuid.UUID) error {
	return as.closeUC.Execute(ctx, auctionID)
}

func (as *auctionService) AddBid(ctx context.Context, cmd AddBidDTO) (*domain.Bid, error) {
	return as.addBidUC.Execute(ctx, cmd)
}

func (as *auctionService) GetSummary(ctx context.Context, auctionID uuid.UUID) (*AuctionSummaryDTO, error) {
	return as.summaryUC.Execute(ctx, auctionID)
}
