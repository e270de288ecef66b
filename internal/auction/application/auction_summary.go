package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
)

// AuctionSummaryDTO is a read model of one auction for reports
type AuctionSummaryDTO struct {
	AuctionID    uuid.UUID
	Name         string
	Owner        string
	InitialValue decimal.Decimal
	Used         bool
	Closed       bool
	OpenedAt     time.Time
	BidCount     int
	HighestBid   decimal.Decimal
	HighestBy    string
}

// Summarize builds the summary of a, HighestBy is empty when there are no bids.
// Ties keep the earliest bid.
func Summarize(a *domain.Auction) AuctionSummaryDTO {
	dto := AuctionSummaryDTO{
		AuctionID:    a.ID(),
		Name:         a.Name(),
		InitialValue: a.InitialValue(),
		Used:         a.Used(),
		Closed:       a.Closed(),
		OpenedAt:     a.OpenedAt(),
	}
	if a.Owner() != nil {
		dto.Owner = a.Owner().String()
	}

	bids := a.Bids()
	dto.BidCount = len(bids)
	for _, b := range bids {
		if b == nil || b.Bidder == nil {
			continue
		}
		if dto.HighestBy == "" || b.Value.GreaterThan(dto.HighestBid) {
			dto.HighestBid = b.Value
			dto.HighestBy = b.Bidder.String()
		}
	}
	return dto
}

// GetAuctionSummaryUseCase loads one auction and summarizes it
type GetAuctionSummaryUseCase struct {
	store AuctionStore
}

// NewGetAuctionSummaryUseCase creates a new instance of GetAuctionSummaryUseCase
func NewGetAuctionSummaryUseCase(store AuctionStore) *GetAuctionSummaryUseCase {
	return &GetAuctionSummaryUseCase{store: store}
}

func (uc *GetAuctionSummaryUseCase) Execute(ctx context.Context, auctionID uuid.UUID) (*AuctionSummaryDTO, error) {
	auction, err := loadAuction(ctx, uc.store, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction summary %s: %w", auctionID, err)
	}
	dto := Summarize(auction)
	return &dto, nil
}
