package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cristianortiz/leilaoEngine/internal/auction/application"
	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
)

func auctionNames(auctions []*domain.Auction) []string {
	out := make([]string, len(auctions))
	for i, a := range auctions {
		out[i] = a.Name()
	}
	return out
}

// report logs the result of every named query plus one summary line per stored auction
func report(ctx context.Context, log *zap.Logger, repo domain.AuctionRepository, service application.AuctionService) error {
	open, err := service.CountOpen(ctx)
	if err != nil {
		return err
	}
	fresh, err := service.ListNew(ctx)
	if err != nil {
		return err
	}
	old, err := service.ListOld(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	lastWeek, err := service.ListInPeriod(ctx, now.AddDate(0, 0, -7), now)
	if err != nil {
		return err
	}
	disputed, err := service.ListDisputedBetween(ctx, decimal.NewFromInt(400), decimal.NewFromInt(600))
	if err != nil {
		return err
	}
	byMauricio, err := service.ListByUser(ctx, demoMauricio)
	if err != nil {
		return err
	}

	log.Info("Auction report",
		zap.Int("open", open),
		zap.Strings("new", auctionNames(fresh)),
		zap.Strings("old", auctionNames(old)),
		zap.Strings("openedLastWeek", auctionNames(lastWeek)),
		zap.Strings("disputed400to600", auctionNames(disputed)),
		zap.Strings("involvingMauricio", auctionNames(byMauricio)),
	)

	all, err := repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load auctions: %w", err)
	}
	for _, a := range all {
		s := application.Summarize(a)
		log.Info("Auction",
			zap.String("name", s.Name),
			zap.String("owner", s.Owner),
			zap.String("initialValue", s.InitialValue.StringFixed(2)),
			zap.Bool("closed", s.Closed),
			zap.Int("bids", s.BidCount),
			zap.String("highestBid", s.HighestBid.StringFixed(2)),
			zap.String("highestBy", s.HighestBy),
		)
	}
	return nil
}
