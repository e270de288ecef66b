package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cristianortiz/leilaoEngine/internal/auction/application"
	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
)

var (
	demoMauricio = userdomain.NewUser("Mauricio", "mauricio@mauricio.com.br")
	demoMaria    = userdomain.NewUser("Maria", "maria@mauricio.com.br")
)

// demoAuction describes one demo listing, bids alternate between its bidders
type demoAuction struct {
	name     string
	owner    *userdomain.User
	value    int64
	used     bool
	daysAgo  int
	bidders  []*userdomain.User
	bidStart int64
}

// demoAuctions is the canonical scenario: Mauricio owns Xbox and Fogão and bids on
// Maria's Geladeira, both bid alternately on Xbox and Geladeira.
func demoAuctions(now time.Time) []*domain.Auction {
	specs := []demoAuction{
		{name: "Xbox", owner: demoMauricio, value: 500, bidders: []*userdomain.User{demoMaria, demoMauricio}, bidStart: 510},
		{name: "Geladeira", owner: demoMaria, value: 700, bidders: []*userdomain.User{demoMaria, demoMauricio}, bidStart: 710},
		{name: "Fogão", owner: demoMauricio, value: 300, used: true, daysAgo: 10},
	}

	auctions := make([]*domain.Auction, 0, len(specs))
	for _, s := range specs {
		a := domain.NewAuction(s.name, decimal.NewFromInt(s.value), s.owner, s.used)
		a.SetOpenedAt(now.AddDate(0, 0, -s.daysAgo))
		if len(s.bidders) > 0 {
			for i := 0; i < 4; i++ {
				bidder := s.bidders[i%len(s.bidders)]
				value := decimal.NewFromInt(s.bidStart + int64(i)*10)
				a.AddBid(domain.NewBid(now, bidder, value, a))
			}
		}
		auctions = append(auctions, a)
	}
	return auctions
}

func seedDemo(ctx context.Context, service application.AuctionService) error {
	for _, a := range demoAuctions(time.Now()) {
		if err := service.Register(ctx, a); err != nil {
			return fmt.Errorf("seed %q: %w", a.Name(), err)
		}
	}
	return nil
}
