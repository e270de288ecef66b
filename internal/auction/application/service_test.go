package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianortiz/leilaoEngine/internal/auction/auctiontest"
	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	"github.com/cristianortiz/leilaoEngine/internal/auction/infra/repository/memory"
	"github.com/cristianortiz/leilaoEngine/internal/auction/query"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
)

var now = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type passThroughTx struct {
	calls int
}

func (p *passThroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type failingStore struct {
	*memory.AuctionRepository
	err error
}

func (s failingStore) Find(context.Context, query.Predicate) ([]*domain.Auction, error) {
	return nil, s.err
}

func (s failingStore) Save(context.Context, *domain.Auction) error {
	return s.err
}

// saveFailingStore reads from the memory store but never manages to write
type saveFailingStore struct {
	*memory.AuctionRepository
	err error
}

func (s saveFailingStore) Save(context.Context, *domain.Auction) error {
	return s.err
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func names(auctions []*domain.Auction) []string {
	result := make([]string, 0, len(auctions))
	for _, a := range auctions {
		result = append(result, a.Name())
	}
	return result
}

// seed registers Xbox and Fogão owned by Mauricio and Geladeira owned by Maria,
// with alternating bids from both.
func seed(t *testing.T, svc AuctionService) (mauricio, maria *userdomain.User) {
	t.Helper()
	mauricio = userdomain.NewUser("Mauricio", "mauricio@mauricio.com.br")
	maria = userdomain.NewUser("Maria", "maria@mauricio.com.br")

	auctions := []*domain.Auction{
		auctiontest.NewBuilderAt(now).WithName("Xbox").WithOwner(mauricio).WithValue(dec(500)).
			WithBid(now, maria, dec(510)).
			WithBid(now, mauricio, dec(520)).
			WithBid(now, maria, dec(530)).
			WithBid(now, mauricio, dec(540)).
			Build(),
		auctiontest.NewBuilderAt(now).WithName("Geladeira").WithOwner(maria).WithValue(dec(700)).Used().
			WithBid(now, maria, dec(710)).
			WithBid(now, mauricio, dec(720)).
			WithBid(now, maria, dec(730)).
			WithBid(now, mauricio, dec(740)).
			Build(),
		auctiontest.NewBuilderAt(now).WithName("Fogão").WithOwner(mauricio).WithValue(dec(300)).DaysAgo(9).Build(),
	}
	for _, a := range auctions {
		require.NoError(t, svc.Register(context.Background(), a))
	}
	return mauricio, maria
}

func TestAuctionService_Queries(t *testing.T) {
	ctx := context.Background()
	svc := NewAuctionService(memory.NewAuctionRepository(), &passThroughTx{}, clock)
	mauricio, maria := seed(t, svc)

	open, err := svc.CountOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, open)

	fresh, err := svc.ListNew(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Xbox", "Fogão"}, names(fresh))

	old, err := svc.ListOld(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Geladeira", "Fogão"}, names(old))

	inPeriod, err := svc.ListInPeriod(ctx, now.AddDate(0, 0, -10), now.AddDate(0, 0, -8))
	require.NoError(t, err)
	assert.Equal(t, []string{"Fogão"}, names(inPeriod))

	disputed, err := svc.ListDisputedBetween(ctx, dec(400), dec(600))
	require.NoError(t, err)
	assert.Equal(t, []string{"Xbox"}, names(disputed))

	byMauricio, err := svc.ListByUser(ctx, mauricio)
	require.NoError(t, err)
	assert.Equal(t, []string{"Xbox", "Geladeira", "Fogão"}, names(byMauricio))

	byMaria, err := svc.ListByUser(ctx, maria)
	require.NoError(t, err)
	assert.Equal(t, []string{"Xbox", "Geladeira"}, names(byMaria))

	_, err = svc.ListByUser(ctx, nil)
	require.ErrorIs(t, err, userdomain.ErrNilUser)
}

func TestAuctionService_CloseAuction(t *testing.T) {
	ctx := context.Background()
	tx := &passThroughTx{}
	repo := memory.NewAuctionRepository()
	svc := NewAuctionService(repo, tx, clock)
	seed(t, svc)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.CloseAuction(ctx, all[0].ID()))
	// closing twice stays closed
	require.NoError(t, svc.CloseAuction(ctx, all[0].ID()))

	open, err := svc.CountOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, open)
	assert.Equal(t, 3+2, tx.calls)

	err = svc.CloseAuction(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestAuctionService_AddBid(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAuctionRepository()
	svc := NewAuctionService(repo, &passThroughTx{}, clock)
	mauricio, _ := seed(t, svc)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	fogao := all[2]

	// the owner bidding on their own auction is accepted
	bid, err := svc.AddBid(ctx, AddBidDTO{AuctionID: fogao.ID(), Bidder: mauricio, Value: dec(450)})
	require.NoError(t, err)
	assert.Equal(t, fogao.ID(), bid.AuctionID)
	assert.Equal(t, now, bid.Timestamp)
	assert.NotEqual(t, uuid.Nil, bid.ID)

	disputed, err := svc.ListDisputedBetween(ctx, dec(400), dec(600))
	require.NoError(t, err)
	assert.Equal(t, []string{"Xbox", "Fogão"}, names(disputed))

	_, err = svc.AddBid(ctx, AddBidDTO{AuctionID: fogao.ID(), Value: dec(1)})
	require.ErrorIs(t, err, domain.ErrMissingBidder)

	_, err = svc.AddBid(ctx, AddBidDTO{AuctionID: uuid.New(), Bidder: mauricio, Value: dec(1)})
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestAuctionService_GetSummary(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAuctionRepository()
	svc := NewAuctionService(repo, &passThroughTx{}, clock)
	seed(t, svc)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)

	summary, err := svc.GetSummary(ctx, all[1].ID())
	require.NoError(t, err)
	assert.Equal(t, "Geladeira", summary.Name)
	assert.Equal(t, 4, summary.BidCount)
	assert.True(t, dec(740).Equal(summary.HighestBid))
	assert.Equal(t, "Mauricio <mauricio@mauricio.com.br>", summary.HighestBy)

	empty, err := svc.GetSummary(ctx, all[2].ID())
	require.NoError(t, err)
	assert.Zero(t, empty.BidCount)
	assert.Empty(t, empty.HighestBy)

	_, err = svc.GetSummary(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestAuctionService_RegisterRejectsMalformed(t *testing.T) {
	tx := &passThroughTx{}
	svc := NewAuctionService(memory.NewAuctionRepository(), tx, clock)

	err := svc.Register(context.Background(), auctiontest.NewBuilderAt(now).WithOwner(nil).Build())
	require.ErrorIs(t, err, domain.ErrMissingOwner)

	err = svc.Register(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrNilAuction)
	assert.Zero(t, tx.calls)
}

func TestAuctionService_StoreFailures(t *testing.T) {
	errDown := errors.New("connection reset")
	svc := NewAuctionService(failingStore{AuctionRepository: memory.NewAuctionRepository(), err: errDown}, &passThroughTx{}, clock)
	ctx := context.Background()

	_, err := svc.CountOpen(ctx)
	require.ErrorIs(t, err, errDown)
	_, err = svc.ListOld(ctx)
	require.ErrorIs(t, err, errDown)
	err = svc.Register(ctx, auctiontest.NewBuilderAt(now).Build())
	require.ErrorIs(t, err, errDown)
}

func TestAuctionService_FailedSaveLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAuctionRepository()
	seed(t, NewAuctionService(repo, &passThroughTx{}, clock))

	errDiskFull := errors.New("disk full")
	svc := NewAuctionService(saveFailingStore{AuctionRepository: repo, err: errDiskFull}, &passThroughTx{}, clock)
	mauricio := userdomain.NewUser("Mauricio", "mauricio@mauricio.com.br")

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	xbox, fogao := all[0], all[2]

	_, err = svc.AddBid(ctx, AddBidDTO{AuctionID: fogao.ID(), Bidder: mauricio, Value: dec(450)})
	require.ErrorIs(t, err, errDiskFull)

	err = svc.CloseAuction(ctx, xbox.ID())
	require.ErrorIs(t, err, errDiskFull)

	disputed, err := svc.ListDisputedBetween(ctx, dec(400), dec(600))
	require.NoError(t, err)
	assert.Equal(t, []string{"Xbox"}, names(disputed))
	assert.Empty(t, fogao.Bids())

	open, err := svc.CountOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, open)
}
