// Package auctiontest provides a fluent builder producing deterministic
// auctions for tests and demo seeding.
package auctiontest

import (
	"time"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultName       = "XBox"
	DefaultOwnerName  = "Joao da Silva"
	DefaultOwnerEmail = "joao@silva.com.br"
)

// DefaultValue is the initial value used when WithValue is never called
var DefaultValue = decimal.NewFromFloat(1500.0)

// pendingBid is a bid waiting for its auction, it only exists inside Build
type pendingBid struct {
	timestamp time.Time
	bidder    *userdomain.User
	value     decimal.Decimal
}

// Builder accumulates auction fields. Every method works on a copy and returns it,
// so a partially configured Builder can be reused as a template without leaking
// bids between the auctions built from it.
type Builder struct {
	now      time.Time
	owner    *userdomain.User
	value    decimal.Decimal
	name     string
	used     bool
	closed   bool
	openedAt time.Time
	bids     []pendingBid
}

// NewBuilder returns a builder with the default auction, opened now
func NewBuilder() Builder {
	return NewBuilderAt(time.Now())
}

// NewBuilderAt is NewBuilder with a pinned clock
func NewBuilderAt(now time.Time) Builder {
	return Builder{
		now:      now,
		owner:    userdomain.NewUser(DefaultOwnerName, DefaultOwnerEmail),
		value:    DefaultValue,
		name:     DefaultName,
		openedAt: now,
	}
}

func (b Builder) WithOwner(owner *userdomain.User) Builder {
	b.owner = owner
	return b
}

func (b Builder) WithValue(value decimal.Decimal) Builder {
	b.value = value
	return b
}

func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

func (b Builder) Used() Builder {
	b.used = true
	return b
}

func (b Builder) Closed() Builder {
	b.closed = true
	return b
}

// DaysAgo opens the auction the given number of calendar days before the builder clock
func (b Builder) DaysAgo(days int) Builder {
	b.openedAt = b.now.AddDate(0, 0, -days)
	return b
}

// OpenedAt sets an explicit opening date
func (b Builder) OpenedAt(openedAt time.Time) Builder {
	b.openedAt = openedAt
	return b
}

// WithBid queues a bid, it is attached to the auction created by Build
func (b Builder) WithBid(timestamp time.Time, bidder *userdomain.User, value decimal.Decimal) Builder {
	bids := make([]pendingBid, len(b.bids), len(b.bids)+1)
	copy(bids, b.bids)
	b.bids = append(bids, pendingBid{timestamp: timestamp, bidder: bidder, value: value})
	return b
}

// Build creates the auction, attaches the queued bids in order and closes it when asked
func (b Builder) Build() *domain.Auction {
	auction := domain.NewAuction(b.name, b.value, b.owner, b.used)
	auction.SetOpenedAt(b.openedAt)
	for _, pb := range b.bids {
		auction.AddBid(domain.NewBid(pb.timestamp, pb.bidder, pb.value, auction))
	}
	if b.closed {
		auction.Close()
	}
	return auction
}
