package domain

import (
	"fmt"
	"time"

	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Auction represents an item listed for bidding ("leilão").
// Closed and bids are only reachable through methods so the one-way close
// and the append-only bid sequence can't be broken from outside.
type Auction struct {
	id           uuid.UUID
	name         string
	initialValue decimal.Decimal
	owner        *userdomain.User
	used         bool
	openedAt     time.Time
	closed       bool
	//insertion order defines bid chronology
	bids []*Bid
}

// TimePrecision is the resolution opened-at and bid timestamps are kept at,
// the one PostgreSQL timestamps store
const TimePrecision = time.Microsecond

// NewAuction creates an open auction, opened-at starts as the creation time
func NewAuction(name string, initialValue decimal.Decimal, owner *userdomain.User, used bool) *Auction {
	return &Auction{
		name:         name,
		initialValue: initialValue,
		owner:        owner,
		used:         used,
		openedAt:     time.Now().Truncate(TimePrecision),
		bids:         []*Bid{},
	}
}

// RestoreAuction rebuilds an auction from persisted state, used by repositories.
func RestoreAuction(id uuid.UUID, name string, initialValue decimal.Decimal, owner *userdomain.User,
	used bool, openedAt time.Time, closed bool, bids []*Bid) *Auction {

	a := &Auction{
		id:           id,
		name:         name,
		initialValue: initialValue,
		owner:        owner,
		used:         used,
		openedAt:     openedAt,
		closed:       closed,
		bids:         make([]*Bid, 0, len(bids)),
	}
	a.bids = append(a.bids, bids...)
	return a
}

func (a *Auction) ID() uuid.UUID                 { return a.id }
func (a *Auction) Name() string                  { return a.name }
func (a *Auction) InitialValue() decimal.Decimal { return a.initialValue }
func (a *Auction) Owner() *userdomain.User       { return a.owner }
func (a *Auction) Used() bool                    { return a.used }
func (a *Auction) OpenedAt() time.Time           { return a.openedAt }
func (a *Auction) Closed() bool                  { return a.closed }

// Bids returns a copy of the bid sequence in insertion order
func (a *Auction) Bids() []*Bid {
	bids := make([]*Bid, len(a.bids))
	copy(bids, a.bids)
	return bids
}

// AssignID sets the storage identity, bids that pointed at the previous id follow it.
func (a *Auction) AssignID(id uuid.UUID) {
	previous := a.id
	a.id = id
	for _, b := range a.bids {
		if b != nil && b.AuctionID == previous {
			b.AuctionID = id
		}
	}
}

// Close ends the auction, calling it again keeps it closed
func (a *Auction) Close() {
	a.closed = true
}

// SetOpenedAt overrides the opening date, past and future dates are both accepted.
// Sub-microsecond digits are dropped.
func (a *Auction) SetOpenedAt(openedAt time.Time) {
	a.openedAt = openedAt.Truncate(TimePrecision)
}

// Clone returns an independent copy: closing it or adding bids leaves a untouched.
// Owner and existing bids are shared.
func (a *Auction) Clone() *Auction {
	return RestoreAuction(a.id, a.name, a.initialValue, a.owner, a.used, a.openedAt, a.closed, a.bids)
}

// AddBid appends a bid without validating it (bidder may even be the owner).
// A bid without auction reference adopts this auction's id.
func (a *Auction) AddBid(bid *Bid) {
	if bid != nil && bid.AuctionID == uuid.Nil {
		bid.AuctionID = a.id
	}
	a.bids = append(a.bids, bid)
}

// Validate checks the entity graph is well formed: owner present, every bid has a
// bidder and references this auction.
func (a *Auction) Validate() error {
	if a.owner == nil {
		return fmt.Errorf("auction %q: %w", a.name, ErrMissingOwner)
	}
	for i, b := range a.bids {
		if b == nil || b.Bidder == nil {
			return fmt.Errorf("auction %q bid #%d: %w", a.name, i, ErrMissingBidder)
		}
		if b.AuctionID != a.id {
			return fmt.Errorf("auction %q bid #%d references %s: %w", a.name, i, b.AuctionID, ErrForeignBid)
		}
	}
	return nil
}
