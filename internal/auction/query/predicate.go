// Package query holds the auction query engine: typed predicates over the
// auction aggregate and the named retrieval operations built on them.
//
// Predicates are plain values. Backends able to run them server side (see the
// postgres repository) translate the concrete types below, anything else is
// evaluated in memory with Match.
package query

import (
	"context"
	"time"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
	"github.com/shopspring/decimal"
)

// OldAuctionDays is the age, in calendar days, from which an auction counts as old
const OldAuctionDays = 7

// Predicate decides whether an auction belongs to a result set
type Predicate interface {
	Match(a *domain.Auction) bool
}

// Finder runs a predicate against a backing store
type Finder interface {
	Find(ctx context.Context, p Predicate) ([]*domain.Auction, error)
}

// PredicateFunc adapts a plain function, it is never translated server side
type PredicateFunc func(a *domain.Auction) bool

func (f PredicateFunc) Match(a *domain.Auction) bool { return f(a) }

// Open matches auctions not closed yet
type Open struct{}

func (Open) Match(a *domain.Auction) bool { return !a.Closed() }

// New matches auctions whose item is not used, age is irrelevant
type New struct{}

func (New) Match(a *domain.Auction) bool { return !a.Used() }

// Old matches used items or auctions opened at least Days calendar days before Now.
// Days <= 0 falls back to OldAuctionDays.
type Old struct {
	Now  time.Time
	Days int
}

// Cutoff is the latest opening date still considered old (inclusive)
func (o Old) Cutoff() time.Time {
	days := o.Days
	if days <= 0 {
		days = OldAuctionDays
	}
	return o.Now.AddDate(0, 0, -days)
}

func (o Old) Match(a *domain.Auction) bool {
	return a.Used() || !a.OpenedAt().After(o.Cutoff())
}

// InPeriod matches open auctions opened inside [Start, End]
type InPeriod struct {
	Start time.Time
	End   time.Time
}

func (p InPeriod) Match(a *domain.Auction) bool {
	if a.Closed() {
		return false
	}
	openedAt := a.OpenedAt()
	return !openedAt.Before(p.Start) && !openedAt.After(p.End)
}

// DisputedBetween matches auctions with at least one bid valued inside [Min, Max],
// closed state is ignored
type DisputedBetween struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (p DisputedBetween) Match(a *domain.Auction) bool {
	for _, b := range a.Bids() {
		if b == nil {
			continue
		}
		if b.Value.GreaterThanOrEqual(p.Min) && b.Value.LessThanOrEqual(p.Max) {
			return true
		}
	}
	return false
}

// InvolvesUser matches auctions owned by User or with at least one bid from User
type InvolvesUser struct {
	User *userdomain.User
}

func (p InvolvesUser) Match(a *domain.Auction) bool {
	if a.Owner().Equal(p.User) {
		return true
	}
	for _, b := range a.Bids() {
		if b != nil && b.Bidder.Equal(p.User) {
			return true
		}
	}
	return false
}

// And matches when every predicate matches, an empty And matches everything
type And []Predicate

func (ps And) Match(a *domain.Auction) bool {
	for _, p := range ps {
		if !p.Match(a) {
			return false
		}
	}
	return true
}

// Or matches when any predicate matches, an empty Or matches nothing
type Or []Predicate

func (ps Or) Match(a *domain.Auction) bool {
	for _, p := range ps {
		if p.Match(a) {
			return true
		}
	}
	return false
}

// Not negates P
type Not struct {
	P Predicate
}

func (n Not) Match(a *domain.Auction) bool { return !n.P.Match(a) }
