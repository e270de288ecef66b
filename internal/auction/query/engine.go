package query

import (
	"fmt"
	"time"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validate fails on the first malformed auction of the collection
func Validate(auctions []*domain.Auction) error {
	for i, a := range auctions {
		if a == nil {
			return fmt.Errorf("auction #%d: %w", i, domain.ErrNilAuction)
		}
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns, in input order, the auctions matching p. The input is never modified.
func Filter(auctions []*domain.Auction, p Predicate) ([]*domain.Auction, error) {
	if err := Validate(auctions); err != nil {
		return nil, err
	}
	result := make([]*domain.Auction, 0, len(auctions))
	for _, a := range auctions {
		if p.Match(a) {
			result = append(result, a)
		}
	}
	return result, nil
}

// Count returns how many auctions match p
func Count(auctions []*domain.Auction, p Predicate) (int, error) {
	matched, err := Filter(auctions, p)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// Distinct drops repeated auctions keeping the first occurrence in place.
// Saved auctions are compared by id, unsaved ones by pointer.
func Distinct(auctions []*domain.Auction) []*domain.Auction {
	seenIDs := make(map[uuid.UUID]struct{}, len(auctions))
	seenPtrs := make(map[*domain.Auction]struct{})
	result := make([]*domain.Auction, 0, len(auctions))

	for _, a := range auctions {
		if a.ID() == uuid.Nil {
			if _, ok := seenPtrs[a]; ok {
				continue
			}
			seenPtrs[a] = struct{}{}
		} else {
			if _, ok := seenIDs[a.ID()]; ok {
				continue
			}
			seenIDs[a.ID()] = struct{}{}
		}
		result = append(result, a)
	}
	return result
}

// CountOpen counts the auctions not closed
func CountOpen(auctions []*domain.Auction) (int, error) {
	return Count(auctions, Open{})
}

// ListNew lists the auctions of items that are not used
func ListNew(auctions []*domain.Auction) ([]*domain.Auction, error) {
	return Filter(auctions, New{})
}

// ListOld lists used items plus auctions opened OldAuctionDays or more before now
func ListOld(auctions []*domain.Auction, now time.Time) ([]*domain.Auction, error) {
	return Filter(auctions, Old{Now: now, Days: OldAuctionDays})
}

// ListInPeriod lists open auctions opened between start and end, both inclusive
func ListInPeriod(auctions []*domain.Auction, start, end time.Time) ([]*domain.Auction, error) {
	return Filter(auctions, InPeriod{Start: start, End: end})
}

// ListDisputedBetween lists auctions having at least one bid valued in [minValue, maxValue]
func ListDisputedBetween(auctions []*domain.Auction, minValue, maxValue decimal.Decimal) ([]*domain.Auction, error) {
	return Filter(auctions, DisputedBetween{Min: minValue, Max: maxValue})
}

// ListByUser lists, once each, the auctions the user owns or bid on
func ListByUser(auctions []*domain.Auction, user *userdomain.User) ([]*domain.Auction, error) {
	if user == nil {
		return nil, userdomain.ErrNilUser
	}
	matched, err := Filter(auctions, InvolvesUser{User: user})
	if err != nil {
		return nil, err
	}
	return Distinct(matched), nil
}
