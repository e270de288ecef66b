package postgres

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/cristianortiz/leilaoEngine/internal/auction/query"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
)

// ErrUnsupportedPredicate is returned by Find for predicates with no SQL form
var ErrUnsupportedPredicate = errors.New("predicate has no SQL translation")

// conditions reference the "a" alias of the auctions table
const (
	disputedBetweenSQL = `EXISTS (SELECT 1 FROM bids b WHERE b.auction_id = a.id AND b.value BETWEEN ?::text::numeric AND ?::text::numeric)`
	ownedBySQL         = `EXISTS (SELECT 1 FROM users ou WHERE ou.id = a.owner_id AND ou.name = ? AND ou.email = ?)`
	bidByUserSQL       = `EXISTS (SELECT 1 FROM bids b JOIN users bu ON bu.id = b.bidder_id WHERE b.auction_id = a.id AND bu.name = ? AND bu.email = ?)`
)

// predicateSQL turns a query predicate into a WHERE condition.
// Bid based predicates use EXISTS so an auction never comes back twice.
func predicateSQL(p query.Predicate) (sq.Sqlizer, error) {
	switch p := p.(type) {
	case query.Open:
		return sq.Eq{"a.closed": false}, nil
	case query.New:
		return sq.Eq{"a.used": false}, nil
	case query.Old:
		return sq.Or{sq.Eq{"a.used": true}, sq.LtOrEq{"a.opened_at": p.Cutoff()}}, nil
	case query.InPeriod:
		return sq.And{
			sq.Eq{"a.closed": false},
			sq.GtOrEq{"a.opened_at": p.Start},
			sq.LtOrEq{"a.opened_at": p.End},
		}, nil
	case query.DisputedBetween:
		return sq.Expr(disputedBetweenSQL, p.Min.String(), p.Max.String()), nil
	case query.InvolvesUser:
		if p.User == nil {
			return nil, userdomain.ErrNilUser
		}
		return sq.Or{
			sq.Expr(ownedBySQL, p.User.Name, p.User.Email),
			sq.Expr(bidByUserSQL, p.User.Name, p.User.Email),
		}, nil
	case query.And:
		parts, err := predicatesSQL(p)
		if err != nil {
			return nil, err
		}
		return sq.And(parts), nil
	case query.Or:
		parts, err := predicatesSQL(p)
		if err != nil {
			return nil, err
		}
		return sq.Or(parts), nil
	case query.Not:
		inner, err := predicateSQL(p.P)
		if err != nil {
			return nil, err
		}
		sql, args, err := inner.ToSql()
		if err != nil {
			return nil, err
		}
		return sq.Expr("NOT ("+sql+")", args...), nil
	default:
		return nil, fmt.Errorf("%T: %w", p, ErrUnsupportedPredicate)
	}
}

func predicatesSQL(ps []query.Predicate) ([]sq.Sqlizer, error) {
	parts := make([]sq.Sqlizer, 0, len(ps))
	for _, p := range ps {
		part, err := predicateSQL(p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}
