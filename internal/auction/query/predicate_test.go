package query

import (
	"testing"

	"github.com/cristianortiz/leilaoEngine/internal/auction/auctiontest"
	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	"github.com/stretchr/testify/assert"
)

func TestOld_Cutoff(t *testing.T) {
	assert.Equal(t, now.AddDate(0, 0, -7), Old{Now: now}.Cutoff())
	assert.Equal(t, now.AddDate(0, 0, -3), Old{Now: now, Days: 3}.Cutoff())
}

func TestCombinators(t *testing.T) {
	mauricio, maria := users()
	openUsed := auctiontest.NewBuilderAt(now).WithOwner(mauricio).Used().Build()
	closedNew := auctiontest.NewBuilderAt(now).WithOwner(maria).Closed().Build()

	tests := []struct {
		name string
		p    Predicate
		a    *domain.Auction
		want bool
	}{
		{name: "and_all_true", p: And{Open{}, InvolvesUser{User: mauricio}}, a: openUsed, want: true},
		{name: "and_one_false", p: And{Open{}, New{}}, a: openUsed, want: false},
		{name: "empty_and", p: And{}, a: openUsed, want: true},
		{name: "or_one_true", p: Or{Open{}, New{}}, a: closedNew, want: true},
		{name: "or_none_true", p: Or{Open{}, InvolvesUser{User: mauricio}}, a: closedNew, want: false},
		{name: "empty_or", p: Or{}, a: closedNew, want: false},
		{name: "not", p: Not{P: Open{}}, a: closedNew, want: true},
		{name: "func", p: PredicateFunc(func(a *domain.Auction) bool { return a.Used() }), a: openUsed, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.Match(tc.a))
		})
	}
}
