package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cristianortiz/leilaoEngine/internal/auction/domain"
	"github.com/cristianortiz/leilaoEngine/internal/auction/query"
	"github.com/cristianortiz/leilaoEngine/internal/shared/db"
	"github.com/cristianortiz/leilaoEngine/internal/shared/logger"
	userdomain "github.com/cristianortiz/leilaoEngine/internal/user/domain"
	userpostgres "github.com/cristianortiz/leilaoEngine/internal/user/infra/repository/postgres"
)

var log = logger.GetLogger()

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	upsertAuctionSQL = `
        INSERT INTO auctions (id, name, initial_value, owner_id, used, opened_at, closed)
        VALUES ($1, $2, $3::text::numeric, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE
        SET
            name = EXCLUDED.name,
            initial_value = EXCLUDED.initial_value,
            owner_id = EXCLUDED.owner_id,
            used = EXCLUDED.used,
            opened_at = EXCLUDED.opened_at,
            closed = auctions.closed OR EXCLUDED.closed,
            updated_at = NOW()
    `
	// bids are append only, a stored bid is never rewritten
	insertBidSQL = `
        INSERT INTO bids (id, auction_id, bidder_id, value, placed_at)
        VALUES ($1, $2, $3, $4::text::numeric, $5)
        ON CONFLICT (id) DO NOTHING
    `
)

var (
	auctionColumns = []string{
		"a.id", "a.name", "a.initial_value::text", "a.used", "a.opened_at", "a.closed",
		"o.id", "o.name", "o.email",
	}
	bidColumns = []string{
		"b.id", "b.auction_id", "b.value::text", "b.placed_at",
		"u.id", "u.name", "u.email",
	}
)

// AuctionRepository implements domain.AuctionRepository and query.Finder on PostgreSQL.
// Reads come back in insertion order, bids included.
type AuctionRepository struct {
	q db.Querier
}

// NewAuctionRepository creates a new instance of AuctionRepository
func NewAuctionRepository(q db.Querier) *AuctionRepository {
	return &AuctionRepository{q: q}
}

// Save persists the auction graph: owner and bidders are upserted by (name, email),
// the auction is upserted and unseen bids inserted. It issues several statements,
// callers run it inside TxManager.RunInTx.
func (r *AuctionRepository) Save(ctx context.Context, auction *domain.Auction) error {
	if auction == nil {
		return domain.ErrNilAuction
	}
	if err := auction.Validate(); err != nil {
		return fmt.Errorf("save auction: %w", err)
	}

	q := db.QuerierFromCtx(ctx, r.q)

	if err := userpostgres.SaveUser(ctx, q, auction.Owner()); err != nil {
		return fmt.Errorf("save auction owner: %w", err)
	}
	if auction.ID() == uuid.Nil {
		auction.AssignID(uuid.New())
	}

	_, err := q.Exec(ctx, upsertAuctionSQL,
		auction.ID(),
		auction.Name(),
		auction.InitialValue().String(),
		auction.Owner().ID,
		auction.Used(),
		auction.OpenedAt(),
		auction.Closed(),
	)
	if err != nil {
		return mapError(err, "auction", auction.ID())
	}

	for _, bid := range auction.Bids() {
		if err := userpostgres.SaveUser(ctx, q, bid.Bidder); err != nil {
			return fmt.Errorf("save bidder: %w", err)
		}
		if bid.ID == uuid.Nil {
			bid.ID = uuid.New()
		}
		_, err := q.Exec(ctx, insertBidSQL,
			bid.ID,
			auction.ID(),
			bid.Bidder.ID,
			bid.Value.String(),
			bid.Timestamp,
		)
		if err != nil {
			return mapError(err, "bid", bid.ID)
		}
	}
	return nil
}

// FindByID returns (nil, nil) when the auction does not exist
func (r *AuctionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	auctions, err := r.load(ctx, r.selectAuctions().Where(sq.Expr("a.id = ?", id)))
	if err != nil {
		return nil, mapError(err, "auction", id)
	}
	if len(auctions) == 0 {
		return nil, nil
	}
	return auctions[0], nil
}

// FindAll loads every auction with its bids
func (r *AuctionRepository) FindAll(ctx context.Context) ([]*domain.Auction, error) {
	auctions, err := r.load(ctx, r.selectAuctions())
	if err != nil {
		return nil, fmt.Errorf("find all auctions: %w", err)
	}
	return auctions, nil
}

// Find runs p server side, predicates without SQL form fail with ErrUnsupportedPredicate
func (r *AuctionRepository) Find(ctx context.Context, p query.Predicate) ([]*domain.Auction, error) {
	cond, err := predicateSQL(p)
	if err != nil {
		return nil, fmt.Errorf("find auctions: %w", err)
	}
	log.Debug("Finding auctions", zap.String("predicate", fmt.Sprintf("%T", p)))

	auctions, err := r.load(ctx, r.selectAuctions().Where(cond))
	if err != nil {
		return nil, fmt.Errorf("find auctions: %w", err)
	}
	return auctions, nil
}

func (r *AuctionRepository) selectAuctions() sq.SelectBuilder {
	return psql.Select(auctionColumns...).
		From("auctions a").
		Join("users o ON o.id = a.owner_id").
		OrderBy("a.seq")
}

type auctionRow struct {
	id       uuid.UUID
	name     string
	value    string
	used     bool
	openedAt time.Time
	closed   bool
	owner    userdomain.User
}

// load runs the auction select, then fetches the bids of every returned auction in one query
func (r *AuctionRepository) load(ctx context.Context, sel sq.SelectBuilder) ([]*domain.Auction, error) {
	q := db.QuerierFromCtx(ctx, r.q)

	sql, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build auction query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	auctionRows, err := scanAuctionRows(rows)
	if err != nil {
		return nil, err
	}
	if len(auctionRows) == 0 {
		return []*domain.Auction{}, nil
	}

	ids := make([]uuid.UUID, len(auctionRows))
	for i, row := range auctionRows {
		ids[i] = row.id
	}
	bids, err := r.loadBids(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	auctions := make([]*domain.Auction, 0, len(auctionRows))
	for _, row := range auctionRows {
		value, err := decimal.NewFromString(row.value)
		if err != nil {
			return nil, fmt.Errorf("auction %s initial value %q: %w", row.id, row.value, err)
		}
		owner := row.owner
		auctions = append(auctions, domain.RestoreAuction(
			row.id, row.name, value, &owner, row.used, row.openedAt, row.closed, bids[row.id],
		))
	}
	return auctions, nil
}

func scanAuctionRows(rows pgx.Rows) ([]auctionRow, error) {
	defer rows.Close()

	var result []auctionRow
	for rows.Next() {
		var row auctionRow
		err := rows.Scan(
			&row.id,
			&row.name,
			&row.value,
			&row.used,
			&row.openedAt,
			&row.closed,
			&row.owner.ID,
			&row.owner.Name,
			&row.owner.Email,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// loadBids groups the bids of the given auctions by auction id, in insertion order.
// Bidders shared by several bids are returned as a single *User.
func (r *AuctionRepository) loadBids(ctx context.Context, q db.Querier, auctionIDs []uuid.UUID) (map[uuid.UUID][]*domain.Bid, error) {
	sql, args, err := psql.Select(bidColumns...).
		From("bids b").
		Join("users u ON u.id = b.bidder_id").
		Where(sq.Expr("b.auction_id = ANY(?::uuid[])", auctionIDs)).
		OrderBy("b.seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bid query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bidders := make(map[uuid.UUID]*userdomain.User)
	result := make(map[uuid.UUID][]*domain.Bid, len(auctionIDs))
	for rows.Next() {
		var (
			bid    domain.Bid
			value  string
			bidder userdomain.User
		)
		err := rows.Scan(
			&bid.ID,
			&bid.AuctionID,
			&value,
			&bid.Timestamp,
			&bidder.ID,
			&bidder.Name,
			&bidder.Email,
		)
		if err != nil {
			return nil, err
		}
		bid.Value, err = decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("bid %s value %q: %w", bid.ID, value, err)
		}
		if known, ok := bidders[bidder.ID]; ok {
			bid.Bidder = known
		} else {
			b := bidder
			bidders[bidder.ID] = &b
			bid.Bidder = &b
		}
		result[bid.AuctionID] = append(result[bid.AuctionID], &bid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
