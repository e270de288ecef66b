package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cristianortiz/leilaoEngine/internal/shared/db"
	"github.com/cristianortiz/leilaoEngine/internal/user/domain"
)

const (
	upsertUserSQL = `
        INSERT INTO users (id, name, email)
        VALUES ($1, $2, $3)
        ON CONFLICT (name, email) DO UPDATE SET name = EXCLUDED.name
        RETURNING id
    `
	findUserByNameAndEmailSQL = `
        SELECT id, name, email
        FROM users
        WHERE name = $1 AND email = $2
    `
)

// UserRepository implements domain.UserRepository for PostgreSQL.
type UserRepository struct {
	q db.Querier
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{q: q}
}

// Save inserts the user or, when (name, email) already exists, adopts the stored id.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	return SaveUser(ctx, db.QuerierFromCtx(ctx, r.q), user)
}

// SaveUser is Save on an explicit querier, the auction repository uses it to
// cascade owners and bidders inside its own transaction.
func SaveUser(ctx context.Context, q db.Querier, user *domain.User) error {
	if user == nil {
		return domain.ErrNilUser
	}
	if user.Name == "" || user.Email == "" {
		return domain.ErrInvalidUser
	}

	id := user.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var storedID uuid.UUID
	if err := q.QueryRow(ctx, upsertUserSQL, id, user.Name, user.Email).Scan(&storedID); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("save user %s: %w", user, domain.ErrUserAlreadyExist)
		}
		return fmt.Errorf("save user %s: %w", user, err)
	}
	user.ID = storedID
	return nil
}

// FindByNameAndEmail returns (nil, nil) when no user matches.
func (r *UserRepository) FindByNameAndEmail(ctx context.Context, name, email string) (*domain.User, error) {
	user := &domain.User{}
	err := db.QuerierFromCtx(ctx, r.q).
		QueryRow(ctx, findUserByNameAndEmailSQL, name, email).
		Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %s <%s>: %w", name, email, err)
	}
	return user, nil
}
