package domain

import "context"

// UserRepository is the persistence gateway for users.
// FindByNameAndEmail returns (nil, nil) when no user matches.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByNameAndEmail(ctx context.Context, name, email string) (*User, error)
}
