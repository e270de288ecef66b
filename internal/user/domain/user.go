package domain

import (
	"github.com/google/uuid"
)

// User represents a participant of the auctions, either as owner or as bidder.
// Its identity is the (Name, Email) pair, ID is only the storage key
// assigned by the repository on first save.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// NewUser creates a new User instance without storage identity
func NewUser(name, email string) *User {
	return &User{
		Name:  name,
		Email: email,
	}
}

// Equal reports whether both users share the same (name, email) identity.
// A nil user is never equal to anything, including another nil.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	return u.Name == other.Name && u.Email == other.Email
}

func (u *User) String() string {
	if u == nil {
		return "<nil user>"
	}
	return u.Name + " <" + u.Email + ">"
}
