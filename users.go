package taskdeck

import (
	"context"
	"errors"
)

var (
	// ErrEmailTaken signals a duplicate registration. The store converts the
	// underlying unique-constraint violation into this soft failure.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid login")
)

type UserRepo interface {
	InsertUser(ctx context.Context, email, password string) (ExistingUserRecord, error)
	Authenticate(ctx context.Context, email, password string) (ExistingUserRecord, error)
}

type UserRecord struct {
	Email string
}

// ExistingUserRecord represents a user that exists in the database
type ExistingUserRecord struct {
	UserRecord
	ID int
}
