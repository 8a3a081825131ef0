package store

import (
	"context"
	"errors"

	"github.com/shopfolio/shopfolio-server/internal/domain"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by ID, email, or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when attempting to create a user with an existing ID.
	ErrUserExists = errors.New("user already exists")
	// ErrUsernameExists is returned when the username is already taken.
	ErrUsernameExists = errors.New("username already in use")
	// ErrEmailExists is returned when the email address is already in use.
	ErrEmailExists = errors.New("email already in use")
)

// CreateUser creates a new user account.
// Username and email uniqueness are enforced in the same transaction.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	err := s.Users.Create(ctx, user.ID, user)
	if err == nil {
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) {
		switch conflict.Index {
		case "username":
			return ErrUsernameExists
		case "email":
			return ErrEmailExists
		}
	}
	if errors.Is(err, ErrAlreadyExists) {
		return ErrUserExists
	}
	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// GetUserByEmail retrieves a user by email address (case-insensitive).
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "email", email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// GetUserByUsername retrieves a user by username (case-insensitive).
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "username", username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateUser updates an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	user.Touch()
	err := s.Users.Update(ctx, user.ID, user)
	if err == nil {
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) {
		switch conflict.Index {
		case "username":
			return ErrUsernameExists
		case "email":
			return ErrEmailExists
		}
	}
	if errors.Is(err, ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
