package service

import (
	"context"
	"encoding/hex"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shopfolio/shopfolio-server/internal/auth"
	"github.com/shopfolio/shopfolio-server/internal/domain"
	"github.com/shopfolio/shopfolio-server/internal/store"
)

// newTestStore opens a badger store in a temp dir that's cleaned up
// with the test.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// newTestTokenService builds a TokenService with a fresh random key.
func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	key, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	ts, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)
	return ts
}

// createTestUser persists a user directly in the store.
func createTestUser(t *testing.T, s *store.Store, id, username string, role domain.Role) *domain.User {
	t.Helper()

	now := time.Now()
	u := &domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

// createTestShop persists a shop owned by the given user.
func createTestShop(t *testing.T, s *store.Store, id, ownerID, name string) *domain.Shop {
	t.Helper()

	now := time.Now()
	sh := &domain.Shop{
		ID:         id,
		OwnerID:    ownerID,
		Name:       name,
		Slug:       id + "-slug",
		ProductIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.CreateShop(context.Background(), sh))
	return sh
}

// createTestProduct persists a product in a shop.
func createTestProduct(t *testing.T, s *store.Store, id, shopID, name string) *domain.Product {
	t.Helper()

	now := time.Now()
	p := &domain.Product{
		ID:        id,
		ShopID:    shopID,
		Name:      name,
		Slug:      id + "-slug",
		Currency:  "USD",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
}
