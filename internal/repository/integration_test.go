//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"go-auth-gateway/internal/database"
	"go-auth-gateway/internal/model"
)

type credentialStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

func TestPostgresUserRepository(t *testing.T) {
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, url, database.PoolOptions{MaxConns: 8, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(ctx))

	exerciseStore(t, NewUserRepository(db.Pool))
}

func TestMongoUserRepository(t *testing.T) {
	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		t.Skip("TEST_MONGO_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewMongo(ctx, url, "auth_test_"+uuid.NewString()[:8], 8)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Database.Drop(context.Background())
		_ = db.Close(context.Background())
	})
	require.NoError(t, db.EnsureIndexes(ctx))

	exerciseStore(t, NewMongoUserRepository(db.Users()))
}

func exerciseStore(t *testing.T, store credentialStore) {
	t.Helper()
	ctx := context.Background()
	email := uuid.NewString() + "@x.com"

	_, err := store.FindByEmail(ctx, email)
	require.ErrorIs(t, err, model.ErrUserNotFound)

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
		dups atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, model.User{
				ID:           uuid.NewString(),
				Email:        email,
				PasswordHash: "$2a$10$hash",
				CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
			})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, model.ErrDuplicateKey):
				dups.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	require.Equal(t, int32(7), dups.Load())

	found, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, email, found.Email)
	require.Equal(t, "$2a$10$hash", found.PasswordHash)
}
