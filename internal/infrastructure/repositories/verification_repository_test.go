package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Ohuru-Tech/authkit/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	t.Cleanup(func() {
		mr.Close()
	})

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestVerificationRepositoryImpl_StoreAndConsume(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewVerificationRepository(client, time.Hour)
	ctx := context.Background()

	if err := repo.Store(ctx, "token-123", 42); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}

	if ttl := mr.TTL("verify:token-123"); ttl <= 0 {
		t.Error("expected TTL to be set on verification key")
	}

	userID, err := repo.Consume(ctx, "token-123")
	if err != nil {
		t.Fatalf("failed to consume token: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user id 42, got %d", userID)
	}
}

func TestVerificationRepositoryImpl_ConsumeIsOneShot(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVerificationRepository(client, time.Hour)
	ctx := context.Background()

	if err := repo.Store(ctx, "once", 7); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}

	if _, err := repo.Consume(ctx, "once"); err != nil {
		t.Fatalf("first consume should succeed: %v", err)
	}

	_, err := repo.Consume(ctx, "once")
	if !errors.Is(err, domain.ErrVerificationNotFound) {
		t.Errorf("expected second consume to fail with ErrVerificationNotFound, got %v", err)
	}
}

func TestVerificationRepositoryImpl_Expiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewVerificationRepository(client, time.Minute)
	ctx := context.Background()

	if err := repo.Store(ctx, "short-lived", 9); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := repo.Consume(ctx, "short-lived")
	if !errors.Is(err, domain.ErrVerificationNotFound) {
		t.Errorf("expected expired token to be gone, got %v", err)
	}
}

func TestVerificationRepositoryImpl_UnknownToken(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVerificationRepository(client, time.Hour)

	_, err := repo.Consume(context.Background(), "never-stored")
	if !errors.Is(err, domain.ErrVerificationNotFound) {
		t.Errorf("expected ErrVerificationNotFound, got %v", err)
	}
}
