package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ohuru-Tech/authkit/domain"
)

// VerificationRepositoryImpl implements domain.VerificationRepository using
// Redis. Tokens are one-shot: Consume deletes the key before returning.
type VerificationRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewVerificationRepository creates a new verification token repository
func NewVerificationRepository(client *redis.Client, ttl time.Duration) domain.VerificationRepository {
	return &VerificationRepositoryImpl{
		client: client,
		prefix: "verify:",
		ttl:    ttl,
	}
}

// Store implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) Store(ctx context.Context, token string, userID uint) error {
	key := r.prefix + token
	return r.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), r.ttl).Err()
}

// Consume implements domain.VerificationRepository. GETDEL keeps the
// read-and-invalidate atomic, so a token can only ever be redeemed once.
func (r *VerificationRepositoryImpl) Consume(ctx context.Context, token string) (uint, error) {
	key := r.prefix + token
	data, err := r.client.GetDel(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, domain.ErrVerificationNotFound
		}
		return 0, err
	}

	userID, err := strconv.ParseUint(data, 10, 32)
	if err != nil {
		return 0, domain.ErrVerificationNotFound
	}
	return uint(userID), nil
}
