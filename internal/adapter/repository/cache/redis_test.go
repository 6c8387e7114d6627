package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisCacheRepository_ConnectionErrorIsNotAMiss(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	repo := NewRedisCacheRepository(client, logger.NewNop())
	ctx := context.Background()

	_, err := repo.Get(ctx, "product:1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)

	assert.Error(t, repo.Set(ctx, "product:1", []byte("{}"), time.Minute))
	assert.Error(t, repo.Delete(ctx, "product:1"))
}

func TestNewRedisClient_FailsWhenUnreachable(t *testing.T) {
	_, err := NewRedisClient("127.0.0.1:1", "", 0, logger.NewNop())
	assert.Error(t, err)
}
