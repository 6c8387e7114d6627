package domain

import (
	"context"
	"errors"
	"time"
)

// MediaStorage persists an uploaded file and returns the URL it is served from.
type MediaStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// EventPublisher emits domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent.
var ErrCacheMiss = errors.New("key not found in cache")

type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ListingNotifier tells a seller their listing went live.
type ListingNotifier interface {
	SendListingCreatedEmail(toEmail, listingTitle string) error
}
