package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	commentsCollection = "comments"

	indexTimeout = 10 * time.Second
)

// NewMongoDBConnection connects, pings and returns the client and the database handle.
func NewMongoDBConnection(uri, database string, timeout time.Duration, log *logger.Logger) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Error("Failed to connect to MongoDB", zap.Error(err))
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		log.Error("Failed to ping MongoDB", zap.Error(err))
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Info("Successfully connected and pinged MongoDB", zap.String("database", database))
	return client, client.Database(database), nil
}

func ensureIndexes(coll *mongo.Collection, indexes []mongo.IndexModel, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		// Startup continues; indexes may already exist with other options.
		log.Error("Failed to create indexes", zap.String("collection", coll.Name()), zap.Error(err))
		return
	}
	log.Info("Successfully ensured indexes", zap.String("collection", coll.Name()))
}
