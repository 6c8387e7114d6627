package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// UserRepository implements domain.UserRepository on the users collection.
type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	l := log.Named("UserRepository")
	coll := db.Collection(usersCollection)
	ensureIndexes(coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}, l)
	return &UserRepository{collection: coll, logger: l}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.LikedProducts == nil {
		u.LikedProducts = []string{}
	}

	doc, err := fromDomainUser(u)
	if err != nil {
		return fmt.Errorf("UserRepository.Create: %w", err)
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate email on user creation", zap.String("email", u.Email))
			return domain.ErrEmailTaken
		}
		r.logger.Error("Failed to insert user", zap.Error(err))
		return fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}
	u.ID = doc.ID.Hex()
	r.logger.Info("User created", zap.String("user_id", u.ID))
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		r.logger.Error("Failed to find users by ids", zap.Error(err))
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) update(ctx context.Context, id string, set bson.M) error {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	set["updatedAt"] = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("Failed to update user", zap.String("user_id", id), zap.Error(err))
		return fmt.Errorf("%w: db update failed: %v", domain.ErrRepository, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateSettings(ctx context.Context, id string, settings domain.UserSettings) error {
	return r.update(ctx, id, bson.M{"settings": settingsDocument{Phone: settings.Phone, Address: settings.Address}})
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id string, avatar string) error {
	return r.update(ctx, id, bson.M{"avatar": avatar})
}
