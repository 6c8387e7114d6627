package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ProductRepository implements domain.ProductRepository. It also writes to the
// users collection to keep liked sets in sync.
type ProductRepository struct {
	client   *mongo.Client
	products *mongo.Collection
	users    *mongo.Collection
	logger   *logger.Logger
}

func NewProductRepository(db *mongo.Database, log *logger.Logger) *ProductRepository {
	l := log.Named("ProductRepository")
	coll := db.Collection(productsCollection)
	ensureIndexes(coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sold", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "seller", Value: 1}, {Key: "createdAt", Value: -1}}},
	}, l)
	return &ProductRepository{
		client:   db.Client(),
		products: coll,
		users:    db.Collection(usersCollection),
		logger:   l,
	}
}

func repoErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrRepository, op, err)
}

// literal matches s as a case-insensitive substring.
func literal(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (r *ProductRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]*domain.Product, error) {
	cursor, err := r.products.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to find products", zap.Error(err))
		return nil, repoErr("db find failed", err)
	}
	defer cursor.Close(ctx)

	var docs []*productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode products", zap.Error(err))
		return nil, repoErr("db cursor all failed", err)
	}
	return toDomainProducts(docs), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	doc, err := fromDomainProduct(p)
	if err != nil {
		return fmt.Errorf("ProductRepository.Create: %w", err)
	}
	doc.ID = primitive.NewObjectID()
	if doc.Likes == nil {
		doc.Likes = []primitive.ObjectID{}
	}
	if doc.Comments == nil {
		doc.Comments = []primitive.ObjectID{}
	}
	if _, err := r.products.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert product", zap.Error(err))
		return repoErr("db insert failed", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := objectID(id, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		r.logger.Error("Failed to get product", zap.String("product_id", id), zap.Error(err))
		return nil, repoErr("db findone failed", err)
	}
	return doc.toDomain(), nil
}

// List returns unsold products. Sold listings never match.
func (r *ProductRepository) List(ctx context.Context, f domain.ProductFilter) ([]*domain.Product, error) {
	query := bson.M{"sold": false}
	if f.Category != "" {
		query["category"] = f.Category
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}
	if f.Search != "" {
		query["title"] = literal(f.Search)
	}

	dir := -1
	if f.Ascending {
		dir = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: f.SortBy, Value: dir}, {Key: "_id", Value: dir}})

	r.logger.Debug("Listing products", zap.Any("query", query), zap.String("sort_by", f.SortBy), zap.Int("dir", dir))
	return r.find(ctx, query, opts)
}

func (r *ProductRepository) ListOwned(ctx context.Context, f domain.OwnedFilter) ([]*domain.Product, int64, error) {
	seller, err := primitive.ObjectIDFromHex(f.SellerID)
	if err != nil {
		return []*domain.Product{}, 0, nil
	}
	query := bson.M{"seller": seller}
	if f.Search != "" {
		rx := literal(f.Search)
		query["$or"] = bson.A{bson.M{"title": rx}, bson.M{"category": rx}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(f.Skip()).
		SetLimit(int64(f.Limit))
	products, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.products.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count owned products", zap.String("seller_id", f.SellerID), zap.Error(err))
		return nil, 0, repoErr("db count failed", err)
	}
	return products, total, nil
}

func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	seller, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return []*domain.Product{}, nil
	}
	return r.find(ctx, bson.M{"seller": seller}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *ProductRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Product{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	oid, err := objectID(id, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	var doc productDocument
	err = r.products.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		r.logger.Error("Failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, repoErr("db update failed", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrProductNotFound)
	if err != nil {
		return err
	}
	res, err := r.products.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete product", zap.String("product_id", id), zap.Error(err))
		return repoErr("db delete failed", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}

	pulled, err := r.users.UpdateMany(ctx, bson.M{"likedProducts": oid}, bson.M{"$pull": bson.M{"likedProducts": oid}})
	if err != nil {
		r.logger.Error("Product deleted but liked sets not cleaned", zap.String("product_id", id), zap.Error(err))
		return repoErr("db pull liked failed", err)
	}
	r.logger.Info("Product deleted", zap.String("product_id", id), zap.Int64("liked_sets_cleaned", pulled.ModifiedCount))
	return nil
}

func (r *ProductRepository) ToggleSold(ctx context.Context, id string) (bool, error) {
	oid, err := objectID(id, domain.ErrProductNotFound)
	if err != nil {
		return false, err
	}
	flip := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "sold", Value: bson.D{{Key: "$not", Value: bson.A{"$sold"}}}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}
	var doc productDocument
	err = r.products.FindOneAndUpdate(ctx, bson.M{"_id": oid}, flip,
		options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(bson.M{"sold": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, domain.ErrProductNotFound
		}
		r.logger.Error("Failed to toggle sold", zap.String("product_id", id), zap.Error(err))
		return false, repoErr("db toggle sold failed", err)
	}
	return doc.Sold, nil
}

// ToggleLike flips the user on the product's likes and the product on the
// user's likedProducts inside one transaction. Requires a replica set.
func (r *ProductRepository) ToggleLike(ctx context.Context, productID, userID string) (*domain.LikeResult, error) {
	pid, err := objectID(productID, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	uid, err := objectID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, repoErr("start session failed", err)
	}
	defer session.EndSession(ctx)

	out, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var current productDocument
		err := r.products.FindOne(sc, bson.M{"_id": pid}, options.FindOne().SetProjection(bson.M{"likes": 1})).Decode(&current)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrProductNotFound
			}
			return nil, err
		}

		liked := !containsID(current.Likes, uid)
		op := "$pull"
		if liked {
			op = "$addToSet"
		}

		var after productDocument
		err = r.products.FindOneAndUpdate(sc, bson.M{"_id": pid}, bson.M{op: bson.M{"likes": uid}},
			options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(bson.M{"likes": 1})).Decode(&after)
		if err != nil {
			return nil, err
		}
		res, err := r.users.UpdateOne(sc, bson.M{"_id": uid}, bson.M{op: bson.M{"likedProducts": pid}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrUserNotFound
		}
		return &domain.LikeResult{Liked: liked, LikesCount: len(after.Likes)}, nil
	})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		r.logger.Error("Like transaction failed", zap.String("product_id", productID), zap.String("user_id", userID), zap.Error(err))
		return nil, repoErr("like transaction failed", err)
	}
	return out.(*domain.LikeResult), nil
}

// PrependComment puts commentID at the head of the product's comment list.
func (r *ProductRepository) PrependComment(ctx context.Context, productID, commentID string) error {
	pid, err := objectID(productID, domain.ErrProductNotFound)
	if err != nil {
		return err
	}
	cid, err := objectID(commentID, domain.ErrCommentNotFound)
	if err != nil {
		return err
	}
	res, err := r.products.UpdateOne(ctx, bson.M{"_id": pid}, bson.M{
		"$push": bson.M{"comments": bson.M{"$each": bson.A{cid}, "$position": 0}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		r.logger.Error("Failed to prepend comment", zap.String("product_id", productID), zap.Error(err))
		return repoErr("db push comment failed", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
