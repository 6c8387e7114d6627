package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type CommentRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewCommentRepository(db *mongo.Database, log *logger.Logger) *CommentRepository {
	l := log.Named("CommentRepository")
	coll := db.Collection(commentsCollection)
	ensureIndexes(coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "product", Value: 1}, {Key: "createdAt", Value: -1}}},
	}, l)
	return &CommentRepository{collection: coll, logger: l}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	doc, err := fromDomainComment(c)
	if err != nil {
		return fmt.Errorf("CommentRepository.Create: %w", err)
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert comment", zap.String("product_id", c.ProductID), zap.Error(err))
		return repoErr("db insert failed", err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := objectID(id, domain.ErrCommentNotFound)
	if err != nil {
		return nil, err
	}
	var doc commentDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		r.logger.Error("Failed to get comment", zap.String("comment_id", id), zap.Error(err))
		return nil, repoErr("db findone failed", err)
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Comment{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		r.logger.Error("Failed to find comments", zap.Error(err))
		return nil, repoErr("db find failed", err)
	}
	defer cursor.Close(ctx)

	var docs []*commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, repoErr("db cursor all failed", err)
	}
	byID := make(map[primitive.ObjectID]*commentDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	// $in does not keep order; rebuild it from the product's list.
	out := make([]*domain.Comment, 0, len(docs))
	for _, oid := range oids {
		if d, ok := byID[oid]; ok {
			out = append(out, d.toDomain())
		}
	}
	return out, nil
}

func (r *CommentRepository) AppendReply(ctx context.Context, commentID string, reply domain.Reply) (*domain.Comment, error) {
	oid, err := objectID(commentID, domain.ErrCommentNotFound)
	if err != nil {
		return nil, err
	}
	rd, err := fromDomainReply(reply)
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.AppendReply: %w", err)
	}

	var doc commentDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"replies": rd}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		r.logger.Error("Failed to append reply", zap.String("comment_id", commentID), zap.Error(err))
		return nil, repoErr("db push reply failed", err)
	}
	return doc.toDomain(), nil
}
