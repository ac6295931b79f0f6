package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/threadboard/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment tree documents.
// There is at most one document per posting.
type CommentRepository interface {
	FindByPostingID(ctx context.Context, postingID uint) (*models.CommentTree, bool, error)
	Insert(ctx context.Context, tree *models.CommentTree) error
	Replace(ctx context.Context, tree *models.CommentTree) error
	FindAll(ctx context.Context) ([]models.CommentTree, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database, collection string) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection(collection)}
}

// EnsureIndexes creates the unique postingId index that keeps one tree per posting
func (r *MongoCommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "postingId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("postingId_unique"),
	})
	return err
}

// FindByPostingID loads the tree of a posting. A missing document is reported
// with found == false and a nil error.
func (r *MongoCommentRepository) FindByPostingID(ctx context.Context, postingID uint) (*models.CommentTree, bool, error) {
	var tree models.CommentTree
	err := r.collection.FindOne(ctx, bson.M{"postingId": postingID}).Decode(&tree)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	tree.Normalize()
	return &tree, true, nil
}

// Insert stores a brand new tree at version 1. Losing a race to create the
// posting's first document yields ErrVersionConflict.
func (r *MongoCommentRepository) Insert(ctx context.Context, tree *models.CommentTree) error {
	tree.Normalize()
	tree.Version = 1
	res, err := r.collection.InsertOne(ctx, tree)
	if err != nil {
		tree.Version = 0
		if mongo.IsDuplicateKeyError(err) {
			return ErrVersionConflict
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		tree.ID = id
	}
	return nil
}

// Replace writes the whole tree back if nobody else has written since it was
// loaded, and bumps its version. Nested replies cannot be addressed with a
// field path, so the full document is always replaced.
func (r *MongoCommentRepository) Replace(ctx context.Context, tree *models.CommentTree) error {
	tree.Normalize()
	filter := bson.M{"postingId": tree.PostingID, "version": tree.Version}
	if tree.Version == 0 {
		// A document inserted outside Insert, e.g. by hand, has no version field.
		filter["version"] = bson.M{"$in": bson.A{0, nil}}
	}

	next := *tree
	next.Version = tree.Version + 1
	res, err := r.collection.ReplaceOne(ctx, filter, next)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	tree.Version = next.Version
	return nil
}

// FindAll retrieves every comment tree document
func (r *MongoCommentRepository) FindAll(ctx context.Context) ([]models.CommentTree, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "postingId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trees := []models.CommentTree{}
	if err = cursor.All(ctx, &trees); err != nil {
		return nil, err
	}
	for i := range trees {
		trees[i].Normalize()
	}
	return trees, nil
}
