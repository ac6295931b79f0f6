package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/threadboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const commentsNS = "forum.comments"

func commentDoc(postingID int64, version int64, comments bson.A) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "postingId", Value: postingID},
		{Key: "comments", Value: comments},
		{Key: "version", Value: version},
	}
}

func TestMongoCommentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find missing tree", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, commentsNS, mtest.FirstBatch))

		tree, found, err := repo.FindByPostingID(ctx, 1)
		require.NoError(mt, err)
		assert.False(mt, found)
		assert.Nil(mt, tree)
	})

	mt.Run("find existing tree", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		doc := commentDoc(1, 4, bson.A{
			bson.D{
				{Key: "id", Value: "5c0be855fd54967195a9d467"},
				{Key: "content", Value: "That's wonderful!"},
				{Key: "comments", Value: bson.A{
					bson.D{{Key: "id", Value: "5c0bf4b7fd54967b9af13a63"}, {Key: "content", Value: "Good luck to them."}},
				}},
			},
		})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, commentsNS, mtest.FirstBatch, doc))

		tree, found, err := repo.FindByPostingID(ctx, 1)
		require.NoError(mt, err)
		require.True(mt, found)
		assert.Equal(mt, uint(1), tree.PostingID)
		assert.Equal(mt, int64(4), tree.Version)
		require.Len(mt, tree.Comments, 1)
		reply := tree.Comments[0].Comments[0]
		assert.Equal(mt, "Good luck to them.", reply.Content)
		assert.NotNil(mt, reply.Comments)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		filter := evt.Command.Lookup("filter", "postingId")
		assert.Equal(mt, int64(1), filter.AsInt64())
	})

	mt.Run("find propagates store errors", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad filter",
		}))

		_, found, err := repo.FindByPostingID(ctx, 1)
		assert.Error(mt, err)
		assert.False(mt, found)
	})

	mt.Run("insert sets version one", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		tree := &models.CommentTree{PostingID: 9, Comments: []models.Comment{models.NewComment("hi")}}
		require.NoError(mt, repo.Insert(ctx, tree))
		assert.Equal(mt, int64(1), tree.Version)
		assert.False(mt, tree.ID.IsZero())

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
		assert.Equal(mt, "hi", evt.Command.Lookup("documents", "0", "comments", "0", "content").StringValue())
	})

	mt.Run("insert duplicate posting is a conflict", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		tree := &models.CommentTree{PostingID: 9, Comments: []models.Comment{models.NewComment("hi")}}
		err := repo.Insert(ctx, tree)
		assert.ErrorIs(mt, err, ErrVersionConflict)
		assert.Equal(mt, int64(0), tree.Version)
	})

	mt.Run("replace bumps version", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		tree := &models.CommentTree{PostingID: 3, Comments: []models.Comment{models.NewComment("a")}, Version: 2}
		require.NoError(mt, repo.Replace(ctx, tree))
		assert.Equal(mt, int64(3), tree.Version)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		assert.Equal(mt, int64(2), evt.Command.Lookup("updates", "0", "q", "version").AsInt64())
		assert.Equal(mt, int64(3), evt.Command.Lookup("updates", "0", "u", "version").AsInt64())
	})

	mt.Run("replace of unversioned document", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		tree := &models.CommentTree{PostingID: 3}
		require.NoError(mt, repo.Replace(ctx, tree))
		assert.Equal(mt, int64(1), tree.Version)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		_, err := evt.Command.LookupErr("updates", "0", "q", "version", "$in")
		assert.NoError(mt, err)
	})

	mt.Run("replace of stale version is a conflict", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		tree := &models.CommentTree{PostingID: 3, Version: 5}
		err := repo.Replace(ctx, tree)
		assert.ErrorIs(mt, err, ErrVersionConflict)
		assert.Equal(mt, int64(5), tree.Version)
	})

	mt.Run("find all", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, commentsNS, mtest.FirstBatch,
			commentDoc(1, 1, bson.A{bson.D{{Key: "id", Value: "a"}, {Key: "content", Value: "x"}}}),
			commentDoc(2, 7, bson.A{}),
		))

		trees, err := repo.FindAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, trees, 2)
		assert.Equal(mt, uint(1), trees[0].PostingID)
		assert.Equal(mt, "x", trees[0].Comments[0].Content)
		assert.NotNil(mt, trees[0].Comments[0].Comments)
		assert.Equal(mt, uint(2), trees[1].PostingID)
		assert.Empty(mt, trees[1].Comments)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB, "comments")
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.EnsureIndexes(ctx))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "createIndexes", evt.CommandName)
		assert.True(mt, evt.Command.Lookup("indexes", "0", "unique").Boolean())
	})
}
