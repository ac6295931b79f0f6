package models

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func sampleTree() CommentTree {
	return CommentTree{
		PostingID: 42,
		Comments: []Comment{
			{
				ID:      "5c0be855fd54967195a9d467",
				Content: "That's wonderful!",
				Comments: []Comment{
					{ID: "5c0bf4b7fd54967b9af13a63", Content: "Good luck to them.", Comments: []Comment{}},
				},
			},
			{
				ID:      "5c0be86afd54967195a9d469",
				Content: "Where in Peru, if you don't mind?",
				Comments: []Comment{
					{ID: "5c0bf475fd54967b9af13a60", Content: "Just outside Lima, actually.", Comments: []Comment{}},
					{
						ID:      "5c0bf484fd54967b9af13a61",
						Content: "What a nice spot.",
						Comments: []Comment{
							{ID: "5c0bf49cfd54967b9af13a62", Content: "It really is lovely.", Comments: []Comment{}},
						},
					},
				},
			},
		},
		Version: 3,
	}
}

func TestNewComment(t *testing.T) {
	c := NewComment("hi")

	assert.Equal(t, "hi", c.Content)
	assert.NotNil(t, c.Comments)
	assert.Empty(t, c.Comments)
	assert.Len(t, c.ID, 24)
	assert.Equal(t, url.PathEscape(c.ID), c.ID)
	assert.NotEqual(t, c.ID, NewComment("hi").ID)
}

func TestCommentWireFormat(t *testing.T) {
	data, err := json.Marshal(NewComment("hi"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "comments")
	assert.NotContains(t, raw, "children")
	assert.Equal(t, []any{}, raw["comments"])
}

func TestCommentTreeJSONRoundTrip(t *testing.T) {
	tree := sampleTree()

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"postingId":42`)
	assert.NotContains(t, string(data), `"_id"`)

	var decoded CommentTree
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tree, decoded)
}

func TestCommentTreeBSONRoundTrip(t *testing.T) {
	tree := sampleTree()

	data, err := bson.Marshal(tree)
	require.NoError(t, err)

	var decoded CommentTree
	require.NoError(t, bson.Unmarshal(data, &decoded))
	decoded.Normalize()
	assert.Equal(t, tree, decoded)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(data, &doc))
	assert.Contains(t, doc, "postingId")
	assert.Contains(t, doc, "comments")
}

func TestNormalizeFillsNilReplies(t *testing.T) {
	tree := CommentTree{
		Comments: []Comment{
			{ID: "a", Comments: []Comment{{ID: "b"}}},
			{ID: "c"},
		},
	}
	tree.Normalize()

	assert.NotNil(t, tree.Comments[0].Comments[0].Comments)
	assert.NotNil(t, tree.Comments[1].Comments)

	empty := CommentTree{}
	empty.Normalize()
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"comments":[]`)
}
