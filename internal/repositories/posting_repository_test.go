package repositories

import (
	"testing"

	"github.com/anonto42/threadboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without a live server so their SQL can be inspected.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=forum dbname=forum sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestByMemberJoinsThroughLinkTable(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var postings []models.Posting
		return byMember(tx, 7).Find(&postings)
	})

	assert.Contains(t, sql, `FROM "posting"`)
	assert.Contains(t, sql, "JOIN member_posting ON member_posting.posting_id = posting.id")
	assert.Contains(t, sql, "member_posting.member_id = 7")
	assert.Contains(t, sql, "ORDER BY posting.id")
}

func TestLinkMemberTargetsLinkTable(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return linkMember(tx, 2, 5)
	})

	assert.Contains(t, sql, `INSERT INTO "member_posting"`)
	assert.Contains(t, sql, `"member_id","posting_id"`)
	assert.Contains(t, sql, "ON CONFLICT DO NOTHING")
}

func TestGetPostingByIDQuery(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var posting models.Posting
		return tx.First(&posting, 3)
	})

	assert.Contains(t, sql, `FROM "posting" WHERE "posting"."id" = 3`)
	assert.Contains(t, sql, "LIMIT 1")
}
