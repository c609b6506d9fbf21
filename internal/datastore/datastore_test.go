package datastore_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"kindlog/internal/datastore"
	"kindlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, datastore.CreateTableUser(ctx, db))
	require.NoError(t, datastore.CreateTableAction(ctx, db))
	require.NoError(t, datastore.CreateTableClap(ctx, db))
	require.NoError(t, datastore.CreateTableChallenge(ctx, db))
	require.NoError(t, datastore.CreateTableAchievement(ctx, db))
	require.NoError(t, datastore.CreateTableConfig(ctx, db))

	return db
}

func newTestUser(t *testing.T, db *bun.DB, username string) *models.User {
	t.Helper()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	user, err := datastore.CreateUser(context.Background(), db, &models.User{
		Username:    username,
		DisplayName: username,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return user
}

func record(t *testing.T, db *bun.DB, userID int64, category string, at time.Time) (*models.Action, *models.User) {
	t.Helper()

	action, user, err := datastore.RecordAction(context.Background(), db, datastore.RecordActionInput{
		UserID:      userID,
		Category:    category,
		CompletedAt: at,
	})
	require.NoError(t, err)
	return action, user
}

func TestRecordActionLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")

	day1 := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	action, updated := record(t, db, user.ID, models.CategoryFamily, day1)
	assert.NotEmpty(t, action.UUID)
	assert.Equal(t, 1, updated.TotalActions)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 1, updated.LongestStreak)

	// second action the same day counts but leaves the streak alone
	_, updated = record(t, db, user.ID, models.CategoryCommunity, day1.Add(4*time.Hour))
	assert.Equal(t, 2, updated.TotalActions)
	assert.Equal(t, 1, updated.CurrentStreak)

	// next day extends
	_, updated = record(t, db, user.ID, models.CategoryFamily, day1.AddDate(0, 0, 1))
	assert.Equal(t, 3, updated.TotalActions)
	assert.Equal(t, 2, updated.CurrentStreak)
	assert.Equal(t, 2, updated.LongestStreak)

	// a same-day repeat after the extension still keeps the streak
	_, updated = record(t, db, user.ID, models.CategoryStrangers, day1.AddDate(0, 0, 1).Add(time.Hour))
	assert.Equal(t, 2, updated.CurrentStreak)

	// a gap resets current but longest survives
	_, updated = record(t, db, user.ID, models.CategoryFamily, day1.AddDate(0, 0, 4))
	assert.Equal(t, 5, updated.TotalActions)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 2, updated.LongestStreak)
}

func TestRecordActionUnknownUser(t *testing.T) {
	db := newTestDB(t)

	_, _, err := datastore.RecordAction(context.Background(), db, datastore.RecordActionInput{
		UserID:      12345,
		Category:    models.CategoryFamily,
		CompletedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRecordActionBumpsChallenge(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	ctx := context.Background()

	challenge, err := datastore.InsertChallenge(ctx, db, &models.Challenge{
		Title:    "Plant something",
		Category: models.CategoryEnvironment,
		Active:   true,
	})
	require.NoError(t, err)

	_, _, err = datastore.RecordAction(ctx, db, datastore.RecordActionInput{
		UserID:      user.ID,
		ChallengeID: &challenge.ID,
		Category:    models.CategoryEnvironment,
		CompletedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	challenge, err = datastore.FindChallengeByID(ctx, db, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, challenge.TimesUsed)
}

func TestClapDuplicateMovesNothing(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "alice")
	fan := newTestUser(t, db, "bob")
	ctx := context.Background()

	action, _ := record(t, db, owner.ID, models.CategoryFamily, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, datastore.InsertClap(ctx, db, action.ID, fan.ID, owner.ID, at))

	err := datastore.InsertClap(ctx, db, action.ID, fan.ID, owner.ID, at)
	assert.ErrorIs(t, err, datastore.ErrDuplicate)

	stored, err := datastore.FindActionByUUID(ctx, db, action.UUID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ClapsCount)

	ownerRow, err := datastore.FindUserByID(ctx, db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, ownerRow.ClapsReceived)
}

func TestClapRemoveAndReAdd(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "alice")
	fan := newTestUser(t, db, "bob")
	ctx := context.Background()

	action, _ := record(t, db, owner.ID, models.CategoryFamily, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, datastore.InsertClap(ctx, db, action.ID, fan.ID, owner.ID, at))
	require.NoError(t, datastore.DeleteClap(ctx, db, action.ID, fan.ID, owner.ID))

	stored, err := datastore.FindActionByUUID(ctx, db, action.UUID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ClapsCount)

	ownerRow, err := datastore.FindUserByID(ctx, db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, ownerRow.ClapsReceived)

	// removing again is an error and must not push counters negative
	err = datastore.DeleteClap(ctx, db, action.ID, fan.ID, owner.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	ownerRow, err = datastore.FindUserByID(ctx, db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, ownerRow.ClapsReceived)

	// withdrawing does not burn the right to clap again
	require.NoError(t, datastore.InsertClap(ctx, db, action.ID, fan.ID, owner.ID, at.Add(time.Minute)))

	stored, err = datastore.FindActionByUUID(ctx, db, action.UUID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ClapsCount)
}

func TestInsertUserAchievementsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	ctx := context.Background()

	require.NoError(t, datastore.SeedAchievementDefinitions(ctx, db))
	definitions, err := datastore.ListAchievementDefinitions(ctx, db)
	require.NoError(t, err)
	require.NotEmpty(t, definitions)

	grant := []int64{definitions[0].ID, definitions[1].ID}
	earnedAt := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	inserted, err := datastore.InsertUserAchievements(ctx, db, user.ID, grant, earnedAt)
	require.NoError(t, err)
	assert.Len(t, inserted, 2)

	// the second identical grant reports nothing new
	inserted, err = datastore.InsertUserAchievements(ctx, db, user.ID, grant, earnedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inserted, 0)

	// a mixed grant reports only the genuinely new one
	inserted, err = datastore.InsertUserAchievements(ctx, db, user.ID, []int64{definitions[1].ID, definitions[2].ID}, earnedAt.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, definitions[2].ID, inserted[0].AchievementID)

	earned, err := datastore.ListUserAchievements(ctx, db, user.ID)
	require.NoError(t, err)
	assert.Len(t, earned, 3)
}

func TestSeedAchievementDefinitionsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, datastore.SeedAchievementDefinitions(ctx, db))
	require.NoError(t, datastore.SeedAchievementDefinitions(ctx, db))

	definitions, err := datastore.ListAchievementDefinitions(ctx, db)
	require.NoError(t, err)
	assert.Len(t, definitions, len(models.DefaultAchievementCatalog()))
}

func TestGetCategoryBreakdown(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	record(t, db, user.ID, models.CategoryFamily, day)
	record(t, db, user.ID, models.CategoryFamily, day.Add(time.Hour))
	record(t, db, user.ID, models.CategoryCommunity, day.Add(2*time.Hour))

	breakdown, err := datastore.GetCategoryBreakdown(ctx, db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		models.CategoryFamily:    2,
		models.CategoryCommunity: 1,
	}, breakdown)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "alice")

	_, err := datastore.CreateUser(context.Background(), db, &models.User{Username: "Alice"})
	assert.ErrorIs(t, err, datastore.ErrDuplicate)
}
