package repositories

import (
	"testing"
	"time"

	"matchboxd_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMatch(t *testing.T, db *gorm.DB, home, away string) *models.Match {
	t.Helper()

	match := &models.Match{
		HomeTeam:  home,
		AwayTeam:  away,
		MatchDate: time.Now().Add(-24 * time.Hour),
		Status:    models.MatchStatusFinished,
	}
	require.NoError(t, db.Create(match).Error)
	return match
}

func TestEngagementRepository_UniquePairConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository()
	user := seedUser(t, db, "alice", "alice@example.com")
	match := seedMatch(t, db, "Arsenal", "Chelsea")

	require.NoError(t, repo.CreateWatched(db, &models.WatchedMatch{UserID: user.ID, MatchID: match.ID}))
	err := repo.CreateWatched(db, &models.WatchedMatch{UserID: user.ID, MatchID: match.ID})
	assert.ErrorIs(t, err, ErrDuplicatePair)

	require.NoError(t, repo.CreateFavorite(db, &models.Favorite{UserID: user.ID, MatchID: match.ID}))
	err = repo.CreateFavorite(db, &models.Favorite{UserID: user.ID, MatchID: match.ID})
	assert.ErrorIs(t, err, ErrDuplicatePair)

	require.NoError(t, repo.CreateWatchlistItem(db, &models.WatchlistItem{UserID: user.ID, MatchID: match.ID}))
	err = repo.CreateWatchlistItem(db, &models.WatchlistItem{UserID: user.ID, MatchID: match.ID})
	assert.ErrorIs(t, err, ErrDuplicatePair)
}

func TestEngagementRepository_SaveRatingUpserts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository()
	user := seedUser(t, db, "alice", "alice@example.com")
	match := seedMatch(t, db, "Arsenal", "Chelsea")

	require.NoError(t, repo.SaveRating(db, &models.Rating{UserID: user.ID, MatchID: match.ID, Score: 3}))

	rating, err := repo.FindRating(db, user.ID, match.ID)
	require.NoError(t, err)
	rating.Score = 4.5
	require.NoError(t, repo.SaveRating(db, rating))

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindRating(db, user.ID, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stored.Score)
}

func TestEngagementRepository_AverageRating(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository()
	match := seedMatch(t, db, "Arsenal", "Chelsea")

	avg, err := repo.AverageRating(db, match.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	require.NoError(t, repo.SaveRating(db, &models.Rating{UserID: alice.ID, MatchID: match.ID, Score: 5}))
	require.NoError(t, repo.SaveRating(db, &models.Rating{UserID: bob.ID, MatchID: match.ID, Score: 2}))

	avg, err = repo.AverageRating(db, match.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 1e-9)
}

func TestEngagementRepository_ReviewedMatchIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository()
	user := seedUser(t, db, "alice", "alice@example.com")
	m1 := seedMatch(t, db, "Arsenal", "Chelsea")
	m2 := seedMatch(t, db, "Lyon", "Nice")
	m3 := seedMatch(t, db, "Ajax", "PSV")

	// m1: rating and comment, m2: rating only, m3: comment only.
	require.NoError(t, repo.SaveRating(db, &models.Rating{UserID: user.ID, MatchID: m1.ID, Score: 4}))
	require.NoError(t, repo.SaveComment(db, &models.Comment{UserID: user.ID, MatchID: m1.ID, Content: "a"}))
	require.NoError(t, repo.SaveRating(db, &models.Rating{UserID: user.ID, MatchID: m2.ID, Score: 3}))
	require.NoError(t, repo.SaveComment(db, &models.Comment{UserID: user.ID, MatchID: m3.ID, Content: "b"}))

	ids, err := repo.ReviewedMatchIDs(db, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{m1.ID, m2.ID, m3.ID}, ids)
}

func TestEngagementRepository_DeleteReportsExistence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository()
	user := seedUser(t, db, "alice", "alice@example.com")
	match := seedMatch(t, db, "Arsenal", "Chelsea")

	require.NoError(t, repo.SaveRating(db, &models.Rating{UserID: user.ID, MatchID: match.ID, Score: 4}))

	deleted, err := repo.DeleteRating(db, user.ID, match.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteRating(db, user.ID, match.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
