package services

import (
	"testing"

	"matchboxd_backend/internal/appErrors"
	"matchboxd_backend/internal/models"
	"matchboxd_backend/internal/repositories"
	"matchboxd_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEngagementService() EngagementService {
	return NewEngagementService(repositories.NewMatchRepository(), repositories.NewEngagementRepository())
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func countRows(t *testing.T, db *gorm.DB, model interface{}, userID, matchID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).
		Where("user_id = ? AND match_id = ?", userID, matchID).
		Count(&count).Error)
	return count
}

func TestEngagementService_RateOrComment(t *testing.T) {
	t.Run("rating and comment on a finished match", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)

		err := svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{
			Score:   floatPtr(4.5),
			Content: strPtr("What a comeback"),
		})
		require.NoError(t, err)

		var rating models.Rating
		require.NoError(t, db.Where("user_id = ? AND match_id = ?", user.ID, match.ID).First(&rating).Error)
		assert.Equal(t, 4.5, rating.Score)

		var comment models.Comment
		require.NoError(t, db.Where("user_id = ? AND match_id = ?", user.ID, match.ID).First(&comment).Error)
		assert.Equal(t, "What a comeback", comment.Content)

		assert.Equal(t, int64(1), countRows(t, db, &models.WatchedMatch{}, user.ID, match.ID))
	})

	t.Run("comment blocked before the match is finished", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		for _, status := range []string{models.MatchStatusScheduled, models.MatchStatusLive} {
			match := createTestMatch(t, db, "Home", "Away "+status, status)

			err := svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{
				Content: strPtr("too soon"),
			})
			assert.ErrorIs(t, err, appErrors.ErrCommentTooEarly, status)
		}
	})

	t.Run("rating alone allowed on a scheduled match", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusScheduled)

		err := svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{Score: floatPtr(3)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), countRows(t, db, &models.WatchedMatch{}, user.ID, match.ID))
	})

	t.Run("score-only repeated keeps a single watched row", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)

		require.NoError(t, svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{Score: floatPtr(3)}))
		require.NoError(t, svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{Score: floatPtr(4)}))

		assert.Equal(t, int64(1), countRows(t, db, &models.WatchedMatch{}, user.ID, match.ID))
		assert.Equal(t, int64(1), countRows(t, db, &models.Rating{}, user.ID, match.ID))

		var rating models.Rating
		require.NoError(t, db.Where("user_id = ? AND match_id = ?", user.ID, match.ID).First(&rating).Error)
		assert.Equal(t, 4.0, rating.Score)
	})

	t.Run("neither score nor content", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)

		err := svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{})
		require.Error(t, err)

		err = svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{Content: strPtr("   ")})
		require.Error(t, err)
	})

	t.Run("unknown match", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		err := svc.RateOrComment(db, user.ID, 999, &dto.RateCommentRequest{Score: floatPtr(3)})
		assert.ErrorIs(t, err, appErrors.ErrMatchNotFound)
	})
}

func TestEngagementService_Toggles(t *testing.T) {
	db := setupTestDB(t)
	svc := newEngagementService()
	user := createTestUser(t, db, "alice", "alice@example.com", true)
	match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)

	type toggleFn func(db *gorm.DB, userID, matchID uint) (*dto.ToggleResult, error)

	cases := []struct {
		name   string
		toggle toggleFn
		model  interface{}
	}{
		{"watched", svc.ToggleWatched, &models.WatchedMatch{}},
		{"favorite", svc.ToggleFavorite, &models.Favorite{}},
		{"watchlist", svc.ToggleWatchlist, &models.WatchlistItem{}},
	}

	for _, tc := range cases {
		t.Run(tc.name+" round trip", func(t *testing.T) {
			result, err := tc.toggle(db, user.ID, match.ID)
			require.NoError(t, err)
			assert.True(t, result.Active)
			assert.Equal(t, int64(1), countRows(t, db, tc.model, user.ID, match.ID))

			result, err = tc.toggle(db, user.ID, match.ID)
			require.NoError(t, err)
			assert.False(t, result.Active)
			assert.Equal(t, int64(0), countRows(t, db, tc.model, user.ID, match.ID))
		})

		t.Run(tc.name+" unknown match", func(t *testing.T) {
			_, err := tc.toggle(db, user.ID, 999)
			assert.ErrorIs(t, err, appErrors.ErrMatchNotFound)
		})
	}
}

func TestEngagementService_MatchSummary(t *testing.T) {
	t.Run("average is the arithmetic mean", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)

		alice := createTestUser(t, db, "alice", "alice@example.com", true)
		bob := createTestUser(t, db, "bob", "bob@example.com", true)
		carol := createTestUser(t, db, "carol", "carol@example.com", true)

		require.NoError(t, svc.RateOrComment(db, alice.ID, match.ID, &dto.RateCommentRequest{Score: floatPtr(5)}))
		require.NoError(t, svc.RateOrComment(db, bob.ID, match.ID, &dto.RateCommentRequest{Score: floatPtr(4)}))
		require.NoError(t, svc.RateOrComment(db, carol.ID, match.ID, &dto.RateCommentRequest{
			Content: strPtr("Great game"),
		}))

		summary, err := svc.GetMatchSummary(db, match.ID)
		require.NoError(t, err)

		assert.InDelta(t, 4.5, summary.AverageRating, 1e-9)
		assert.Equal(t, int64(1), summary.TotalComments)
		assert.Equal(t, int64(3), summary.WatchCount)
	})

	t.Run("empty match averages to zero", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusScheduled)

		summary, err := svc.GetMatchSummary(db, match.ID)
		require.NoError(t, err)

		assert.Zero(t, summary.AverageRating)
		assert.Zero(t, summary.TotalComments)
		assert.Zero(t, summary.WatchCount)
	})

	t.Run("detail lists ratings and comments with authors", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)
		alice := createTestUser(t, db, "alice", "alice@example.com", true)

		require.NoError(t, svc.RateOrComment(db, alice.ID, match.ID, &dto.RateCommentRequest{
			Score:   floatPtr(4.5),
			Content: strPtr("Tense finish"),
		}))

		detail, err := svc.GetMatchDetail(db, match.ID)
		require.NoError(t, err)

		require.Len(t, detail.Ratings, 1)
		assert.Equal(t, "alice", detail.Ratings[0].Username)
		assert.Equal(t, 4.5, detail.Ratings[0].Score)
		require.Len(t, detail.Comments, 1)
		assert.Equal(t, "Tense finish", detail.Comments[0].Content)
	})

	t.Run("unknown match", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()

		_, err := svc.GetMatchSummary(db, 999)
		assert.ErrorIs(t, err, appErrors.ErrMatchNotFound)

		_, err = svc.GetMatchComments(db, 999)
		assert.ErrorIs(t, err, appErrors.ErrMatchNotFound)
	})
}

func TestEngagementService_UserViews(t *testing.T) {
	t.Run("diary carries own state per watched match", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		rated := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)
		watchedOnly := createTestMatch(t, db, "Lyon", "Nice", models.MatchStatusFinished)

		require.NoError(t, svc.RateOrComment(db, user.ID, rated.ID, &dto.RateCommentRequest{
			Score:   floatPtr(4),
			Content: strPtr("Solid"),
		}))
		_, err := svc.ToggleWatched(db, user.ID, watchedOnly.ID)
		require.NoError(t, err)
		_, err = svc.ToggleFavorite(db, user.ID, rated.ID)
		require.NoError(t, err)

		entries, err := svc.GetUserDiary(db, user.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		byMatch := map[uint]dto.DiaryEntry{}
		for _, e := range entries {
			byMatch[e.MatchID] = e
		}

		ratedEntry := byMatch[rated.ID]
		require.NotNil(t, ratedEntry.Score)
		assert.Equal(t, 4.0, *ratedEntry.Score)
		require.NotNil(t, ratedEntry.Comment)
		assert.Equal(t, "Solid", *ratedEntry.Comment)
		assert.True(t, ratedEntry.Favorite)

		plainEntry := byMatch[watchedOnly.ID]
		assert.Nil(t, plainEntry.Score)
		assert.Nil(t, plainEntry.Comment)
		assert.False(t, plainEntry.Favorite)
	})

	t.Run("reviews merge rating and comment per match", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		both := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)
		ratingOnly := createTestMatch(t, db, "Lyon", "Nice", models.MatchStatusFinished)

		require.NoError(t, svc.RateOrComment(db, user.ID, both.ID, &dto.RateCommentRequest{
			Score:   floatPtr(4.5),
			Content: strPtr("Classic"),
		}))
		require.NoError(t, svc.RateOrComment(db, user.ID, ratingOnly.ID, &dto.RateCommentRequest{
			Score: floatPtr(2),
		}))

		reviews, err := svc.GetUserReviews(db, user.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 2)

		byMatch := map[uint]dto.Review{}
		for _, r := range reviews {
			byMatch[r.MatchID] = r
		}

		full := byMatch[both.ID]
		require.NotNil(t, full.Score)
		assert.Equal(t, 4.5, *full.Score)
		require.NotNil(t, full.Comment)
		assert.Equal(t, "Classic", *full.Comment)
		require.NotNil(t, full.ReviewedAt)

		partial := byMatch[ratingOnly.ID]
		require.NotNil(t, partial.Score)
		assert.Nil(t, partial.Comment)
	})

	t.Run("remove review deletes rating and comment but keeps watched", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)

		require.NoError(t, svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{
			Score:   floatPtr(4),
			Content: strPtr("Solid"),
		}))

		require.NoError(t, svc.RemoveReview(db, user.ID, match.ID))

		assert.Equal(t, int64(0), countRows(t, db, &models.Rating{}, user.ID, match.ID))
		assert.Equal(t, int64(0), countRows(t, db, &models.Comment{}, user.ID, match.ID))
		assert.Equal(t, int64(1), countRows(t, db, &models.WatchedMatch{}, user.ID, match.ID))

		err := svc.RemoveReview(db, user.ID, match.ID)
		assert.ErrorIs(t, err, appErrors.ErrReviewNotFound)
	})

	t.Run("favorites and watchlist views", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		favMatch := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)
		listMatch := createTestMatch(t, db, "Lyon", "Nice", models.MatchStatusScheduled)

		_, err := svc.ToggleFavorite(db, user.ID, favMatch.ID)
		require.NoError(t, err)
		_, err = svc.ToggleWatchlist(db, user.ID, listMatch.ID)
		require.NoError(t, err)

		favorites, err := svc.GetUserFavorites(db, user.ID)
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, favMatch.ID, favorites[0].MatchID)
		assert.Equal(t, "Arsenal", favorites[0].HomeTeam)

		watchlist, err := svc.GetWatchlist(db, user.ID)
		require.NoError(t, err)
		require.Len(t, watchlist, 1)
		assert.Equal(t, listMatch.ID, watchlist[0].ID)
		assert.Equal(t, models.MatchStatusScheduled, watchlist[0].Status)
	})

	t.Run("empty views return empty slices", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newEngagementService()
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		diary, err := svc.GetUserDiary(db, user.ID)
		require.NoError(t, err)
		assert.Empty(t, diary)

		reviews, err := svc.GetUserReviews(db, user.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})
}

func TestEngagementService_UpdateRateOrComment(t *testing.T) {
	db := setupTestDB(t)
	svc := newEngagementService()
	user := createTestUser(t, db, "alice", "alice@example.com", true)
	match := createTestMatch(t, db, "Arsenal", "Chelsea", models.MatchStatusFinished)

	require.NoError(t, svc.RateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{
		Score:   floatPtr(3),
		Content: strPtr("Decent"),
	}))

	require.NoError(t, svc.UpdateRateOrComment(db, user.ID, match.ID, &dto.RateCommentRequest{
		Score:   floatPtr(4.5),
		Content: strPtr("Better on rewatch"),
	}))

	var rating models.Rating
	require.NoError(t, db.Where("user_id = ? AND match_id = ?", user.ID, match.ID).First(&rating).Error)
	assert.Equal(t, 4.5, rating.Score)

	var comment models.Comment
	require.NoError(t, db.Where("user_id = ? AND match_id = ?", user.ID, match.ID).First(&comment).Error)
	assert.Equal(t, "Better on rewatch", comment.Content)

	assert.Equal(t, int64(1), countRows(t, db, &models.Rating{}, user.ID, match.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.Comment{}, user.ID, match.ID))
}
