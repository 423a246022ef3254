package services

import (
	"strings"
	"time"

	"matchboxd_backend/internal/appErrors"
	"matchboxd_backend/internal/models"
	"matchboxd_backend/internal/repositories"
	"matchboxd_backend/internal/services/dto"

	"gorm.io/gorm"
)

// EngagementService reads and writes the five engagement record kinds keyed
// by (userID, matchID) and computes the derived per-match and per-user views.
// Rating or commenting entails a watched row; nothing else is implied.
type EngagementService interface {
	RateOrComment(db *gorm.DB, userID, matchID uint, req *dto.RateCommentRequest) error
	UpdateRateOrComment(db *gorm.DB, userID, matchID uint, req *dto.RateCommentRequest) error

	ToggleWatched(db *gorm.DB, userID, matchID uint) (*dto.ToggleResult, error)
	ToggleFavorite(db *gorm.DB, userID, matchID uint) (*dto.ToggleResult, error)
	ToggleWatchlist(db *gorm.DB, userID, matchID uint) (*dto.ToggleResult, error)
	HasWatched(db *gorm.DB, userID, matchID uint) (bool, error)
	HasFavorited(db *gorm.DB, userID, matchID uint) (bool, error)

	ListMatches(db *gorm.DB) ([]dto.MatchSummary, error)
	GetMatchSummary(db *gorm.DB, matchID uint) (*dto.MatchSummary, error)
	GetMatchDetail(db *gorm.DB, matchID uint) (*dto.MatchDetail, error)
	GetMatchComments(db *gorm.DB, matchID uint) ([]dto.CommentEntry, error)

	GetUserDiary(db *gorm.DB, userID uint) ([]dto.DiaryEntry, error)
	GetUserReviews(db *gorm.DB, userID uint) ([]dto.Review, error)
	RemoveReview(db *gorm.DB, userID, matchID uint) error
	GetUserFavorites(db *gorm.DB, userID uint) ([]dto.FavoriteMatch, error)
	GetWatchlist(db *gorm.DB, userID uint) ([]dto.MatchSummary, error)
}

type EngagementServiceImpl struct {
	matchRepo      repositories.MatchRepository
	engagementRepo repositories.EngagementRepository
}

func NewEngagementService(
	matchRepo repositories.MatchRepository,
	engagementRepo repositories.EngagementRepository,
) EngagementService {
	return &EngagementServiceImpl{
		matchRepo:      matchRepo,
		engagementRepo: engagementRepo,
	}
}

// RateOrComment stores the user's rating and/or comment for the match and
// marks it watched. Comments require a finished match; ratings do not.
// Ratings and comments are upserted, so at most one row per (user, match)
// pair exists for each kind.
func (s *EngagementServiceImpl) RateOrComment(db *gorm.DB, userID, matchID uint, req *dto.RateCommentRequest) error {
	content := trimmedContent(req)
	if req.Score == nil && content == "" {
		return appErrors.BadRequest("Either a rating or comment must be provided")
	}

	match, err := s.matchRepo.FindByID(db, matchID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrMatchNotFound) {
			return appErrors.ErrMatchNotFound
		}
		return appErrors.InternalError(err)
	}

	if content != "" && !match.Finished() {
		return appErrors.ErrCommentTooEarly
	}

	return s.applyRateComment(db, userID, matchID, req.Score, content)
}

// UpdateRateOrComment refreshes an existing rating/comment in place or
// inserts one, and ensures the watched row exists. Unlike the create path it
// does not gate the comment on match status; the review already exists.
func (s *EngagementServiceImpl) UpdateRateOrComment(db *gorm.DB, userID, matchID uint, req *dto.RateCommentRequest) error {
	content := trimmedContent(req)
	if req.Score == nil && content == "" {
		return appErrors.BadRequest("Either a rating or comment must be provided")
	}

	exists, err := s.matchRepo.Exists(db, matchID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if !exists {
		return appErrors.ErrMatchNotFound
	}

	return s.applyRateComment(db, userID, matchID, req.Score, content)
}

func (s *EngagementServiceImpl) applyRateComment(db *gorm.DB, userID, matchID uint, score *float64, content string) error {
	if score != nil {
		if err := s.upsertRating(db, userID, matchID, *score); err != nil {
			return err
		}
	}

	if content != "" {
		if err := s.upsertComment(db, userID, matchID, content); err != nil {
			return err
		}
	}

	return s.ensureWatched(db, userID, matchID)
}

func (s *EngagementServiceImpl) upsertRating(db *gorm.DB, userID, matchID uint, score float64) error {
	rating, err := s.engagementRepo.FindRating(db, userID, matchID)
	switch {
	case err == nil:
		rating.Score = score
		rating.CreatedAt = time.Now()
	case appErrors.Is(err, repositories.ErrEngagementNotFound):
		rating = &models.Rating{UserID: userID, MatchID: matchID, Score: score}
	default:
		return appErrors.InternalError(err)
	}

	if err := s.engagementRepo.SaveRating(db, rating); err != nil {
		if appErrors.Is(err, repositories.ErrDuplicatePair) {
			return appErrors.Conflict("Rating already exists for this match")
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *EngagementServiceImpl) upsertComment(db *gorm.DB, userID, matchID uint, content string) error {
	comment, err := s.engagementRepo.FindComment(db, userID, matchID)
	switch {
	case err == nil:
		comment.Content = content
		comment.CreatedAt = time.Now()
	case appErrors.Is(err, repositories.ErrEngagementNotFound):
		comment = &models.Comment{UserID: userID, MatchID: matchID, Content: content}
	default:
		return appErrors.InternalError(err)
	}

	if err := s.engagementRepo.SaveComment(db, comment); err != nil {
		if appErrors.Is(err, repositories.ErrDuplicatePair) {
			return appErrors.Conflict("Comment already exists for this match")
		}
		return appErrors.InternalError(err)
	}
	return nil
}

// ensureWatched inserts the watched row if absent. A duplicate-key failure
// means a concurrent writer got there first, which is the same outcome.
func (s *EngagementServiceImpl) ensureWatched(db *gorm.DB, userID, matchID uint) error {
	watched, err := s.engagementRepo.HasWatched(db, userID, matchID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if watched {
		return nil
	}

	err = s.engagementRepo.CreateWatched(db, &models.WatchedMatch{UserID: userID, MatchID: matchID})
	if err != nil && !appErrors.Is(err, repositories.ErrDuplicatePair) {
		return appErrors.InternalError(err)
	}
	return nil
}

// --- Toggles ---

func (s *EngagementServiceImpl) ToggleWatched(db *gorm.DB, userID, matchID uint) (*dto.ToggleResult, error) {
	if err := s.requireMatch(db, matchID); err != nil {
		return nil, err
	}

	watched, err := s.engagementRepo.HasWatched(db, userID, matchID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	if watched {
		if _, err := s.engagementRepo.DeleteWatched(db, userID, matchID); err != nil {
			return nil, appErrors.InternalError(err)
		}
		return &dto.ToggleResult{Active: false}, nil
	}

	err = s.engagementRepo.CreateWatched(db, &models.WatchedMatch{UserID: userID, MatchID: matchID})
	if err != nil {
		if appErrors.Is(err, repositories.ErrDuplicatePair) {
			return nil, appErrors.Conflict("Match is already marked as watched")
		}
		return nil, appErrors.InternalError(err)
	}
	return &dto.ToggleResult{Active: true}, nil
}

func (s *EngagementServiceImpl) ToggleFavorite(db *gorm.DB, userID, matchID uint) (*dto.ToggleResult, error) {
	if err := s.requireMatch(db, matchID); err != nil {
		return nil, err
	}

	favorited, err := s.engagementRepo.HasFavorite(db, userID, matchID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	if favorited {
		if _, err := s.engagementRepo.DeleteFavorite(db, userID, matchID); err != nil {
			return nil, appErrors.InternalError(err)
		}
		return &dto.ToggleResult{Active: false}, nil
	}

	err = s.engagementRepo.CreateFavorite(db, &models.Favorite{UserID: userID, MatchID: matchID})
	if err != nil {
		if appErrors.Is(err, repositories.ErrDuplicatePair) {
			return nil, appErrors.Conflict("Match is already in favorites")
		}
		return nil, appErrors.InternalError(err)
	}
	return &dto.ToggleResult{Active: true}, nil
}

func (s *EngagementServiceImpl) ToggleWatchlist(db *gorm.DB, userID, matchID uint) (*dto.ToggleResult, error) {
	if err := s.requireMatch(db, matchID); err != nil {
		return nil, err
	}

	listed, err := s.engagementRepo.HasWatchlistItem(db, userID, matchID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	if listed {
		if _, err := s.engagementRepo.DeleteWatchlistItem(db, userID, matchID); err != nil {
			return nil, appErrors.InternalError(err)
		}
		return &dto.ToggleResult{Active: false}, nil
	}

	err = s.engagementRepo.CreateWatchlistItem(db, &models.WatchlistItem{UserID: userID, MatchID: matchID})
	if err != nil {
		if appErrors.Is(err, repositories.ErrDuplicatePair) {
			return nil, appErrors.Conflict("Match is already in your watchlist")
		}
		return nil, appErrors.InternalError(err)
	}
	return &dto.ToggleResult{Active: true}, nil
}

func (s *EngagementServiceImpl) HasWatched(db *gorm.DB, userID, matchID uint) (bool, error) {
	watched, err := s.engagementRepo.HasWatched(db, userID, matchID)
	if err != nil {
		return false, appErrors.InternalError(err)
	}
	return watched, nil
}

func (s *EngagementServiceImpl) HasFavorited(db *gorm.DB, userID, matchID uint) (bool, error) {
	favorited, err := s.engagementRepo.HasFavorite(db, userID, matchID)
	if err != nil {
		return false, appErrors.InternalError(err)
	}
	return favorited, nil
}

// --- Match views ---

func (s *EngagementServiceImpl) ListMatches(db *gorm.DB) ([]dto.MatchSummary, error) {
	matches, err := s.matchRepo.FindAll(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	summaries := make([]dto.MatchSummary, 0, len(matches))
	for i := range matches {
		summary, err := s.buildSummary(db, &matches[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *EngagementServiceImpl) GetMatchSummary(db *gorm.DB, matchID uint) (*dto.MatchSummary, error) {
	match, err := s.matchRepo.FindByID(db, matchID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrMatchNotFound) {
			return nil, appErrors.ErrMatchNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return s.buildSummary(db, match)
}

func (s *EngagementServiceImpl) GetMatchDetail(db *gorm.DB, matchID uint) (*dto.MatchDetail, error) {
	summary, err := s.GetMatchSummary(db, matchID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.engagementRepo.RatingsForMatch(db, matchID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	comments, err := s.engagementRepo.CommentsForMatch(db, matchID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	detail := &dto.MatchDetail{
		MatchSummary: *summary,
		Ratings:      make([]dto.RatingEntry, 0, len(ratings)),
		Comments:     make([]dto.CommentEntry, 0, len(comments)),
	}
	for _, r := range ratings {
		entry := dto.RatingEntry{Score: r.Score, CreatedAt: r.CreatedAt}
		if r.User != nil {
			entry.Username = r.User.Username
		}
		detail.Ratings = append(detail.Ratings, entry)
	}
	for _, c := range comments {
		entry := dto.CommentEntry{Content: c.Content, CreatedAt: c.CreatedAt}
		if c.User != nil {
			entry.Username = c.User.Username
		}
		detail.Comments = append(detail.Comments, entry)
	}
	return detail, nil
}

func (s *EngagementServiceImpl) GetMatchComments(db *gorm.DB, matchID uint) ([]dto.CommentEntry, error) {
	if err := s.requireMatch(db, matchID); err != nil {
		return nil, err
	}

	comments, err := s.engagementRepo.CommentsForMatch(db, matchID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	entries := make([]dto.CommentEntry, 0, len(comments))
	for _, c := range comments {
		entry := dto.CommentEntry{Content: c.Content, CreatedAt: c.CreatedAt}
		if c.User != nil {
			entry.Username = c.User.Username
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// --- User views ---

// GetUserDiary returns the user's watched matches, newest first, each
// decorated with the user's own rating, comment and favorite state.
func (s *EngagementServiceImpl) GetUserDiary(db *gorm.DB, userID uint) ([]dto.DiaryEntry, error) {
	watched, err := s.engagementRepo.WatchedForUser(db, userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if len(watched) == 0 {
		return []dto.DiaryEntry{}, nil
	}

	matchIDs := make([]uint, 0, len(watched))
	for _, w := range watched {
		matchIDs = append(matchIDs, w.MatchID)
	}

	ratings, err := s.engagementRepo.RatingsForUser(db, userID, matchIDs)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	comments, err := s.engagementRepo.CommentsForUser(db, userID, matchIDs)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	favorites, err := s.engagementRepo.FavoritesForUser(db, userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	ratingByMatch := make(map[uint]*models.Rating, len(ratings))
	for i := range ratings {
		ratingByMatch[ratings[i].MatchID] = &ratings[i]
	}
	commentByMatch := make(map[uint]*models.Comment, len(comments))
	for i := range comments {
		commentByMatch[comments[i].MatchID] = &comments[i]
	}
	favoriteSet := make(map[uint]bool, len(favorites))
	for _, f := range favorites {
		favoriteSet[f.MatchID] = true
	}

	entries := make([]dto.DiaryEntry, 0, len(watched))
	for _, w := range watched {
		entry := dto.DiaryEntry{
			MatchID:   w.MatchID,
			Favorite:  favoriteSet[w.MatchID],
			WatchedAt: w.WatchedAt,
		}
		if w.Match != nil {
			entry.HomeTeam = w.Match.HomeTeam
			entry.AwayTeam = w.Match.AwayTeam
			entry.MatchDate = w.Match.MatchDate
		}
		if r, ok := ratingByMatch[w.MatchID]; ok {
			entry.Score = &r.Score
		}
		if c, ok := commentByMatch[w.MatchID]; ok {
			entry.Comment = &c.Content
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetUserReviews merges the user's ratings and comments into one row per
// match. reviewedAt prefers the comment timestamp over the rating's.
func (s *EngagementServiceImpl) GetUserReviews(db *gorm.DB, userID uint) ([]dto.Review, error) {
	matchIDs, err := s.engagementRepo.ReviewedMatchIDs(db, userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if len(matchIDs) == 0 {
		return []dto.Review{}, nil
	}

	matches, err := s.matchRepo.FindByIDs(db, matchIDs)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	ratings, err := s.engagementRepo.RatingsForUser(db, userID, matchIDs)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	comments, err := s.engagementRepo.CommentsForUser(db, userID, matchIDs)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	ratingByMatch := make(map[uint]*models.Rating, len(ratings))
	for i := range ratings {
		ratingByMatch[ratings[i].MatchID] = &ratings[i]
	}
	commentByMatch := make(map[uint]*models.Comment, len(comments))
	for i := range comments {
		commentByMatch[comments[i].MatchID] = &comments[i]
	}

	reviews := make([]dto.Review, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		review := dto.Review{
			MatchID:  m.ID,
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,
		}
		if r, ok := ratingByMatch[m.ID]; ok {
			review.Score = &r.Score
			t := r.CreatedAt
			review.ReviewedAt = &t
		}
		if c, ok := commentByMatch[m.ID]; ok {
			review.Comment = &c.Content
			t := c.CreatedAt
			review.ReviewedAt = &t
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// RemoveReview deletes the user's rating and comment for the match. It fails
// only when neither existed.
func (s *EngagementServiceImpl) RemoveReview(db *gorm.DB, userID, matchID uint) error {
	ratingGone, err := s.engagementRepo.DeleteRating(db, userID, matchID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	commentGone, err := s.engagementRepo.DeleteComment(db, userID, matchID)
	if err != nil {
		return appErrors.InternalError(err)
	}

	if !ratingGone && !commentGone {
		return appErrors.ErrReviewNotFound
	}
	return nil
}

func (s *EngagementServiceImpl) GetUserFavorites(db *gorm.DB, userID uint) ([]dto.FavoriteMatch, error) {
	favorites, err := s.engagementRepo.FavoritesForUser(db, userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := make([]dto.FavoriteMatch, 0, len(favorites))
	for _, f := range favorites {
		fav := dto.FavoriteMatch{MatchID: f.MatchID}
		if f.Match != nil {
			fav.HomeTeam = f.Match.HomeTeam
			fav.AwayTeam = f.Match.AwayTeam
			fav.MatchDate = f.Match.MatchDate
			fav.Status = f.Match.Status
		}
		out = append(out, fav)
	}
	return out, nil
}

func (s *EngagementServiceImpl) GetWatchlist(db *gorm.DB, userID uint) ([]dto.MatchSummary, error) {
	items, err := s.engagementRepo.WatchlistForUser(db, userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	summaries := make([]dto.MatchSummary, 0, len(items))
	for _, item := range items {
		if item.Match == nil {
			continue
		}
		summary, err := s.buildSummary(db, item.Match)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// --- Helpers ---

// buildSummary derives the aggregate view from current storage state; there
// is no caching layer in front of it.
func (s *EngagementServiceImpl) buildSummary(db *gorm.DB, match *models.Match) (*dto.MatchSummary, error) {
	avg, err := s.engagementRepo.AverageRating(db, match.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	comments, err := s.engagementRepo.CountComments(db, match.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	watchers, err := s.engagementRepo.CountWatchers(db, match.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.MatchSummary{
		ID:            match.ID,
		HomeTeam:      match.HomeTeam,
		AwayTeam:      match.AwayTeam,
		MatchDate:     match.MatchDate,
		Status:        match.Status,
		ScoreHome:     match.ScoreHome,
		ScoreAway:     match.ScoreAway,
		Description:   match.Description,
		AverageRating: avg,
		TotalComments: comments,
		WatchCount:    watchers,
	}, nil
}

func (s *EngagementServiceImpl) requireMatch(db *gorm.DB, matchID uint) error {
	exists, err := s.matchRepo.Exists(db, matchID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if !exists {
		return appErrors.ErrMatchNotFound
	}
	return nil
}

func trimmedContent(req *dto.RateCommentRequest) string {
	if req.Content == nil {
		return ""
	}
	return strings.TrimSpace(*req.Content)
}
