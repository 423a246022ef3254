package repositories

import (
	"errors"

	"matchboxd_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEngagementNotFound = errors.New("engagement record not found")
	ErrDuplicatePair      = errors.New("record already exists for this user and match")
)

// EngagementRepository owns every read-modify-write sequence on the five
// engagement record kinds keyed by (userID, matchID).
type EngagementRepository interface {
	// Ratings
	FindRating(db *gorm.DB, userID, matchID uint) (*models.Rating, error)
	SaveRating(db *gorm.DB, rating *models.Rating) error
	DeleteRating(db *gorm.DB, userID, matchID uint) (bool, error)
	RatingsForMatch(db *gorm.DB, matchID uint) ([]models.Rating, error)
	RatingsForUser(db *gorm.DB, userID uint, matchIDs []uint) ([]models.Rating, error)
	AverageRating(db *gorm.DB, matchID uint) (float64, error)

	// Comments
	FindComment(db *gorm.DB, userID, matchID uint) (*models.Comment, error)
	SaveComment(db *gorm.DB, comment *models.Comment) error
	DeleteComment(db *gorm.DB, userID, matchID uint) (bool, error)
	CommentsForMatch(db *gorm.DB, matchID uint) ([]models.Comment, error)
	CommentsForUser(db *gorm.DB, userID uint, matchIDs []uint) ([]models.Comment, error)
	CountComments(db *gorm.DB, matchID uint) (int64, error)

	// Watched
	HasWatched(db *gorm.DB, userID, matchID uint) (bool, error)
	CreateWatched(db *gorm.DB, watched *models.WatchedMatch) error
	DeleteWatched(db *gorm.DB, userID, matchID uint) (bool, error)
	WatchedForUser(db *gorm.DB, userID uint) ([]models.WatchedMatch, error)
	CountWatchers(db *gorm.DB, matchID uint) (int64, error)

	// Favorites
	HasFavorite(db *gorm.DB, userID, matchID uint) (bool, error)
	CreateFavorite(db *gorm.DB, favorite *models.Favorite) error
	DeleteFavorite(db *gorm.DB, userID, matchID uint) (bool, error)
	FavoritesForUser(db *gorm.DB, userID uint) ([]models.Favorite, error)

	// Watchlist
	HasWatchlistItem(db *gorm.DB, userID, matchID uint) (bool, error)
	CreateWatchlistItem(db *gorm.DB, item *models.WatchlistItem) error
	DeleteWatchlistItem(db *gorm.DB, userID, matchID uint) (bool, error)
	WatchlistForUser(db *gorm.DB, userID uint) ([]models.WatchlistItem, error)

	// Reviews
	ReviewedMatchIDs(db *gorm.DB, userID uint) ([]uint, error)
}

type EngagementRepositoryImpl struct{}

func NewEngagementRepository() EngagementRepository {
	return &EngagementRepositoryImpl{}
}

// --- Ratings ---

func (r *EngagementRepositoryImpl) FindRating(db *gorm.DB, userID, matchID uint) (*models.Rating, error) {
	var rating models.Rating
	err := db.Where("user_id = ? AND match_id = ?", userID, matchID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEngagementNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// SaveRating inserts a new rating or updates an existing one in place.
func (r *EngagementRepositoryImpl) SaveRating(db *gorm.DB, rating *models.Rating) error {
	if err := db.Save(rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePair
		}
		return err
	}
	return nil
}

func (r *EngagementRepositoryImpl) DeleteRating(db *gorm.DB, userID, matchID uint) (bool, error) {
	res := db.Where("user_id = ? AND match_id = ?", userID, matchID).Delete(&models.Rating{})
	return res.RowsAffected > 0, res.Error
}

func (r *EngagementRepositoryImpl) RatingsForMatch(db *gorm.DB, matchID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := db.Preload("User").
		Where("match_id = ?", matchID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *EngagementRepositoryImpl) RatingsForUser(db *gorm.DB, userID uint, matchIDs []uint) ([]models.Rating, error) {
	var ratings []models.Rating
	q := db.Where("user_id = ?", userID)
	if matchIDs != nil {
		q = q.Where("match_id IN ?", matchIDs)
	}
	err := q.Find(&ratings).Error
	return ratings, err
}

func (r *EngagementRepositoryImpl) AverageRating(db *gorm.DB, matchID uint) (float64, error) {
	var avg float64
	err := db.Model(&models.Rating{}).
		Where("match_id = ?", matchID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	return avg, err
}

// --- Comments ---

func (r *EngagementRepositoryImpl) FindComment(db *gorm.DB, userID, matchID uint) (*models.Comment, error) {
	var comment models.Comment
	err := db.Where("user_id = ? AND match_id = ?", userID, matchID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEngagementNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *EngagementRepositoryImpl) SaveComment(db *gorm.DB, comment *models.Comment) error {
	if err := db.Save(comment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePair
		}
		return err
	}
	return nil
}

func (r *EngagementRepositoryImpl) DeleteComment(db *gorm.DB, userID, matchID uint) (bool, error) {
	res := db.Where("user_id = ? AND match_id = ?", userID, matchID).Delete(&models.Comment{})
	return res.RowsAffected > 0, res.Error
}

func (r *EngagementRepositoryImpl) CommentsForMatch(db *gorm.DB, matchID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Preload("User").
		Where("match_id = ?", matchID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *EngagementRepositoryImpl) CommentsForUser(db *gorm.DB, userID uint, matchIDs []uint) ([]models.Comment, error) {
	var comments []models.Comment
	q := db.Where("user_id = ?", userID)
	if matchIDs != nil {
		q = q.Where("match_id IN ?", matchIDs)
	}
	err := q.Find(&comments).Error
	return comments, err
}

func (r *EngagementRepositoryImpl) CountComments(db *gorm.DB, matchID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Comment{}).Where("match_id = ?", matchID).Count(&count).Error
	return count, err
}

// --- Watched ---

func (r *EngagementRepositoryImpl) HasWatched(db *gorm.DB, userID, matchID uint) (bool, error) {
	var count int64
	err := db.Model(&models.WatchedMatch{}).
		Where("user_id = ? AND match_id = ?", userID, matchID).
		Count(&count).Error
	return count > 0, err
}

func (r *EngagementRepositoryImpl) CreateWatched(db *gorm.DB, watched *models.WatchedMatch) error {
	if err := db.Create(watched).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePair
		}
		return err
	}
	return nil
}

func (r *EngagementRepositoryImpl) DeleteWatched(db *gorm.DB, userID, matchID uint) (bool, error) {
	res := db.Where("user_id = ? AND match_id = ?", userID, matchID).Delete(&models.WatchedMatch{})
	return res.RowsAffected > 0, res.Error
}

func (r *EngagementRepositoryImpl) WatchedForUser(db *gorm.DB, userID uint) ([]models.WatchedMatch, error) {
	var watched []models.WatchedMatch
	err := db.Preload("Match").
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Find(&watched).Error
	return watched, err
}

// CountWatchers returns the number of distinct users with a watched row for
// the match.
func (r *EngagementRepositoryImpl) CountWatchers(db *gorm.DB, matchID uint) (int64, error) {
	var count int64
	err := db.Model(&models.WatchedMatch{}).
		Where("match_id = ?", matchID).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

// --- Favorites ---

func (r *EngagementRepositoryImpl) HasFavorite(db *gorm.DB, userID, matchID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND match_id = ?", userID, matchID).
		Count(&count).Error
	return count > 0, err
}

func (r *EngagementRepositoryImpl) CreateFavorite(db *gorm.DB, favorite *models.Favorite) error {
	if err := db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePair
		}
		return err
	}
	return nil
}

func (r *EngagementRepositoryImpl) DeleteFavorite(db *gorm.DB, userID, matchID uint) (bool, error) {
	res := db.Where("user_id = ? AND match_id = ?", userID, matchID).Delete(&models.Favorite{})
	return res.RowsAffected > 0, res.Error
}

func (r *EngagementRepositoryImpl) FavoritesForUser(db *gorm.DB, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := db.Preload("Match").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// --- Watchlist ---

func (r *EngagementRepositoryImpl) HasWatchlistItem(db *gorm.DB, userID, matchID uint) (bool, error) {
	var count int64
	err := db.Model(&models.WatchlistItem{}).
		Where("user_id = ? AND match_id = ?", userID, matchID).
		Count(&count).Error
	return count > 0, err
}

func (r *EngagementRepositoryImpl) CreateWatchlistItem(db *gorm.DB, item *models.WatchlistItem) error {
	if err := db.Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePair
		}
		return err
	}
	return nil
}

func (r *EngagementRepositoryImpl) DeleteWatchlistItem(db *gorm.DB, userID, matchID uint) (bool, error) {
	res := db.Where("user_id = ? AND match_id = ?", userID, matchID).Delete(&models.WatchlistItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *EngagementRepositoryImpl) WatchlistForUser(db *gorm.DB, userID uint) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	err := db.Preload("Match").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// --- Reviews ---

// ReviewedMatchIDs returns the distinct match ids where the user left a
// rating or a comment.
func (r *EngagementRepositoryImpl) ReviewedMatchIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var ratingIDs []uint
	if err := db.Model(&models.Rating{}).
		Where("user_id = ?", userID).
		Distinct("match_id").
		Pluck("match_id", &ratingIDs).Error; err != nil {
		return nil, err
	}

	var commentIDs []uint
	if err := db.Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Distinct("match_id").
		Pluck("match_id", &commentIDs).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(ratingIDs)+len(commentIDs))
	merged := make([]uint, 0, len(ratingIDs)+len(commentIDs))
	for _, id := range ratingIDs {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range commentIDs {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	return merged, nil
}
