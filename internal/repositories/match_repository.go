package repositories

import (
	"errors"

	"matchboxd_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(db *gorm.DB, match *models.Match) error
	FindByID(db *gorm.DB, id uint) (*models.Match, error)
	FindAll(db *gorm.DB) ([]models.Match, error)
	FindByIDs(db *gorm.DB, ids []uint) ([]models.Match, error)
	Exists(db *gorm.DB, id uint) (bool, error)
}

type MatchRepositoryImpl struct{}

func NewMatchRepository() MatchRepository {
	return &MatchRepositoryImpl{}
}

func (r *MatchRepositoryImpl) Create(db *gorm.DB, match *models.Match) error {
	return db.Create(match).Error
}

func (r *MatchRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Match, error) {
	var match models.Match
	if err := db.First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

// FindAll returns every match ordered by kick-off, newest first.
func (r *MatchRepositoryImpl) FindAll(db *gorm.DB) ([]models.Match, error) {
	var matches []models.Match
	err := db.Order("match_date DESC").Find(&matches).Error
	return matches, err
}

func (r *MatchRepositoryImpl) FindByIDs(db *gorm.DB, ids []uint) ([]models.Match, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var matches []models.Match
	err := db.Where("id IN ?", ids).Find(&matches).Error
	return matches, err
}

func (r *MatchRepositoryImpl) Exists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Model(&models.Match{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
