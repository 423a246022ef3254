package models

import "time"

// Engagement records, all keyed by the (user, match) pair. Each table carries
// a unique pair index; concurrent toggles race to the constraint, which is
// the backstop against duplicate rows.

type Rating struct {
	ID      uint    `gorm:"primarykey"`
	UserID  uint    `gorm:"not null;uniqueIndex:idx_ratings_user_match"`
	MatchID uint    `gorm:"not null;uniqueIndex:idx_ratings_user_match"`
	Score   float64 `gorm:"not null"`

	CreatedAt time.Time

	User  *User  `gorm:"foreignKey:UserID"`
	Match *Match `gorm:"foreignKey:MatchID"`
}

type Comment struct {
	ID      uint   `gorm:"primarykey"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_comments_user_match"`
	MatchID uint   `gorm:"not null;uniqueIndex:idx_comments_user_match"`
	Content string `gorm:"type:text;not null"`

	CreatedAt time.Time

	User  *User  `gorm:"foreignKey:UserID"`
	Match *Match `gorm:"foreignKey:MatchID"`
}

// Favorite presence means the match is favorited.
type Favorite struct {
	ID      uint `gorm:"primarykey"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_favorites_user_match"`
	MatchID uint `gorm:"not null;uniqueIndex:idx_favorites_user_match"`

	CreatedAt time.Time

	Match *Match `gorm:"foreignKey:MatchID"`
}

// WatchedMatch presence means the user engaged with the match. Created
// implicitly by rating or commenting, or explicitly by marking watched.
type WatchedMatch struct {
	ID      uint `gorm:"primarykey"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_watched_user_match"`
	MatchID uint `gorm:"not null;uniqueIndex:idx_watched_user_match"`

	WatchedAt time.Time `gorm:"autoCreateTime"`

	Match *Match `gorm:"foreignKey:MatchID"`
}

// WatchlistItem represents intent to watch; independent of WatchedMatch.
type WatchlistItem struct {
	ID      uint `gorm:"primarykey"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_watchlist_user_match"`
	MatchID uint `gorm:"not null;uniqueIndex:idx_watchlist_user_match"`

	CreatedAt time.Time

	Match *Match `gorm:"foreignKey:MatchID"`
}
