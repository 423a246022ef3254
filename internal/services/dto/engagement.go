package dto

import "time"

// RateCommentRequest must carry a score, a content, or both.
type RateCommentRequest struct {
	Score   *float64 `json:"score" validate:"omitempty,rating_score"`
	Content *string  `json:"content"`
}

type MatchRef struct {
	MatchID uint `json:"matchId" validate:"required"`
}

type MatchSummary struct {
	ID            uint      `json:"id"`
	HomeTeam      string    `json:"homeTeam"`
	AwayTeam      string    `json:"awayTeam"`
	MatchDate     time.Time `json:"matchDate"`
	Status        string    `json:"status"`
	ScoreHome     *int      `json:"scoreHome,omitempty"`
	ScoreAway     *int      `json:"scoreAway,omitempty"`
	Description   *string   `json:"description,omitempty"`
	AverageRating float64   `json:"averageRating"`
	TotalComments int64     `json:"totalComments"`
	WatchCount    int64     `json:"watchCount"`
}

type RatingEntry struct {
	Score     float64   `json:"score"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentEntry struct {
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// MatchDetail is a summary plus every rating and comment with author names.
type MatchDetail struct {
	MatchSummary
	Ratings  []RatingEntry  `json:"ratings"`
	Comments []CommentEntry `json:"comments"`
}

// DiaryEntry decorates a watched match with the user's own engagement state,
// not aggregate match-wide values.
type DiaryEntry struct {
	MatchID   uint      `json:"matchId"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	MatchDate time.Time `json:"matchDate"`
	Score     *float64  `json:"score,omitempty"`
	Comment   *string   `json:"comment,omitempty"`
	Favorite  bool      `json:"favorite"`
	WatchedAt time.Time `json:"watchedAt"`
}

type Review struct {
	MatchID    uint       `json:"matchId"`
	HomeTeam   string     `json:"homeTeam"`
	AwayTeam   string     `json:"awayTeam"`
	Score      *float64   `json:"score,omitempty"`
	Comment    *string    `json:"comment,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

type FavoriteMatch struct {
	MatchID   uint      `json:"matchId"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	MatchDate time.Time `json:"matchDate"`
	Status    string    `json:"status"`
}

// ToggleResult reports the state after a toggle: true when the record now
// exists, false when it was removed.
type ToggleResult struct {
	Active bool `json:"active"`
}
