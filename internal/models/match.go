package models

import "time"

// Match statuses as produced by the upstream feed.
const (
	MatchStatusScheduled = "scheduled"
	MatchStatusLive      = "live"
	MatchStatusFinished  = "finished"
)

// Match is the engagement target. Rows are owned by the external import
// collaborator; this service only reads them and gates comments on status.
type Match struct {
	ID         uint `gorm:"primarykey"`
	ExternalID *int `gorm:"index"`

	HomeTeam    string    `gorm:"not null"`
	AwayTeam    string    `gorm:"not null"`
	MatchDate   time.Time `gorm:"index"`
	Status      string    `gorm:"size:20;default:'scheduled'"`
	ScoreHome   *int
	ScoreAway   *int
	Description *string
}

// Finished reports whether comments are allowed for the match.
func (m *Match) Finished() bool {
	return m.Status == MatchStatusFinished
}
