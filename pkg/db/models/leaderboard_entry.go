package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is the denormalized per-user summary row. UserID is unique
// across entries; a refresh upserts on that key. Rank is a snapshot written by
// the bulk reindex pass, not kept in step with live ordering.
type LeaderboardEntry struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;column:user_id;not null;uniqueIndex" json:"user_id"`
	Username        string     `gorm:"type:text;not null" json:"username"`
	TeamID          *uuid.UUID `gorm:"type:uuid;column:team_id" json:"team_id"`
	TeamName        *string    `gorm:"column:team_name" json:"team_name"`
	TotalActivities int        `gorm:"column:total_activities;not null;default:0" json:"total_activities"`
	TotalCalories   int        `gorm:"column:total_calories;not null;default:0" json:"total_calories"`
	TotalDuration   int        `gorm:"column:total_duration;not null;default:0" json:"total_duration"`
	TotalDistance   float64    `gorm:"column:total_distance;not null;default:0" json:"total_distance"`
	Rank            *int       `gorm:"column:rank" json:"rank"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}
