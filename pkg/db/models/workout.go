package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/octofitlabs/octofit-backend/pkg/db/types"
	"github.com/octofitlabs/octofit-backend/pkg/enums"
)

// Workout is a suggested routine. Exercises are opaque metadata to the
// recommendation engine.
type Workout struct {
	ID                uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name              string               `gorm:"type:text;not null" json:"name"`
	Description       string               `gorm:"type:text;not null;default:''" json:"description"`
	ActivityType      string               `gorm:"column:activity_type;not null" json:"activity_type"`
	DifficultyLevel   enums.Difficulty     `gorm:"column:difficulty_level;not null" json:"difficulty_level"`
	EstimatedDuration int                  `gorm:"column:estimated_duration;not null" json:"estimated_duration"`
	EstimatedCalories int                  `gorm:"column:estimated_calories;not null" json:"estimated_calories"`
	Exercises         dbtypes.ExerciseList `gorm:"type:jsonb;column:exercises;not null;default:'[]'" json:"exercises"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
