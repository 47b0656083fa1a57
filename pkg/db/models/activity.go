package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one raw workout record. Distance is optional; a nil value
// aggregates as zero. Date carries no time component.
type Activity struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	ActivityType   string    `gorm:"column:activity_type;not null" json:"activity_type"`
	Duration       int       `gorm:"column:duration;not null" json:"duration"`
	Distance       *float64  `gorm:"column:distance" json:"distance"`
	CaloriesBurned int       `gorm:"column:calories_burned;not null" json:"calories_burned"`
	Date           time.Time `gorm:"column:date;type:date;not null" json:"date"`
	Notes          string    `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
