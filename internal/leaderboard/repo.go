package leaderboard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes persistence helpers for leaderboard entries.
type Repository interface {
	Upsert(ctx context.Context, entry *models.LeaderboardEntry) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.LeaderboardEntry, error)
	ListOrdered(ctx context.Context) ([]models.LeaderboardEntry, error)
	AssignRanks(ctx context.Context, ranked []models.LeaderboardEntry) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a leaderboard repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// Upsert writes the entry keyed on the unique user_id column. An existing row
// keeps its id, created_at and rank; the denormalized fields and totals are
// overwritten in place.
func (r *repositoryImpl) Upsert(ctx context.Context, entry *models.LeaderboardEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username",
				"team_id",
				"team_name",
				"total_activities",
				"total_calories",
				"total_duration",
				"total_distance",
				"updated_at",
			}),
		}).
		Create(entry).Error
}

func (r *repositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	err := r.db.WithContext(ctx).First(&entry, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListOrdered returns every entry sorted by total calories descending with
// insertion order breaking ties.
func (r *repositoryImpl) ListOrdered(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var out []models.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Order("total_calories DESC, created_at ASC").
		Find(&out).Error
	return out, err
}

// AssignRanks persists the rank carried on each entry inside one transaction.
func (r *repositoryImpl) AssignRanks(ctx context.Context, ranked []models.LeaderboardEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range ranked {
			if err := tx.Model(&models.LeaderboardEntry{}).
				Where("id = ?", entry.ID).
				UpdateColumn("rank", entry.Rank).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
