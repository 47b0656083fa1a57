package workouts

import (
	"context"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines workout persistence.
type Repository interface {
	Create(ctx context.Context, workout *models.Workout) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Workout, error)
	ByDifficulty(ctx context.Context, difficulty string) ([]models.Workout, error)
	SearchByType(ctx context.Context, activityType string, limit int) ([]models.Workout, error)
	ListFirst(ctx context.Context, limit int) ([]models.Workout, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds workout queries to the given connection.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.WithContext(ctx).First(&workout, "id = ?", id).Error
	if db.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *repository) Update(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Save(workout).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Workout{}, "id = ?", id).Error
}

func (r *repository) List(ctx context.Context) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&workouts).Error
	return workouts, err
}

func (r *repository) ByDifficulty(ctx context.Context, difficulty string) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.WithContext(ctx).
		Where("LOWER(difficulty_level) = LOWER(?)", difficulty).
		Order("created_at ASC").
		Find(&workouts).Error
	return workouts, err
}

func (r *repository) SearchByType(ctx context.Context, activityType string, limit int) ([]models.Workout, error) {
	var workouts []models.Workout
	query := r.db.WithContext(ctx).
		Where("LOWER(activity_type) LIKE LOWER(?)", "%"+activityType+"%").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&workouts).Error
	return workouts, err
}

func (r *repository) ListFirst(ctx context.Context, limit int) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Find(&workouts).Error
	return workouts, err
}
