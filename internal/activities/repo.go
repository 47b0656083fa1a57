package activities

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for activity records.
type Repository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]models.Activity, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Activity, error)
	SearchByType(ctx context.Context, activityType string) ([]models.Activity, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an activities repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *repositoryImpl) Update(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Activity{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	err := r.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&out).Error
	return out, err
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Activity, error) {
	var out []models.Activity
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&out).Error
	return out, err
}

func (r *repositoryImpl) SearchByType(ctx context.Context, activityType string) ([]models.Activity, error) {
	var out []models.Activity
	pattern := "%" + strings.ToLower(activityType) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(activity_type) LIKE ?", pattern).
		Find(&out).Error
	return out, err
}

func (r *repositoryImpl) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error) {
	var out []models.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
