package teams

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for teams and their rosters.
type Repository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]models.Team, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) (RosterResult, error)
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) (RosterResult, error)
}

// RosterResult reports the outcome of a conditional roster mutation. Found is
// false when the team row does not exist; Applied is false when the membership
// precondition failed (duplicate add, remove of an absent member).
type RosterResult struct {
	Found   bool
	Applied bool
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a teams repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *repositoryImpl) Update(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Team, error) {
	var out []models.Team
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error
	return out, err
}

// AddMember appends the user id to the roster in a single conditional
// statement, so two concurrent adds for the same team cannot lose an update.
func (r *repositoryImpl) AddMember(ctx context.Context, teamID, userID uuid.UUID) (RosterResult, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE teams
		    SET member_ids = array_append(member_ids, ?), updated_at = now()
		  WHERE id = ? AND NOT (? = ANY(member_ids))`,
		userID, teamID, userID,
	)
	if result.Error != nil {
		return RosterResult{}, result.Error
	}
	if result.RowsAffected > 0 {
		return RosterResult{Found: true, Applied: true}, nil
	}
	return r.disambiguate(ctx, teamID)
}

// RemoveMember drops the user id from the roster with the inverse guard.
func (r *repositoryImpl) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) (RosterResult, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE teams
		    SET member_ids = array_remove(member_ids, ?), updated_at = now()
		  WHERE id = ? AND ? = ANY(member_ids)`,
		userID, teamID, userID,
	)
	if result.Error != nil {
		return RosterResult{}, result.Error
	}
	if result.RowsAffected > 0 {
		return RosterResult{Found: true, Applied: true}, nil
	}
	return r.disambiguate(ctx, teamID)
}

func (r *repositoryImpl) disambiguate(ctx context.Context, teamID uuid.UUID) (RosterResult, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", teamID).
		Count(&count).Error; err != nil {
		return RosterResult{}, err
	}
	return RosterResult{Found: count > 0, Applied: false}, nil
}
