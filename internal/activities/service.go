package activities

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Totals is the per-user aggregate computed from raw activity rows.
type Totals struct {
	TotalActivities int     `json:"total_activities"`
	TotalCalories   int     `json:"total_calories"`
	TotalDuration   int     `json:"total_duration"`
	TotalDistance   float64 `json:"total_distance"`
}

// Service defines activity CRUD plus the aggregation read path.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Activity, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Activity, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Activity, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Activity, error)
	SearchByType(ctx context.Context, activityType string) ([]models.Activity, error)
	Totals(ctx context.Context, userID uuid.UUID) (Totals, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error)
}

// CreateParams carries a new activity record.
type CreateParams struct {
	UserID         uuid.UUID
	ActivityType   string
	Duration       int
	Distance       *float64
	CaloriesBurned int
	Date           time.Time
	Notes          string
}

// UpdateParams carries replacement fields for an existing activity.
type UpdateParams struct {
	ActivityType   string
	Duration       int
	Distance       *float64
	CaloriesBurned int
	Date           time.Time
	Notes          string
}

type service struct {
	repo Repository
}

// NewService wires activity dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activities repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Activity, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if strings.TrimSpace(params.ActivityType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity type required")
	}
	if params.Duration < 0 || params.CaloriesBurned < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration and calories must be non-negative")
	}
	if params.Distance != nil && *params.Distance < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distance must be non-negative")
	}

	activity := &models.Activity{
		ID:             uuid.New(),
		UserID:         params.UserID,
		ActivityType:   strings.TrimSpace(params.ActivityType),
		Duration:       params.Duration,
		Distance:       params.Distance,
		CaloriesBurned: params.CaloriesBurned,
		Date:           params.Date,
		Notes:          params.Notes,
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create activity")
	}
	return activity, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity id required")
	}
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get activity")
	}
	if activity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "activity not found")
	}
	return activity, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Activity, error) {
	activity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.ActivityType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity type required")
	}
	if params.Duration < 0 || params.CaloriesBurned < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration and calories must be non-negative")
	}

	activity.ActivityType = strings.TrimSpace(params.ActivityType)
	activity.Duration = params.Duration
	activity.Distance = params.Distance
	activity.CaloriesBurned = params.CaloriesBurned
	activity.Date = params.Date
	activity.Notes = params.Notes

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update activity")
	}
	return activity, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "activity id required")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete activity")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "activity not found")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]models.Activity, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activities")
	}
	return out, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Activity, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activities by user")
	}
	return out, nil
}

func (s *service) SearchByType(ctx context.Context, activityType string) ([]models.Activity, error) {
	if strings.TrimSpace(activityType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type parameter required")
	}
	out, err := s.repo.SearchByType(ctx, activityType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search activities by type")
	}
	return out, nil
}

// Totals sums the user's full activity history. An unknown user id yields
// all-zero totals rather than an error; a nil distance counts as zero. The
// distance sum is rounded to two decimal places before it is handed on.
func (s *service) Totals(ctx context.Context, userID uuid.UUID) (Totals, error) {
	if userID == uuid.Nil {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return Totals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate activities")
	}

	totals := Totals{TotalActivities: len(rows)}
	distance := decimal.Zero
	for _, row := range rows {
		totals.TotalCalories += row.CaloriesBurned
		totals.TotalDuration += row.Duration
		if row.Distance != nil {
			distance = distance.Add(decimal.NewFromFloat(*row.Distance))
		}
	}
	totals.TotalDistance = distance.Round(2).InexactFloat64()
	return totals, nil
}

func (s *service) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if limit <= 0 {
		limit = 5
	}
	out, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent activities")
	}
	return out, nil
}
