package workouts

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	dbtypes "github.com/octofitlabs/octofit-backend/pkg/db/types"
	"github.com/octofitlabs/octofit-backend/pkg/enums"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
)

const (
	recentWindow    = 5
	suggestionLimit = 3
)

// ActivityHistory is the slice of the activity engine the recommender reads.
type ActivityHistory interface {
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error)
}

// Recommendation pairs suggested workouts with the signal that drove them.
type Recommendation struct {
	BasedOnType string           `json:"based_on_type,omitempty"`
	Workouts    []models.Workout `json:"workouts"`
}

// Service defines workout CRUD plus the recommendation read path.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Workout, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Workout, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Workout, error)
	ByDifficulty(ctx context.Context, difficulty string) ([]models.Workout, error)
	SearchByType(ctx context.Context, activityType string) ([]models.Workout, error)
	Recommend(ctx context.Context, userID uuid.UUID) (*Recommendation, error)
}

// CreateParams carries a new workout definition.
type CreateParams struct {
	Name              string
	Description       string
	ActivityType      string
	DifficultyLevel   string
	EstimatedDuration int
	EstimatedCalories int
	Exercises         dbtypes.ExerciseList
}

// UpdateParams carries replacement fields for an existing workout.
type UpdateParams struct {
	Name              string
	Description       string
	ActivityType      string
	DifficultyLevel   string
	EstimatedDuration int
	EstimatedCalories int
}

type service struct {
	repo    Repository
	history ActivityHistory
}

// NewService wires workout dependencies.
func NewService(repo Repository, history ActivityHistory) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "workouts repository required")
	}
	if history == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity history required")
	}
	return &service{repo: repo, history: history}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Workout, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workout name required")
	}
	if strings.TrimSpace(params.ActivityType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity type required")
	}
	difficulty, err := enums.ParseDifficulty(params.DifficultyLevel)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if params.EstimatedDuration < 0 || params.EstimatedCalories < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimates must be non-negative")
	}

	workout := &models.Workout{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(params.Name),
		Description:       params.Description,
		ActivityType:      strings.TrimSpace(params.ActivityType),
		DifficultyLevel:   difficulty,
		EstimatedDuration: params.EstimatedDuration,
		EstimatedCalories: params.EstimatedCalories,
		Exercises:         params.Exercises,
	}
	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create workout")
	}
	return workout, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workout id required")
	}
	workout, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get workout")
	}
	if workout == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "workout not found")
	}
	return workout, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Workout, error) {
	workout, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workout name required")
	}
	if strings.TrimSpace(params.ActivityType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity type required")
	}
	difficulty, err := enums.ParseDifficulty(params.DifficultyLevel)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	workout.Name = strings.TrimSpace(params.Name)
	workout.Description = params.Description
	workout.ActivityType = strings.TrimSpace(params.ActivityType)
	workout.DifficultyLevel = difficulty
	workout.EstimatedDuration = params.EstimatedDuration
	workout.EstimatedCalories = params.EstimatedCalories
	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update workout")
	}
	return workout, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete workout")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]models.Workout, error) {
	workouts, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list workouts")
	}
	return workouts, nil
}

func (s *service) ByDifficulty(ctx context.Context, difficulty string) ([]models.Workout, error) {
	parsed, err := enums.ParseDifficulty(difficulty)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	workouts, err := s.repo.ByDifficulty(ctx, parsed.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list workouts by difficulty")
	}
	return workouts, nil
}

func (s *service) SearchByType(ctx context.Context, activityType string) ([]models.Workout, error) {
	if strings.TrimSpace(activityType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity type required")
	}
	workouts, err := s.repo.SearchByType(ctx, strings.TrimSpace(activityType), 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search workouts")
	}
	return workouts, nil
}

// Recommend picks workouts from the user's recent activity mix. A user with no
// history gets beginner workouts; when the dominant type has no matching
// workouts the first few in store order are returned instead.
func (s *service) Recommend(ctx context.Context, userID uuid.UUID) (*Recommendation, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	recent, err := s.history.Recent(ctx, userID, recentWindow)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent activities")
	}
	if len(recent) == 0 {
		workouts, err := s.repo.ByDifficulty(ctx, enums.DifficultyBeginner.String())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load beginner workouts")
		}
		return &Recommendation{Workouts: capWorkouts(workouts)}, nil
	}

	dominant := dominantType(recent)
	workouts, err := s.repo.SearchByType(ctx, dominant, suggestionLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search workouts by type")
	}
	if len(workouts) == 0 {
		workouts, err = s.repo.ListFirst(ctx, suggestionLimit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load fallback workouts")
		}
	}
	return &Recommendation{BasedOnType: dominant, Workouts: capWorkouts(workouts)}, nil
}

// dominantType returns the most frequent activity type in the window. Ties go
// to the type encountered first.
func dominantType(recent []models.Activity) string {
	counts := map[string]int{}
	max := 0
	for _, activity := range recent {
		counts[activity.ActivityType]++
		if counts[activity.ActivityType] > max {
			max = counts[activity.ActivityType]
		}
	}
	for _, activity := range recent {
		if counts[activity.ActivityType] == max {
			return activity.ActivityType
		}
	}
	return recent[0].ActivityType
}

func capWorkouts(workouts []models.Workout) []models.Workout {
	if len(workouts) > suggestionLimit {
		return workouts[:suggestionLimit]
	}
	return workouts
}
