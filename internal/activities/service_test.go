package activities

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
)

type fakeRepository struct {
	createFn     func(ctx context.Context, activity *models.Activity) error
	getFn        func(ctx context.Context, id uuid.UUID) (*models.Activity, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) (bool, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]models.Activity, error)
	recentFn     func(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error)
}

func (f *fakeRepository) Create(ctx context.Context, activity *models.Activity) error {
	if f.createFn != nil {
		return f.createFn(ctx, activity)
	}
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, activity *models.Activity) error {
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return false, nil
}

func (f *fakeRepository) List(ctx context.Context) ([]models.Activity, error) {
	return nil, nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Activity, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRepository) SearchByType(ctx context.Context, activityType string) ([]models.Activity, error) {
	return nil, nil
}

func (f *fakeRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error) {
	if f.recentFn != nil {
		return f.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func newServiceWithRepo(repo Repository) Service {
	svc, _ := NewService(repo)
	return svc
}

func floatPtr(v float64) *float64 { return &v }

func TestService_TotalsSumsHistory(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepository{
		listByUserFn: func(ctx context.Context, gotID uuid.UUID) ([]models.Activity, error) {
			if gotID != userID {
				t.Fatalf("unexpected user id %s", gotID)
			}
			return []models.Activity{
				{CaloriesBurned: 300, Duration: 30, Distance: floatPtr(5.0)},
				{CaloriesBurned: 200, Duration: 20, Distance: nil},
			}, nil
		},
	}

	svc := newServiceWithRepo(repo)
	totals, err := svc.Totals(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected totals error: %v", err)
	}
	if totals.TotalActivities != 2 {
		t.Fatalf("expected 2 activities, got %d", totals.TotalActivities)
	}
	if totals.TotalCalories != 500 {
		t.Fatalf("expected 500 calories, got %d", totals.TotalCalories)
	}
	if totals.TotalDuration != 50 {
		t.Fatalf("expected 50 duration, got %d", totals.TotalDuration)
	}
	if totals.TotalDistance != 5.0 {
		t.Fatalf("expected 5.0 distance, got %v", totals.TotalDistance)
	}
}

func TestService_TotalsEmptyHistoryIsZero(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	totals, err := svc.Totals(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected totals error: %v", err)
	}
	if totals != (Totals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestService_TotalsRoundsDistance(t *testing.T) {
	repo := &fakeRepository{
		listByUserFn: func(ctx context.Context, userID uuid.UUID) ([]models.Activity, error) {
			return []models.Activity{
				{Distance: floatPtr(1.115)},
				{Distance: floatPtr(2.101)},
			}, nil
		},
	}
	svc := newServiceWithRepo(repo)
	totals, err := svc.Totals(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected totals error: %v", err)
	}
	if totals.TotalDistance != 3.22 {
		t.Fatalf("expected distance rounded to 3.22, got %v", totals.TotalDistance)
	}
}

func TestService_TotalsRequiresUserID(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	_, err := svc.Totals(context.Background(), uuid.Nil)
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_CreateValidatesFields(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})

	_, err := svc.Create(context.Background(), CreateParams{ActivityType: "Running"})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing user, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateParams{
		UserID:       uuid.New(),
		ActivityType: "Running",
		Duration:     -1,
	})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative duration, got %v", err)
	}
}

func TestService_CreatePersists(t *testing.T) {
	var stored *models.Activity
	repo := &fakeRepository{
		createFn: func(ctx context.Context, activity *models.Activity) error {
			stored = activity
			return nil
		},
	}
	svc := newServiceWithRepo(repo)

	activity, err := svc.Create(context.Background(), CreateParams{
		UserID:         uuid.New(),
		ActivityType:   "  Cycling ",
		Duration:       45,
		CaloriesBurned: 400,
		Date:           time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected repo create to be called")
	}
	if activity.ActivityType != "Cycling" {
		t.Fatalf("expected trimmed type, got %q", activity.ActivityType)
	}
}

func TestService_DeleteNotFound(t *testing.T) {
	repo := &fakeRepository{
		deleteFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := newServiceWithRepo(repo)
	err := svc.Delete(context.Background(), uuid.New())
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_TotalsStoreFailure(t *testing.T) {
	repo := &fakeRepository{
		listByUserFn: func(ctx context.Context, userID uuid.UUID) ([]models.Activity, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newServiceWithRepo(repo)
	_, err := svc.Totals(context.Background(), uuid.New())
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
