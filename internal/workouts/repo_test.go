package workouts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	"github.com/octofitlabs/octofit-backend/pkg/enums"
)

func setupWorkoutsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS workouts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  activity_type TEXT NOT NULL,
  difficulty_level TEXT NOT NULL,
  estimated_duration INTEGER NOT NULL,
  estimated_calories INTEGER NOT NULL,
  exercises TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func seedWorkout(t *testing.T, repo Repository, name, activityType string, difficulty enums.Difficulty, createdAt time.Time) models.Workout {
	t.Helper()
	workout := models.Workout{
		ID:              uuid.New(),
		Name:            name,
		ActivityType:    activityType,
		DifficultyLevel: difficulty,
		CreatedAt:       createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), &workout))
	return workout
}

func TestRepository_SearchByTypeUnbounded(t *testing.T) {
	repo := NewRepository(setupWorkoutsTestDB(t))
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	first := seedWorkout(t, repo, "Interval Run", "Running", enums.DifficultyIntermediate, base)
	second := seedWorkout(t, repo, "Trail Mix", "Trail running", enums.DifficultyAdvanced, base.Add(time.Hour))
	seedWorkout(t, repo, "Morning Spin", "Cycling", enums.DifficultyBeginner, base)

	matched, err := repo.SearchByType(context.Background(), "run", 0)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, first.ID, matched[0].ID)
	assert.Equal(t, second.ID, matched[1].ID)
}

func TestRepository_SearchByTypeRespectsLimit(t *testing.T) {
	repo := NewRepository(setupWorkoutsTestDB(t))
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	oldest := seedWorkout(t, repo, "Interval Run", "Running", enums.DifficultyIntermediate, base)
	seedWorkout(t, repo, "Hill Sprints", "Running", enums.DifficultyAdvanced, base.Add(time.Hour))

	matched, err := repo.SearchByType(context.Background(), "RUNNING", 1)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, oldest.ID, matched[0].ID)
}

func TestRepository_ByDifficultyIgnoresCase(t *testing.T) {
	repo := NewRepository(setupWorkoutsTestDB(t))
	now := time.Now()

	seedWorkout(t, repo, "First Steps", "Walking", enums.DifficultyBeginner, now)
	seedWorkout(t, repo, "Hill Sprints", "Running", enums.DifficultyAdvanced, now)

	matched, err := repo.ByDifficulty(context.Background(), "Beginner")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "First Steps", matched[0].Name)
}
