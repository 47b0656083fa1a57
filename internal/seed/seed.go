package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/internal/leaderboard"
	"github.com/octofitlabs/octofit-backend/pkg/config"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	dbtypes "github.com/octofitlabs/octofit-backend/pkg/db/types"
	"github.com/octofitlabs/octofit-backend/pkg/enums"
	"github.com/octofitlabs/octofit-backend/pkg/logger"
	"github.com/octofitlabs/octofit-backend/pkg/security"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

var activityTypes = []string{"Running", "Cycling", "Swimming", "Weightlifting", "Yoga", "Boxing", "Cardio"}

type memberDef struct {
	username  string
	email     string
	firstName string
	lastName  string
}

type teamDef struct {
	name        string
	description string
	members     []memberDef
}

var demoTeams = []teamDef{
	{
		name:        "Team Marvel",
		description: "Assemble! The mightiest heroes of Earth",
		members: []memberDef{
			{"ironman", "tony.stark@avengers.com", "Tony", "Stark"},
			{"captainamerica", "steve.rogers@avengers.com", "Steve", "Rogers"},
			{"blackwidow", "natasha.romanoff@avengers.com", "Natasha", "Romanoff"},
			{"thor", "thor.odinson@asgard.com", "Thor", "Odinson"},
			{"hulk", "bruce.banner@avengers.com", "Bruce", "Banner"},
		},
	},
	{
		name:        "Team DC",
		description: "Justice League - Defending truth and justice",
		members: []memberDef{
			{"superman", "clark.kent@dailyplanet.com", "Clark", "Kent"},
			{"batman", "bruce.wayne@wayneenterprises.com", "Bruce", "Wayne"},
			{"wonderwoman", "diana.prince@themyscira.com", "Diana", "Prince"},
			{"flash", "barry.allen@starlabs.com", "Barry", "Allen"},
			{"aquaman", "arthur.curry@atlantis.com", "Arthur", "Curry"},
		},
	},
}

type workoutDef struct {
	name         string
	description  string
	activityType string
	difficulty   enums.Difficulty
	duration     int
	calories     int
}

var demoWorkouts = []workoutDef{
	{"Super Soldier Training", "High-intensity training for peak performance", "Weightlifting", enums.DifficultyAdvanced, 60, 600},
	{"Speed Force Sprint", "Lightning-fast cardio workout", "Running", enums.DifficultyIntermediate, 30, 400},
	{"Asgardian Strength", "Build godly strength with heavy lifting", "Weightlifting", enums.DifficultyExpert, 90, 800},
	{"Amazonian Warrior Routine", "Combat-ready full-body workout", "Boxing", enums.DifficultyAdvanced, 45, 500},
	{"Atlantean Swim", "Master the depths with swimming", "Swimming", enums.DifficultyIntermediate, 60, 450},
	{"First Steps", "Gentle walk-run intervals to get moving", "Running", enums.DifficultyBeginner, 20, 150},
	{"Easy Flow", "Relaxed stretching and breathing session", "Yoga", enums.DifficultyBeginner, 30, 120},
}

// Summary reports what a seed run wrote.
type Summary struct {
	Teams       int
	Users       int
	Activities  int
	Workouts    int
	Leaderboard int
}

// Seeder drops and repopulates the demo dataset.
type Seeder struct {
	db       *gorm.DB
	logg     *logger.Logger
	password config.PasswordConfig
	rng      *rand.Rand
}

// New builds a seeder. A nil rng seeds from the clock.
func New(db *gorm.DB, logg *logger.Logger, password config.PasswordConfig, rng *rand.Rand) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Seeder{db: db, logg: logg, password: password, rng: rng}
}

// Run resets the five tables and writes the demo dataset, finishing with a
// points-ranked leaderboard.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	if err := s.reset(ctx); err != nil {
		return nil, fmt.Errorf("reset tables: %w", err)
	}

	teams, users, err := s.createTeamsAndUsers(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := s.createActivities(ctx, users)
	if err != nil {
		return nil, err
	}
	workoutCount, err := s.createWorkouts(ctx)
	if err != nil {
		return nil, err
	}
	entryCount, err := s.createLeaderboard(ctx, teams, users, activities)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Teams:       len(teams),
		Users:       len(users),
		Activities:  len(activities),
		Workouts:    workoutCount,
		Leaderboard: entryCount,
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"teams":       summary.Teams,
			"users":       summary.Users,
			"activities":  summary.Activities,
			"workouts":    summary.Workouts,
			"leaderboard": summary.Leaderboard,
		})
		s.logg.Info(ctx, "seed complete")
	}
	return summary, nil
}

// reset clears all five tables, collecting every failure before reporting.
func (s *Seeder) reset(ctx context.Context) error {
	tables := []string{"leaderboard", "activities", "workouts", "users", "teams"}
	var errs error
	for _, table := range tables {
		if err := s.db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("clear %s: %w", table, err))
		}
	}
	return errs
}

func (s *Seeder) createTeamsAndUsers(ctx context.Context) ([]models.Team, []models.User, error) {
	var teams []models.Team
	var users []models.User

	for _, def := range demoTeams {
		team := models.Team{
			ID:          uuid.New(),
			Name:        def.name,
			Description: def.description,
			MemberIDs:   dbtypes.UUIDArray{},
		}
		for _, member := range def.members {
			hash, err := security.HashPassword("changeme-"+member.username, s.password)
			if err != nil {
				return nil, nil, fmt.Errorf("hash password for %s: %w", member.username, err)
			}
			teamID := team.ID
			user := models.User{
				ID:           uuid.New(),
				Username:     member.username,
				Email:        member.email,
				PasswordHash: hash,
				FirstName:    member.firstName,
				LastName:     member.lastName,
				TeamID:       &teamID,
			}
			team.MemberIDs = append(team.MemberIDs, user.ID)
			users = append(users, user)
		}
		team.CreatedBy = team.MemberIDs[0]
		teams = append(teams, team)
	}

	if err := s.db.WithContext(ctx).Create(&teams).Error; err != nil {
		return nil, nil, fmt.Errorf("insert teams: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, nil, fmt.Errorf("insert users: %w", err)
	}
	return teams, users, nil
}

func (s *Seeder) createActivities(ctx context.Context, users []models.User) ([]models.Activity, error) {
	var activities []models.Activity
	now := time.Now()

	for _, user := range users {
		count := 5 + s.rng.Intn(6)
		for i := 0; i < count; i++ {
			distance := float64(s.rng.Intn(1900)+100) / 100.0
			activities = append(activities, models.Activity{
				ID:             uuid.New(),
				UserID:         user.ID,
				ActivityType:   activityTypes[s.rng.Intn(len(activityTypes))],
				Duration:       15 + s.rng.Intn(106),
				Distance:       &distance,
				CaloriesBurned: 100 + s.rng.Intn(701),
				Date:           now.AddDate(0, 0, -s.rng.Intn(31)),
				Notes:          fmt.Sprintf("Great workout session #%d", i+1),
			})
		}
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&activities, 100).Error; err != nil {
		return nil, fmt.Errorf("insert activities: %w", err)
	}
	return activities, nil
}

func (s *Seeder) createWorkouts(ctx context.Context) (int, error) {
	var workouts []models.Workout
	for _, def := range demoWorkouts {
		workouts = append(workouts, models.Workout{
			ID:                uuid.New(),
			Name:              def.name,
			Description:       def.description,
			ActivityType:      def.activityType,
			DifficultyLevel:   def.difficulty,
			EstimatedDuration: def.duration,
			EstimatedCalories: def.calories,
			Exercises:         dbtypes.ExerciseList{},
		})
	}
	if err := s.db.WithContext(ctx).Create(&workouts).Error; err != nil {
		return 0, fmt.Errorf("insert workouts: %w", err)
	}
	return len(workouts), nil
}

func (s *Seeder) createLeaderboard(ctx context.Context, teams []models.Team, users []models.User, activities []models.Activity) (int, error) {
	teamNames := map[uuid.UUID]string{}
	for _, team := range teams {
		teamNames[team.ID] = team.Name
	}

	entries := BuildEntries(users, activities, teamNames)
	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return 0, fmt.Errorf("insert leaderboard: %w", err)
	}
	return len(entries), nil
}

// BuildEntries aggregates the per-user totals and assigns dense ranks by
// descending points.
func BuildEntries(users []models.User, activities []models.Activity, teamNames map[uuid.UUID]string) []models.LeaderboardEntry {
	byUser := map[uuid.UUID][]models.Activity{}
	for _, activity := range activities {
		byUser[activity.UserID] = append(byUser[activity.UserID], activity)
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		rows := byUser[user.ID]
		entry := models.LeaderboardEntry{
			ID:              uuid.New(),
			UserID:          user.ID,
			Username:        user.Username,
			TeamID:          user.TeamID,
			TotalActivities: len(rows),
		}
		if user.TeamID != nil {
			if name, ok := teamNames[*user.TeamID]; ok {
				entry.TeamName = &name
			}
		}
		distance := decimal.Zero
		for _, row := range rows {
			entry.TotalCalories += row.CaloriesBurned
			entry.TotalDuration += row.Duration
			if row.Distance != nil {
				distance = distance.Add(decimal.NewFromFloat(*row.Distance))
			}
		}
		entry.TotalDistance = distance.Round(2).InexactFloat64()
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return leaderboard.Points(entries[i]) > leaderboard.Points(entries[j])
	})
	for i := range entries {
		rank := i + 1
		entries[i].Rank = &rank
	}
	return entries
}
