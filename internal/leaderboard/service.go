package leaderboard

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/internal/activities"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
	"github.com/octofitlabs/octofit-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

// DefaultTopLimit is used when a caller does not supply a limit.
const DefaultTopLimit = 10

// Aggregator is the totals read path consumed during a refresh.
type Aggregator interface {
	Totals(ctx context.Context, userID uuid.UUID) (activities.Totals, error)
}

// UserSource resolves the refreshed user.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TeamSource resolves the denormalized team name.
type TeamSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// Service defines the leaderboard engine operations.
type Service interface {
	Refresh(ctx context.Context, userID uuid.UUID) (*models.LeaderboardEntry, error)
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	List(ctx context.Context) ([]models.LeaderboardEntry, error)
	Reindex(ctx context.Context) (int, error)
}

// ServiceParams wires leaderboard dependencies.
type ServiceParams struct {
	Repo       Repository
	Aggregator Aggregator
	Users      UserSource
	Teams      TeamSource
	Cache      *TopCache
	Metrics    *metrics.EngineMetrics
}

type service struct {
	repo       Repository
	aggregator Aggregator
	users      UserSource
	teams      TeamSource
	cache      *TopCache
	metrics    *metrics.EngineMetrics
}

// NewService validates and wires the engine dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "leaderboard repository required")
	}
	if params.Aggregator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity aggregator required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user source required")
	}
	if params.Teams == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "team source required")
	}
	return &service{
		repo:       params.Repo,
		aggregator: params.Aggregator,
		users:      params.Users,
		teams:      params.Teams,
		cache:      params.Cache,
		metrics:    params.Metrics,
	}, nil
}

// Refresh recomputes the user's totals and upserts their entry. The operation
// is idempotent: with unchanged activity data two consecutive calls persist
// identical totals against the same single row.
func (s *service) Refresh(ctx context.Context, userID uuid.UUID) (entry *models.LeaderboardEntry, err error) {
	defer func(start time.Time) { s.metrics.Track("refresh", start, err) }(time.Now())

	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_id required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	totals, err := s.aggregator.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry = &models.LeaderboardEntry{
		ID:              uuid.New(),
		UserID:          userID,
		Username:        user.Username,
		TotalActivities: totals.TotalActivities,
		TotalCalories:   totals.TotalCalories,
		TotalDuration:   totals.TotalDuration,
		TotalDistance:   totals.TotalDistance,
	}

	// A dangling team reference is tolerated: the entry simply carries no
	// team fields.
	if user.TeamID != nil {
		team, err := s.teams.GetByID(ctx, *user.TeamID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve team")
		}
		if team != nil {
			entry.TeamID = &team.ID
			name := team.Name
			entry.TeamName = &name
		}
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert leaderboard entry")
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate leaderboard cache")
	}

	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read back leaderboard entry")
	}
	if stored != nil {
		entry = stored
	}
	return entry, nil
}

// Top returns the first limit entries ordered by total calories descending.
// Stored ranks are returned as-is; a read never recomputes them.
func (s *service) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer")
	}

	if entries, ok := s.cache.Get(ctx); ok {
		return truncate(entries, limit), nil
	}

	entries, err := s.repo.ListOrdered(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leaderboard")
	}
	// Cache write failures only cost the next read a store round trip.
	_ = s.cache.Set(ctx, entries)
	return truncate(entries, limit), nil
}

func (s *service) List(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.repo.ListOrdered(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leaderboard")
	}
	return entries, nil
}

// Reindex recomputes seeding points for every entry, sorts descending and
// writes rank 1..N. Points use a composite formula distinct from the live
// Top ordering, which stays calories-only.
func (s *service) Reindex(ctx context.Context) (count int, err error) {
	defer func(start time.Time) { s.metrics.Track("reindex", start, err) }(time.Now())

	entries, err := s.repo.ListOrdered(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leaderboard")
	}
	if len(entries) == 0 {
		return 0, nil
	}

	points := make(map[uuid.UUID]int64, len(entries))
	for _, entry := range entries {
		points[entry.ID] = Points(entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return points[entries[i].ID] > points[entries[j].ID]
	})
	for i := range entries {
		rank := i + 1
		entries[i].Rank = &rank
	}

	if err := s.repo.AssignRanks(ctx, entries); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign ranks")
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate leaderboard cache")
	}
	return len(entries), nil
}

// Points is the seeding-time composite score:
// calories + floor(distance*10) + duration.
func Points(entry models.LeaderboardEntry) int64 {
	distance := decimal.NewFromFloat(entry.TotalDistance).
		Mul(decimal.NewFromInt(10)).
		Floor().
		IntPart()
	return int64(entry.TotalCalories) + distance + int64(entry.TotalDuration)
}

func truncate(entries []models.LeaderboardEntry, limit int) []models.LeaderboardEntry {
	if limit >= len(entries) {
		return entries
	}
	return entries[:limit]
}
