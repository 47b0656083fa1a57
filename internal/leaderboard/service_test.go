package leaderboard

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/internal/activities"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
)

// fakeRepository enforces the user_id uniqueness the real table carries.
type fakeRepository struct {
	entries map[uuid.UUID]*models.LeaderboardEntry

	upsertCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: map[uuid.UUID]*models.LeaderboardEntry{}}
}

func (f *fakeRepository) Upsert(ctx context.Context, entry *models.LeaderboardEntry) error {
	f.upsertCalls++
	if existing, ok := f.entries[entry.UserID]; ok {
		existing.Username = entry.Username
		existing.TeamID = entry.TeamID
		existing.TeamName = entry.TeamName
		existing.TotalActivities = entry.TotalActivities
		existing.TotalCalories = entry.TotalCalories
		existing.TotalDuration = entry.TotalDuration
		existing.TotalDistance = entry.TotalDistance
		existing.UpdatedAt = time.Now()
		return nil
	}
	clone := *entry
	clone.CreatedAt = time.Now()
	f.entries[entry.UserID] = &clone
	return nil
}

func (f *fakeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.LeaderboardEntry, error) {
	if entry, ok := f.entries[userID]; ok {
		clone := *entry
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeRepository) ListOrdered(ctx context.Context) ([]models.LeaderboardEntry, error) {
	out := make([]models.LeaderboardEntry, 0, len(f.entries))
	for _, entry := range f.entries {
		out = append(out, *entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalCalories != out[j].TotalCalories {
			return out[i].TotalCalories > out[j].TotalCalories
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeRepository) AssignRanks(ctx context.Context, ranked []models.LeaderboardEntry) error {
	for _, entry := range ranked {
		for _, stored := range f.entries {
			if stored.ID == entry.ID {
				rank := *entry.Rank
				stored.Rank = &rank
			}
		}
	}
	return nil
}

type fakeAggregator struct {
	totals map[uuid.UUID]activities.Totals
}

func (f *fakeAggregator) Totals(ctx context.Context, userID uuid.UUID) (activities.Totals, error) {
	return f.totals[userID], nil
}

type fakeUserSource struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserSource) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.users[id], nil
}

type fakeTeamSource struct {
	teams map[uuid.UUID]*models.Team
}

func (f *fakeTeamSource) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return f.teams[id], nil
}

type fixture struct {
	repo       *fakeRepository
	aggregator *fakeAggregator
	users      *fakeUserSource
	teams      *fakeTeamSource
	svc        Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:       newFakeRepository(),
		aggregator: &fakeAggregator{totals: map[uuid.UUID]activities.Totals{}},
		users:      &fakeUserSource{users: map[uuid.UUID]*models.User{}},
		teams:      &fakeTeamSource{teams: map[uuid.UUID]*models.Team{}},
	}
	svc, err := NewService(ServiceParams{
		Repo:       f.repo,
		Aggregator: f.aggregator,
		Users:      f.users,
		Teams:      f.teams,
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	f.svc = svc
	return f
}

func (f *fixture) addUser(username string, teamID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.users.users[id] = &models.User{ID: id, Username: username, TeamID: teamID}
	return id
}

func TestService_RefreshComputesTotals(t *testing.T) {
	f := newFixture(t)
	userID := f.addUser("ironman", nil)
	f.aggregator.totals[userID] = activities.Totals{
		TotalActivities: 2,
		TotalCalories:   500,
		TotalDuration:   50,
		TotalDistance:   5.0,
	}

	entry, err := f.svc.Refresh(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if entry.TotalActivities != 2 || entry.TotalCalories != 500 || entry.TotalDuration != 50 || entry.TotalDistance != 5.0 {
		t.Fatalf("unexpected totals: %+v", entry)
	}
	if entry.Username != "ironman" {
		t.Fatalf("expected denormalized username, got %q", entry.Username)
	}
}

func TestService_RefreshIsIdempotent(t *testing.T) {
	f := newFixture(t)
	userID := f.addUser("thor", nil)
	f.aggregator.totals[userID] = activities.Totals{TotalActivities: 1, TotalCalories: 300, TotalDuration: 30}

	first, err := f.svc.Refresh(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	second, err := f.svc.Refresh(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}

	if first.TotalCalories != second.TotalCalories || first.TotalActivities != second.TotalActivities {
		t.Fatalf("refresh not idempotent: %+v vs %+v", first, second)
	}
	if len(f.repo.entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(f.repo.entries))
	}
}

func TestService_RefreshUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Refresh(context.Background(), uuid.New())
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_RefreshRequiresUserID(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Refresh(context.Background(), uuid.Nil)
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_RefreshResolvesTeamName(t *testing.T) {
	f := newFixture(t)
	teamID := uuid.New()
	f.teams.teams[teamID] = &models.Team{ID: teamID, Name: "Team Marvel"}
	userID := f.addUser("hulk", &teamID)

	entry, err := f.svc.Refresh(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if entry.TeamName == nil || *entry.TeamName != "Team Marvel" {
		t.Fatalf("expected team name, got %+v", entry.TeamName)
	}
}

func TestService_RefreshToleratesDanglingTeam(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()
	userID := f.addUser("batman", &missing)

	entry, err := f.svc.Refresh(context.Background(), userID)
	if err != nil {
		t.Fatalf("dangling team reference should not fail refresh: %v", err)
	}
	if entry.TeamID != nil || entry.TeamName != nil {
		t.Fatalf("expected empty team fields, got %+v", entry)
	}
}

func TestService_TopOrdersByCalories(t *testing.T) {
	f := newFixture(t)
	for i, calories := range []int{500, 1500, 800} {
		userID := f.addUser(string(rune('a'+i)), nil)
		f.aggregator.totals[userID] = activities.Totals{TotalCalories: calories}
		if _, err := f.svc.Refresh(context.Background(), userID); err != nil {
			t.Fatalf("unexpected refresh error: %v", err)
		}
	}

	entries, err := f.svc.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected top error: %v", err)
	}
	got := []int{entries[0].TotalCalories, entries[1].TotalCalories, entries[2].TotalCalories}
	want := []int{1500, 800, 500}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected ordering %v, want %v", got, want)
		}
	}
}

func TestService_TopTruncates(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		userID := f.addUser(string(rune('a'+i)), nil)
		f.aggregator.totals[userID] = activities.Totals{TotalCalories: 100 * (i + 1)}
		if _, err := f.svc.Refresh(context.Background(), userID); err != nil {
			t.Fatalf("unexpected refresh error: %v", err)
		}
	}

	entries, err := f.svc.Top(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected top error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestService_TopRejectsNonPositiveLimit(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Top(context.Background(), 0)
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_ReindexAssignsDenseRanks(t *testing.T) {
	f := newFixture(t)
	totals := []activities.Totals{
		{TotalCalories: 300, TotalDuration: 30, TotalDistance: 5.0},  // 380 points
		{TotalCalories: 900, TotalDuration: 10, TotalDistance: 1.5},  // 925 points
		{TotalCalories: 500, TotalDuration: 60, TotalDistance: 12.3}, // 683 points
	}
	ids := make([]uuid.UUID, len(totals))
	for i, tot := range totals {
		userID := f.addUser(string(rune('a'+i)), nil)
		f.aggregator.totals[userID] = tot
		if _, err := f.svc.Refresh(context.Background(), userID); err != nil {
			t.Fatalf("unexpected refresh error: %v", err)
		}
		ids[i] = userID
	}

	count, err := f.svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("unexpected reindex error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 reindexed entries, got %d", count)
	}

	wantRanks := map[uuid.UUID]int{ids[1]: 1, ids[2]: 2, ids[0]: 3}
	seen := map[int]bool{}
	for userID, want := range wantRanks {
		entry := f.repo.entries[userID]
		if entry.Rank == nil || *entry.Rank != want {
			t.Fatalf("user %s expected rank %d, got %v", userID, want, entry.Rank)
		}
		if seen[*entry.Rank] {
			t.Fatalf("duplicate rank %d", *entry.Rank)
		}
		seen[*entry.Rank] = true
	}
}

func TestPointsFormula(t *testing.T) {
	entry := models.LeaderboardEntry{
		TotalCalories: 500,
		TotalDuration: 60,
		TotalDistance: 12.38,
	}
	// 500 + floor(123.8) + 60
	if got := Points(entry); got != 683 {
		t.Fatalf("expected 683 points, got %d", got)
	}
}
