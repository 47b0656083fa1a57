package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/octofitlabs/octofit-backend/internal/leaderboard"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
)

type testLeaderboardService struct {
	refreshFn func(ctx context.Context, userID uuid.UUID) (*models.LeaderboardEntry, error)
	topFn     func(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	listFn    func(ctx context.Context) ([]models.LeaderboardEntry, error)
	reindexFn func(ctx context.Context) (int, error)
}

func (s *testLeaderboardService) Refresh(ctx context.Context, userID uuid.UUID) (*models.LeaderboardEntry, error) {
	if s.refreshFn != nil {
		return s.refreshFn(ctx, userID)
	}
	return &models.LeaderboardEntry{UserID: userID}, nil
}

func (s *testLeaderboardService) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if s.topFn != nil {
		return s.topFn(ctx, limit)
	}
	return nil, nil
}

func (s *testLeaderboardService) List(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *testLeaderboardService) Reindex(ctx context.Context) (int, error) {
	if s.reindexFn != nil {
		return s.reindexFn(ctx)
	}
	return 0, nil
}

func TestLeaderboardTopDefaultsLimit(t *testing.T) {
	var gotLimit int
	svc := &testLeaderboardService{
		topFn: func(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
			gotLimit = limit
			return []models.LeaderboardEntry{{Username: "ironman", TotalCalories: 1500}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/top", nil)
	resp := httptest.NewRecorder()
	LeaderboardTop(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if gotLimit != leaderboard.DefaultTopLimit {
		t.Fatalf("expected default limit %d, got %d", leaderboard.DefaultTopLimit, gotLimit)
	}
}

func TestLeaderboardTopRejectsBadLimit(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3", "101"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/top?limit="+raw, nil)
		resp := httptest.NewRecorder()
		LeaderboardTop(&testLeaderboardService{}, testLogger())(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("limit %q expected 400, got %d", raw, resp.Code)
		}
	}
}

func TestLeaderboardRefreshSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &testLeaderboardService{
		refreshFn: func(ctx context.Context, id uuid.UUID) (*models.LeaderboardEntry, error) {
			if id != userID {
				t.Fatalf("unexpected user %s", id)
			}
			return &models.LeaderboardEntry{UserID: id, Username: "thor", TotalCalories: 900}, nil
		},
	}

	body := strings.NewReader(`{"user_id":"` + userID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaderboard/refresh", body)
	resp := httptest.NewRecorder()
	LeaderboardRefresh(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data models.LeaderboardEntry `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Username != "thor" {
		t.Fatalf("unexpected entry %+v", envelope.Data)
	}
}

func TestLeaderboardRefreshUnknownUser(t *testing.T) {
	svc := &testLeaderboardService{
		refreshFn: func(ctx context.Context, id uuid.UUID) (*models.LeaderboardEntry, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		},
	}

	body := strings.NewReader(`{"user_id":"` + uuid.NewString() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaderboard/refresh", body)
	resp := httptest.NewRecorder()
	LeaderboardRefresh(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestLeaderboardRefreshInvalidID(t *testing.T) {
	body := strings.NewReader(`{"user_id":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaderboard/refresh", body)
	resp := httptest.NewRecorder()
	LeaderboardRefresh(&testLeaderboardService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLeaderboardReindex(t *testing.T) {
	svc := &testLeaderboardService{
		reindexFn: func(ctx context.Context) (int, error) { return 10, nil },
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaderboard/reindex", nil)
	resp := httptest.NewRecorder()
	LeaderboardReindex(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["reindexed"] != 10 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
