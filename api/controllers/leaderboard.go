package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/octofitlabs/octofit-backend/api/responses"
	"github.com/octofitlabs/octofit-backend/api/validators"
	"github.com/octofitlabs/octofit-backend/internal/leaderboard"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
	"github.com/octofitlabs/octofit-backend/pkg/logger"
)

const maxTopLimit = 100

// LeaderboardTop returns the highest-calorie entries, best first.
func LeaderboardTop(svc leaderboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", leaderboard.DefaultTopLimit, 1, maxTopLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.Top(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// LeaderboardList returns every entry in ranked order.
func LeaderboardList(svc leaderboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

type refreshRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// LeaderboardRefresh recomputes one athlete's totals from their history.
func LeaderboardRefresh(svc leaderboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user_id"))
			return
		}

		entry, err := svc.Refresh(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// LeaderboardReindex recomputes ranks for every entry by points.
func LeaderboardReindex(svc leaderboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Reindex(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"reindexed": count})
	}
}
