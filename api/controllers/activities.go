package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/octofitlabs/octofit-backend/api/responses"
	"github.com/octofitlabs/octofit-backend/api/validators"
	"github.com/octofitlabs/octofit-backend/internal/activities"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
	"github.com/octofitlabs/octofit-backend/pkg/logger"
)

type createActivityRequest struct {
	UserID         string   `json:"user_id" validate:"required,uuid"`
	ActivityType   string   `json:"activity_type" validate:"required"`
	Duration       int      `json:"duration" validate:"min=0"`
	Distance       *float64 `json:"distance"`
	CaloriesBurned int      `json:"calories_burned" validate:"min=0"`
	Date           string   `json:"date" validate:"required"`
	Notes          string   `json:"notes"`
}

type updateActivityRequest struct {
	ActivityType   string   `json:"activity_type" validate:"required"`
	Duration       int      `json:"duration" validate:"min=0"`
	Distance       *float64 `json:"distance"`
	CaloriesBurned int      `json:"calories_burned" validate:"min=0"`
	Date           string   `json:"date" validate:"required"`
	Notes          string   `json:"notes"`
}

func parseActivityDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date must be YYYY-MM-DD")
	}
	return date, nil
}

// CreateActivity records one workout session.
func CreateActivity(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createActivityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user_id"))
			return
		}
		date, err := parseActivityDate(req.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activity, err := svc.Create(r.Context(), activities.CreateParams{
			UserID:         userID,
			ActivityType:   req.ActivityType,
			Duration:       req.Duration,
			Distance:       req.Distance,
			CaloriesBurned: req.CaloriesBurned,
			Date:           date,
			Notes:          req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, activity)
	}
}

// GetActivity returns one record by id.
func GetActivity(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "activityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		activity, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, activity)
	}
}

// UpdateActivity replaces a recorded session.
func UpdateActivity(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "activityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateActivityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := parseActivityDate(req.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activity, err := svc.Update(r.Context(), id, activities.UpdateParams{
			ActivityType:   req.ActivityType,
			Duration:       req.Duration,
			Distance:       req.Distance,
			CaloriesBurned: req.CaloriesBurned,
			Date:           date,
			Notes:          req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, activity)
	}
}

// DeleteActivity drops one record.
func DeleteActivity(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "activityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// ListActivities returns records, optionally filtered by user or type.
func ListActivities(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := validators.SanitizeString(r.URL.Query().Get("user_id"), 64); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user_id"))
				return
			}
			rows, err := svc.ListByUser(r.Context(), userID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
			return
		}

		if activityType := validators.SanitizeString(r.URL.Query().Get("type"), 128); activityType != "" {
			rows, err := svc.SearchByType(r.Context(), activityType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ActivitiesByUser returns one athlete's full history.
func ActivitiesByUser(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseQueryUUID(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ActivitiesByType matches records by activity type substring.
func ActivitiesByType(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activityType := validators.SanitizeString(r.URL.Query().Get("type"), 128)
		rows, err := svc.SearchByType(r.Context(), activityType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// UserActivityTotals returns the aggregate for one athlete's history.
func UserActivityTotals(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		totals, err := svc.Totals(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}
