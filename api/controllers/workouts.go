package controllers

import (
	"net/http"

	"github.com/octofitlabs/octofit-backend/api/responses"
	"github.com/octofitlabs/octofit-backend/api/validators"
	"github.com/octofitlabs/octofit-backend/internal/workouts"
	dbtypes "github.com/octofitlabs/octofit-backend/pkg/db/types"
	"github.com/octofitlabs/octofit-backend/pkg/logger"
)

type createWorkoutRequest struct {
	Name              string               `json:"name" validate:"required,min=2,max=128"`
	Description       string               `json:"description"`
	ActivityType      string               `json:"activity_type" validate:"required"`
	DifficultyLevel   string               `json:"difficulty_level" validate:"required"`
	EstimatedDuration int                  `json:"estimated_duration" validate:"min=0"`
	EstimatedCalories int                  `json:"estimated_calories" validate:"min=0"`
	Exercises         dbtypes.ExerciseList `json:"exercises"`
}

type updateWorkoutRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=128"`
	Description       string `json:"description"`
	ActivityType      string `json:"activity_type" validate:"required"`
	DifficultyLevel   string `json:"difficulty_level" validate:"required"`
	EstimatedDuration int    `json:"estimated_duration" validate:"min=0"`
	EstimatedCalories int    `json:"estimated_calories" validate:"min=0"`
}

// CreateWorkout registers a suggested routine.
func CreateWorkout(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createWorkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.Create(r.Context(), workouts.CreateParams{
			Name:              req.Name,
			Description:       req.Description,
			ActivityType:      req.ActivityType,
			DifficultyLevel:   req.DifficultyLevel,
			EstimatedDuration: req.EstimatedDuration,
			EstimatedCalories: req.EstimatedCalories,
			Exercises:         req.Exercises,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, workout)
	}
}

// GetWorkout returns one routine by id.
func GetWorkout(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "workoutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		workout, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, workout)
	}
}

// UpdateWorkout replaces routine fields. Exercises are managed separately.
func UpdateWorkout(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "workoutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateWorkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.Update(r.Context(), id, workouts.UpdateParams{
			Name:              req.Name,
			Description:       req.Description,
			ActivityType:      req.ActivityType,
			DifficultyLevel:   req.DifficultyLevel,
			EstimatedDuration: req.EstimatedDuration,
			EstimatedCalories: req.EstimatedCalories,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, workout)
	}
}

// DeleteWorkout drops a routine.
func DeleteWorkout(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "workoutId")
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

// ListWorkouts returns routines, optionally filtered by difficulty or type.
func ListWorkouts(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if difficulty := validators.SanitizeString(r.URL.Query().Get("difficulty"), 32); difficulty != "" {
			rows, err := svc.ByDifficulty(r.Context(), difficulty)
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

// WorkoutsByDifficulty returns routines at one difficulty level.
func WorkoutsByDifficulty(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		difficulty := validators.SanitizeString(r.URL.Query().Get("difficulty"), 32)
		rows, err := svc.ByDifficulty(r.Context(), difficulty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// WorkoutsByType matches routines by activity type substring.
func WorkoutsByType(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
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

// RecommendWorkouts suggests routines from the athlete's recent activity mix.
func RecommendWorkouts(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseQueryUUID(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rec, err := svc.Recommend(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rec)
	}
}
