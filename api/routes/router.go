package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octofitlabs/octofit-backend/api/controllers"
	"github.com/octofitlabs/octofit-backend/api/middleware"
	"github.com/octofitlabs/octofit-backend/internal/activities"
	"github.com/octofitlabs/octofit-backend/internal/leaderboard"
	"github.com/octofitlabs/octofit-backend/internal/teams"
	"github.com/octofitlabs/octofit-backend/internal/users"
	"github.com/octofitlabs/octofit-backend/internal/workouts"
	"github.com/octofitlabs/octofit-backend/pkg/config"
	"github.com/octofitlabs/octofit-backend/pkg/db"
	"github.com/octofitlabs/octofit-backend/pkg/logger"
	"github.com/octofitlabs/octofit-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	usersService users.Service,
	teamsService teams.Service,
	activitiesService activities.Service,
	leaderboardService leaderboard.Service,
	workoutsService workouts.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	readiness := controllers.ReadinessDeps(dbP, nil)
	if redisClient != nil {
		readiness = controllers.ReadinessDeps(dbP, redisClient)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/", controllers.CreateUser(usersService, logg))
		r.Get("/", controllers.ListUsers(usersService, logg))
		r.Get("/by-username", controllers.SearchUsersByUsername(usersService, logg))
		r.Get("/{userId}", controllers.GetUser(usersService, logg))
		r.Put("/{userId}", controllers.UpdateUser(usersService, logg))
		r.Delete("/{userId}", controllers.DeleteUser(usersService, logg))
		r.Get("/{userId}/totals", controllers.UserActivityTotals(activitiesService, logg))
	})

	r.Route("/api/v1/teams", func(r chi.Router) {
		r.Post("/", controllers.CreateTeam(teamsService, logg))
		r.Get("/", controllers.ListTeams(teamsService, logg))
		r.Get("/{teamId}", controllers.GetTeam(teamsService, logg))
		r.Put("/{teamId}", controllers.UpdateTeam(teamsService, logg))
		r.Delete("/{teamId}", controllers.DeleteTeam(teamsService, logg))
		r.Post("/{teamId}/members", controllers.AddTeamMember(teamsService, logg))
		r.Delete("/{teamId}/members/{userId}", controllers.RemoveTeamMember(teamsService, logg))
	})

	r.Route("/api/v1/activities", func(r chi.Router) {
		r.Post("/", controllers.CreateActivity(activitiesService, logg))
		r.Get("/", controllers.ListActivities(activitiesService, logg))
		r.Get("/by-user", controllers.ActivitiesByUser(activitiesService, logg))
		r.Get("/by-type", controllers.ActivitiesByType(activitiesService, logg))
		r.Get("/{activityId}", controllers.GetActivity(activitiesService, logg))
		r.Put("/{activityId}", controllers.UpdateActivity(activitiesService, logg))
		r.Delete("/{activityId}", controllers.DeleteActivity(activitiesService, logg))
	})

	r.Route("/api/v1/leaderboard", func(r chi.Router) {
		r.Get("/", controllers.LeaderboardList(leaderboardService, logg))
		r.Get("/top", controllers.LeaderboardTop(leaderboardService, logg))
		r.Post("/refresh", controllers.LeaderboardRefresh(leaderboardService, logg))
		r.Post("/reindex", controllers.LeaderboardReindex(leaderboardService, logg))
	})

	r.Route("/api/v1/workouts", func(r chi.Router) {
		r.Post("/", controllers.CreateWorkout(workoutsService, logg))
		r.Get("/", controllers.ListWorkouts(workoutsService, logg))
		r.Get("/by-difficulty", controllers.WorkoutsByDifficulty(workoutsService, logg))
		r.Get("/by-type", controllers.WorkoutsByType(workoutsService, logg))
		r.Get("/recommend", controllers.RecommendWorkouts(workoutsService, logg))
		r.Get("/{workoutId}", controllers.GetWorkout(workoutsService, logg))
		r.Put("/{workoutId}", controllers.UpdateWorkout(workoutsService, logg))
		r.Delete("/{workoutId}", controllers.DeleteWorkout(workoutsService, logg))
	})

	return r
}
