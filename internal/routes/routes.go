package routes

import (
	"net/http"
	"time"

	"github.com/stridelog/stridelog/internal/app"
	"github.com/stridelog/stridelog/internal/handler"
	"github.com/stridelog/stridelog/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	run := handler.NewRunHandler(app.RunService)
	streak := handler.NewStreakHandler(app.StreakService, app.Cfg.StreakMinDistanceKm, app.Cfg.StreakMinDurationSeconds)
	workout := handler.NewWorkoutHandler(app.WorkoutService)
	exercise := handler.NewExerciseHandler(app.WorkoutService, app.ProgressionService)
	stats := handler.NewStatsHandler(app.RunService)
	export := handler.NewExportHandler(app.ExportService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Runs
	mux.HandleFunc("POST /api/runs", run.Create)
	mux.HandleFunc("GET /api/runs", run.List)
	mux.HandleFunc("DELETE /api/runs/{id}", run.Delete)

	// Streak
	mux.HandleFunc("GET /api/streak", streak.Current)
	mux.HandleFunc("POST /api/streak/freezes", streak.UseFreeze)
	mux.HandleFunc("POST /api/streak/end", streak.End)

	// Workouts
	mux.HandleFunc("POST /api/workouts", workout.Create)
	mux.HandleFunc("POST /api/workouts/{id}/sets", workout.LogSet)

	// Exercises
	mux.HandleFunc("GET /api/exercises", exercise.List)
	mux.HandleFunc("POST /api/exercises", exercise.Create)
	mux.HandleFunc("GET /api/exercises/{id}/recommendation", exercise.Recommendation)
	mux.HandleFunc("GET /api/exercises/{id}/records", exercise.Records)

	// Stats & export
	mux.HandleFunc("GET /api/stats/summary", stats.Summary)
	mux.HandleFunc("GET /api/export/runs.csv", export.RunsCSV)
	mux.HandleFunc("GET /api/export/runs.json", export.RunsJSON)

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.RateLimit(240, time.Minute),
	)
}
