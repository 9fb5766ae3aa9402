package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stridelog/stridelog/internal/config"
	"github.com/stridelog/stridelog/internal/db"
	"github.com/stridelog/stridelog/internal/repository"
	"github.com/stridelog/stridelog/internal/service"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	RunService         *service.RunService
	StreakService      *service.StreakService
	ProgressionService *service.ProgressionService
	WorkoutService     *service.WorkoutService
	ExportService      *service.ExportService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	runRepository := repository.NewRunRepository(database)
	streakRepository := repository.NewStreakRepository(database)
	freezeRepository := repository.NewFreezeRepository(database)
	exerciseRepository := repository.NewExerciseRepository(database)
	workoutRepository := repository.NewWorkoutRepository(database)
	workoutSetRepository := repository.NewWorkoutSetRepository(database)
	recordRepository := repository.NewPersonalRecordRepository(database)

	// Services
	streakService := service.NewStreakService(
		streakRepository,
		freezeRepository,
		runRepository,
		cfg.StreakMinDistanceKm,
		cfg.StreakMinDurationSeconds,
		cfg.StreakMonthlyFreezeQuota,
	)
	runService := service.NewRunService(runRepository, streakService)
	progressionService := service.NewProgressionService(
		exerciseRepository,
		workoutSetRepository,
		recordRepository,
		cfg.ProgressionHistorySessions,
	)
	workoutService := service.NewWorkoutService(
		workoutRepository,
		workoutSetRepository,
		exerciseRepository,
		progressionService,
	)
	exportService := service.NewExportService(runRepository)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		RunService:         runService,
		StreakService:      streakService,
		ProgressionService: progressionService,
		WorkoutService:     workoutService,
		ExportService:      exportService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
