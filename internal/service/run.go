package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/repository"
	"github.com/stridelog/stridelog/internal/stats"
)

// RunService persists runs and triggers the streak recompute after
// each qualifying one, synchronously, before returning to the caller.
type RunService struct {
	runs   repository.RunRepository
	streak *StreakService
	now    func() time.Time
}

func NewRunService(runs repository.RunRepository, streak *StreakService) *RunService {
	return &RunService{
		runs:   runs,
		streak: streak,
		now:    time.Now,
	}
}

// LogRun records a run on a calendar day. Pace is derived at write
// time and stored with the row; a zero distance is a caller-side
// precondition violation.
func (s *RunService) LogRun(date string, distanceKm float64, durationSeconds int) (*model.Run, error) {
	run := &model.Run{
		ID:              uuid.New().String(),
		Date:            date,
		DistanceKm:      distanceKm,
		DurationSeconds: durationSeconds,
		PaceMinPerKm:    stats.Pace(distanceKm, durationSeconds),
		CreatedAt:       s.now(),
	}

	err := s.runs.Create(run)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	if s.streak.Qualifies(run) {
		err = s.streak.UpdateStreak(date)
		if err != nil {
			return nil, fmt.Errorf("update streak: %w", err)
		}
	} else {
		slog.Debug("run does not qualify for streak", "run_id", run.ID, "date", date)
	}

	return run, nil
}

// Runs lists runs within [from, to], both endpoints inclusive.
func (s *RunService) Runs(from, to string) ([]*model.Run, error) {
	return s.runs.InRange(from, to)
}

// Delete removes a run. The streak cache is not recomputed here; the
// next read or qualifying write refreshes it.
func (s *RunService) Delete(id string) error {
	return s.runs.Delete(id)
}
