package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/repository"
	"github.com/stridelog/stridelog/internal/stats"
)

// maxStreakWalkDays caps the backward walk at ten years so it
// terminates even over corrupted data.
const maxStreakWalkDays = 3650

var (
	ErrActiveStreakConflict = errors.New("more than one active streak")
)

// StreakService computes and maintains the consecutive-day run streak.
// It assumes a single logical writer: UpdateStreak and UseStreakFreeze
// are read-then-write sequences with no concurrency protection, and
// overlapping invocations are not safe.
type StreakService struct {
	streaks repository.StreakRepository
	freezes repository.FreezeRepository
	runs    repository.RunRepository

	// Qualification thresholds; zero means any run qualifies.
	minDistanceKm      float64
	minDurationSeconds int

	monthlyQuota int
	now          func() time.Time
}

func NewStreakService(
	streaks repository.StreakRepository,
	freezes repository.FreezeRepository,
	runs repository.RunRepository,
	minDistanceKm float64,
	minDurationSeconds int,
	monthlyQuota int,
) *StreakService {
	return &StreakService{
		streaks:            streaks,
		freezes:            freezes,
		runs:               runs,
		minDistanceKm:      minDistanceKm,
		minDurationSeconds: minDurationSeconds,
		monthlyQuota:       monthlyQuota,
		now:                time.Now,
	}
}

// WithClock overrides the service clock. Streak math depends on
// "today" and "current month", so tests pin it.
func (s *StreakService) WithClock(now func() time.Time) *StreakService {
	s.now = now
	return s
}

// ComputeCurrentStreak walks backward from today one calendar day at a
// time. A day increments the streak iff at least one run on it meets
// both minimums. A freeze day is exempt: the walk continues without
// incrementing. An empty today is skipped without breaking, since the
// day is still in progress. The first ordinary miss ends the walk.
func (s *StreakService) ComputeCurrentStreak(minDistanceKm float64, minDurationSeconds int) (int, error) {
	streak, err := s.streaks.Active()
	if err != nil && !errors.Is(err, repository.ErrNoActiveStreak) {
		return 0, fmt.Errorf("load active streak: %w", err)
	}

	today := stats.Day(s.now())
	day := today
	count := 0

	for i := 0; i < maxStreakWalkDays; i++ {
		runs, err := s.runs.OnDate(day)
		if err != nil {
			return 0, fmt.Errorf("query runs on %s: %w", day, err)
		}

		// Same-day runs collapse to one boolean; distances are not
		// summed across runs for qualification.
		if anyQualifies(runs, minDistanceKm, minDurationSeconds) {
			count++
			day = stats.AddDays(day, -1)
			continue
		}

		// Freezes only apply while a streak is active. A freeze keeps
		// the walk alive but never increments the count.
		if streak != nil {
			freezes, err := s.freezes.OnDate(streak.ID, day)
			if err != nil {
				return 0, fmt.Errorf("query freezes on %s: %w", day, err)
			}
			if len(freezes) > 0 {
				day = stats.AddDays(day, -1)
				continue
			}
		}

		if day == today {
			day = stats.AddDays(day, -1)
			continue
		}

		break
	}

	return count, nil
}

// UpdateStreak is invoked after every qualifying run is persisted.
// With no active streak it starts one at length 1; otherwise it
// recomputes the cached length and clears any end date.
func (s *StreakService) UpdateStreak(date string) error {
	streak, err := s.streaks.Active()
	if errors.Is(err, repository.ErrNoActiveStreak) {
		now := s.now()
		created := &model.Streak{
			ID:            uuid.New().String(),
			StartDate:     date,
			CurrentLength: 1,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		// The partial unique index rejects a second active row if
		// another writer slipped in.
		err = s.streaks.Create(created)
		if err != nil {
			return fmt.Errorf("create streak: %w", err)
		}
		slog.Info("streak started", "streak_id", created.ID, "start_date", date)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load active streak: %w", err)
	}

	active, err := s.streaks.CountActive()
	if err != nil {
		return fmt.Errorf("count active streaks: %w", err)
	}
	if active > 1 {
		return ErrActiveStreakConflict
	}

	length, err := s.ComputeCurrentStreak(s.minDistanceKm, s.minDurationSeconds)
	if err != nil {
		return err
	}

	streak.CurrentLength = length
	streak.EndDate = nil
	streak.UpdatedAt = s.now()

	err = s.streaks.Update(streak)
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}

	return nil
}

// UseStreakFreeze exempts a day from breaking the active streak.
// Returns false without error when no streak is active or the monthly
// quota is spent; those are expected outcomes, not failures. The quota
// counts freeze rows dated in the current calendar month.
func (s *StreakService) UseStreakFreeze(date, reason string) (bool, error) {
	streak, err := s.streaks.Active()
	if errors.Is(err, repository.ErrNoActiveStreak) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load active streak: %w", err)
	}

	used, err := s.freezes.CountInMonth(streak.ID, stats.Month(s.now()))
	if err != nil {
		return false, fmt.Errorf("count freezes: %w", err)
	}
	if used >= s.monthlyQuota {
		return false, nil
	}

	freeze := &model.StreakFreeze{
		ID:        uuid.New().String(),
		StreakID:  streak.ID,
		Date:      date,
		CreatedAt: s.now(),
	}
	if reason != "" {
		freeze.Reason = &reason
	}

	err = s.freezes.Create(freeze)
	if err != nil {
		return false, fmt.Errorf("create freeze: %w", err)
	}

	// freezes_used is a display-only lifetime counter; quota
	// enforcement above reads the rows.
	streak.FreezesUsed++
	streak.UpdatedAt = s.now()
	err = s.streaks.Update(streak)
	if err != nil {
		return false, fmt.Errorf("update streak: %w", err)
	}

	slog.Info("streak freeze used", "streak_id", streak.ID, "date", date, "used_this_month", used+1)
	return true, nil
}

// EndStreak explicitly closes the active streak. The lazy recompute
// model never ends a streak on its own; a broken streak just computes
// to a shorter length until this is called.
func (s *StreakService) EndStreak() (bool, error) {
	streak, err := s.streaks.Active()
	if errors.Is(err, repository.ErrNoActiveStreak) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load active streak: %w", err)
	}

	today := stats.Day(s.now())
	streak.IsActive = false
	streak.EndDate = &today
	streak.UpdatedAt = s.now()

	err = s.streaks.Update(streak)
	if err != nil {
		return false, fmt.Errorf("update streak: %w", err)
	}

	slog.Info("streak ended", "streak_id", streak.ID, "length", streak.CurrentLength)
	return true, nil
}

// Qualifies applies the configured thresholds to a run.
func (s *StreakService) Qualifies(run *model.Run) bool {
	return run.Qualifies(s.minDistanceKm, s.minDurationSeconds)
}

// Active returns the active streak row, nil when none exists.
func (s *StreakService) Active() (*model.Streak, error) {
	streak, err := s.streaks.Active()
	if errors.Is(err, repository.ErrNoActiveStreak) {
		return nil, nil
	}
	return streak, err
}

func anyQualifies(runs []*model.Run, minDistanceKm float64, minDurationSeconds int) bool {
	for _, r := range runs {
		if r.Qualifies(minDistanceKm, minDurationSeconds) {
			return true
		}
	}
	return false
}
