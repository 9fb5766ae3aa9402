package stats

import (
	"math"

	"github.com/stridelog/stridelog/internal/model"
)

// Pace converts distance and duration to minutes per kilometer. A zero
// distance is a caller-side precondition violation and yields +Inf.
func Pace(distanceKm float64, durationSeconds int) float64 {
	return float64(durationSeconds) / 60 / distanceKm
}

// Volume sums weight*reps over the non-warmup sets.
func Volume(sets []model.WorkoutSet) float64 {
	var total float64
	for _, s := range sets {
		if s.IsWarmup {
			continue
		}
		total += s.WeightKg * float64(s.Reps)
	}
	return total
}

// TotalReps sums reps over the non-warmup sets.
func TotalReps(sets []model.WorkoutSet) int {
	var total int
	for _, s := range sets {
		if s.IsWarmup {
			continue
		}
		total += s.Reps
	}
	return total
}

// MaxWeight returns the heaviest non-warmup set weight, 0 if none.
func MaxWeight(sets []model.WorkoutSet) float64 {
	var max float64
	for _, s := range sets {
		if s.IsWarmup {
			continue
		}
		if s.WeightKg > max {
			max = s.WeightKg
		}
	}
	return max
}

// Estimate1RM estimates a one-rep max from a submaximal set using the
// Brzycki formula: weight * 36 / (37 - reps). The formula degrades as
// reps approach 37; callers guard the rep range.
func Estimate1RM(weightKg float64, reps int) float64 {
	if reps == 1 {
		return weightKg
	}
	return weightKg * 36 / float64(37-reps)
}

// RoundToHalf rounds to the nearest 0.5, the smallest practical plate
// increment.
func RoundToHalf(x float64) float64 {
	return math.Round(x*2) / 2
}

// SumDistance totals run distance in km.
func SumDistance(runs []*model.Run) float64 {
	var total float64
	for _, r := range runs {
		total += r.DistanceKm
	}
	return total
}

// SumDuration totals run duration in seconds.
func SumDuration(runs []*model.Run) int {
	var total int
	for _, r := range runs {
		total += r.DurationSeconds
	}
	return total
}
