package model

const (
	ActionMaintain  = "maintain"
	ActionAddWeight = "add_weight"
	ActionAddReps   = "add_reps"
	ActionAddSets   = "add_sets"
	ActionDeload    = "deload"
)

// Recommendation is the progression engine's suggested next training
// adjustment for an exercise. Reason is the only user-facing text the
// engine produces; the suggested fields are set only for the actions
// they apply to.
type Recommendation struct {
	ExerciseID        string   `json:"exercise_id"`
	ExerciseName      string   `json:"exercise_name"`
	Action            string   `json:"action"`
	Reason            string   `json:"reason"`
	SuggestedWeightKg *float64 `json:"suggested_weight_kg,omitempty"`
	SuggestedReps     *int     `json:"suggested_reps,omitempty"`
	SuggestedSets     *int     `json:"suggested_sets,omitempty"`
}
