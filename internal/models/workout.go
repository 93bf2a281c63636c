// ABOUTME: Workout model for strength training entries.
// ABOUTME: Optional fields are pointers so "absent" and "zero" stay distinct.
package models

// Workout is a single exercise entry owned by the backend.
type Workout struct {
	ID              string   `json:"id,omitempty" yaml:"id,omitempty" response:"required"`
	Date            Date     `json:"date" yaml:"date" validate:"required" response:"required"`
	Name            string   `json:"name" yaml:"name" validate:"required"`
	MuscleGroup     string   `json:"muscleGroup" yaml:"muscle_group" validate:"required"`
	Sets            int      `json:"sets" yaml:"sets" validate:"gte=1"`
	Reps            int      `json:"reps" yaml:"reps" validate:"gte=1"`
	Weight          float64  `json:"weight" yaml:"weight" validate:"gte=0"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" yaml:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	CaloriesBurned  *float64 `json:"caloriesBurned,omitempty" yaml:"calories_burned,omitempty" validate:"omitempty,gte=0"`
	Notes           *string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewWorkout creates a workout for today.
func NewWorkout(name, muscleGroup string, sets, reps int, weight float64) *Workout {
	return &Workout{
		Date:        Today(),
		Name:        name,
		MuscleGroup: muscleGroup,
		Sets:        sets,
		Reps:        reps,
		Weight:      weight,
	}
}

// WithDate sets the workout date.
func (w *Workout) WithDate(d Date) *Workout {
	w.Date = d
	return w
}

// WithDuration sets the duration in minutes.
func (w *Workout) WithDuration(minutes int) *Workout {
	w.DurationMinutes = &minutes
	return w
}

// WithCaloriesBurned sets the calories burned.
func (w *Workout) WithCaloriesBurned(kcal float64) *Workout {
	w.CaloriesBurned = &kcal
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// Validate checks the workout form constraints.
func (w *Workout) Validate() error {
	return check(w)
}

// ValidateResponse checks a workout read from the server has an id and a date.
func (w *Workout) ValidateResponse() error {
	return checkShape(w)
}
