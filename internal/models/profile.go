// ABOUTME: User profile model, a singleton per authenticated user.
// ABOUTME: Goal and Gender are fixed enums.
package models

// Goal is the user's primary fitness goal.
type Goal string

const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalMaintain       Goal = "maintain"
	GoalGainMuscle     Goal = "gain_muscle"
	GoalImproveFitness Goal = "improve_fitness"
)

// Gender as reported on the profile form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// UserProfile holds body metrics and goals for the current user.
type UserProfile struct {
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string  `json:"name" yaml:"name" validate:"required"`
	Email    string  `json:"email" yaml:"email" validate:"required,email"`
	Age      int     `json:"age" yaml:"age" validate:"gte=0,lte=150"`
	HeightCM float64 `json:"height_cm" yaml:"height_cm" validate:"gte=0"`
	WeightKG float64 `json:"weight_kg" yaml:"weight_kg" validate:"gte=0"`
	Goal     Goal    `json:"goal" yaml:"goal" validate:"omitempty,oneof=lose_weight maintain gain_muscle improve_fitness"`
	Gender   Gender  `json:"gender" yaml:"gender" validate:"omitempty,oneof=male female other"`
}

// Validate checks the profile form constraints.
func (p *UserProfile) Validate() error {
	return check(p)
}

// ValidateResponse accepts any decoded profile.
func (p *UserProfile) ValidateResponse() error {
	return checkShape(p)
}
