// ABOUTME: Meal model with macro nutrients.
// ABOUTME: MealType enumerates breakfast, lunch, dinner and snack.
package models

import "time"

// MealType is the slot a meal was eaten in.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes lists the valid meal types.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// IsValidMealType checks if a string is a valid meal type.
func IsValidMealType(s string) bool {
	for _, mt := range AllMealTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// Meal is a logged meal owned by the backend.
type Meal struct {
	ID       string    `json:"id,omitempty" yaml:"id,omitempty" response:"required"`
	Title    string    `json:"title" yaml:"title" validate:"required"`
	Type     MealType  `json:"type" yaml:"type" validate:"required,oneof=breakfast lunch dinner snack"`
	Calories float64   `json:"calories" yaml:"calories" validate:"gte=0"`
	Protein  float64   `json:"protein" yaml:"protein" validate:"gte=0"`
	Carbs    float64   `json:"carbs" yaml:"carbs" validate:"gte=0"`
	Fat      float64   `json:"fat" yaml:"fat" validate:"gte=0"`
	DateTime time.Time `json:"dateTime" yaml:"date_time" validate:"required" response:"required"`
	Notes    *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewMeal creates a meal eaten now.
func NewMeal(title string, mealType MealType, calories, protein, carbs, fat float64) *Meal {
	return &Meal{
		Title:    title,
		Type:     mealType,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		DateTime: time.Now(),
	}
}

// WithDateTime sets when the meal was eaten.
func (m *Meal) WithDateTime(t time.Time) *Meal {
	m.DateTime = t
	return m
}

// WithNotes sets notes on the meal.
func (m *Meal) WithNotes(notes string) *Meal {
	m.Notes = &notes
	return m
}

// Validate checks the meal form constraints.
func (m *Meal) Validate() error {
	return check(m)
}

// ValidateResponse checks a meal read from the server has an id and a timestamp.
func (m *Meal) ValidateResponse() error {
	return checkShape(m)
}
