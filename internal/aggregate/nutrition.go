// ABOUTME: Nutrition aggregates: daily macro totals and per-day meal rows.
// ABOUTME: Pure functions; empty input yields zero totals.
package aggregate

import (
	"github.com/harperreed/wellness/internal/models"
)

// Macros is a calorie and macronutrient total.
type Macros struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
}

func (m Macros) add(meal *models.Meal) Macros {
	return Macros{
		Calories: m.Calories + num(meal.Calories),
		Protein:  m.Protein + num(meal.Protein),
		Carbs:    m.Carbs + num(meal.Carbs),
		Fat:      m.Fat + num(meal.Fat),
	}
}

// DailyMacros sums macros for meals eaten on day (local calendar date).
func DailyMacros(meals []*models.Meal, day models.Date) Macros {
	var total Macros
	for _, m := range meals {
		if m == nil || !models.DateOf(m.DateTime).Equal(day) {
			continue
		}
		total = total.add(m)
	}
	return total
}

// MealDay is one chart row of meal totals.
type MealDay struct {
	Date  models.Date `json:"date" yaml:"date"`
	Meals int         `json:"meals" yaml:"meals"`
	Macros
}

// GroupMealsByDay returns one row per distinct local date, ascending.
func GroupMealsByDay(meals []*models.Meal) []MealDay {
	byDay := make(map[models.Date]*MealDay)
	for _, m := range meals {
		if m == nil {
			continue
		}
		d := models.DateOf(m.DateTime)
		row, ok := byDay[d]
		if !ok {
			row = &MealDay{Date: d}
			byDay[d] = row
		}
		row.Meals++
		row.Macros = row.Macros.add(m)
	}

	rows := make([]MealDay, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sortByDate(rows, func(r MealDay) models.Date { return r.Date })
	return rows
}
