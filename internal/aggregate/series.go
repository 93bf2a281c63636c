// ABOUTME: Date-ordered series helpers shared by the chart aggregates.
// ABOUTME: TrendSeries, LastN, LongestStreak and the numeric coercion guard.
package aggregate

import (
	"math"
	"sort"

	"github.com/harperreed/wellness/internal/models"
)

// WeekDays is the number of distinct days kept for weekly views.
const WeekDays = 7

// TrendSeries returns a copy of points sorted ascending by date.
// The sort is stable, so repeated calls give identical output.
func TrendSeries(points []models.TrendPoint) []models.TrendPoint {
	out := make([]models.TrendPoint, 0, len(points))
	for _, p := range points {
		p.Score = num(p.Score)
		out = append(out, p)
	}
	sortByDate(out, func(p models.TrendPoint) models.Date { return p.Date })
	return out
}

// LastN returns the final n rows of an ascending series.
func LastN[T any](rows []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// LongestStreak counts the longest run of consecutive calendar days in dates.
func LongestStreak(dates []models.Date) int {
	if len(dates) == 0 {
		return 0
	}
	unique := make(map[models.Date]struct{}, len(dates))
	sorted := make([]models.Date, 0, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if _, seen := unique[d]; seen {
			continue
		}
		unique[d] = struct{}{}
		sorted = append(sorted, d)
	}
	sortByDate(sorted, func(d models.Date) models.Date { return d })

	longest, run := 0, 0
	for i, d := range sorted {
		if i > 0 && sorted[i-1].AddDays(1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func sortByDate[T any](rows []T, date func(T) models.Date) {
	sort.SliceStable(rows, func(i, j int) bool {
		return date(rows[i]).Before(date(rows[j]))
	})
}

// num maps NaN, ±Inf and negatives to 0.
func num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
