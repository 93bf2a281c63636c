// ABOUTME: Mood aggregates: label-to-score mapping and mood chart series.
// ABOUTME: Unknown labels score as neutral rather than failing.
package aggregate

import (
	"github.com/harperreed/wellness/internal/models"
)

// NeutralMoodScore is the score for labels outside the known set.
const NeutralMoodScore = 3

var moodScores = map[models.Mood]int{
	models.MoodGreat: 5,
	models.MoodGood:  4,
	models.MoodOkay:  3,
	models.MoodLow:   2,
	models.MoodPoor:  1,
}

// MoodScore maps a mood label to its ordinal 1–5 score.
func MoodScore(mood models.Mood) int {
	if score, ok := moodScores[mood]; ok {
		return score
	}
	return NeutralMoodScore
}

// MoodSeries converts entries into an ascending trend series of scores.
func MoodSeries(entries []*models.MoodEntry) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		points = append(points, models.TrendPoint{
			Date:  models.DateOf(e.Date),
			Score: float64(MoodScore(e.Mood)),
		})
	}
	return TrendSeries(points)
}

// AverageMoodScore is the mean score of entries, 0 for none.
func AverageMoodScore(entries []*models.MoodEntry) float64 {
	var sum, n int
	for _, e := range entries {
		if e == nil {
			continue
		}
		sum += MoodScore(e.Mood)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
