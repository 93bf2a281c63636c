// ABOUTME: Cache keys for every server resource and the invalidation list of each write.
// ABOUTME: Dependencies are declared explicitly per mutation; nothing is inferred.
package data

import "github.com/harperreed/wellness/internal/query"

var (
	WorkoutsKey         = query.Key{"workouts"}
	MealsKey            = query.Key{"meals"}
	MoodKey             = query.Key{"mood"}
	ProfileKey          = query.Key{"profile"}
	DashboardSummaryKey = query.Key{"dashboardSummary"}
	ProgressSummaryKey  = query.Key{"progressSummary"}
	ProgressTrendKey    = query.Key{"progressTrend"}
	ProgressRecordsKey  = query.Key{"progressRecords"}
	MeKey               = query.Key{"me"}
)

// Keys refreshed after each kind of write.
var (
	workoutWrites = []query.Key{WorkoutsKey, DashboardSummaryKey, ProgressSummaryKey, ProgressTrendKey, ProgressRecordsKey}
	mealWrites    = []query.Key{MealsKey, DashboardSummaryKey, ProgressSummaryKey, ProgressTrendKey, ProgressRecordsKey}
	moodWrites    = []query.Key{MoodKey, ProgressSummaryKey, ProgressTrendKey, ProgressRecordsKey}
	profileWrites = []query.Key{ProfileKey, MeKey}
)
