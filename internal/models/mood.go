// ABOUTME: Mood entry model with an enumerated mood label and energy level.
// ABOUTME: Labels map to ordinal scores in the aggregate package.
package models

import "time"

// Mood is one of a fixed set of labels.
type Mood string

const (
	MoodGreat Mood = "Great"
	MoodGood  Mood = "Good"
	MoodOkay  Mood = "Okay"
	MoodLow   Mood = "Low"
	MoodPoor  Mood = "Poor"
)

// AllMoods lists labels from best to worst.
var AllMoods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodLow, MoodPoor}

// IsValidMood checks if a string is a known mood label.
func IsValidMood(s string) bool {
	for _, m := range AllMoods {
		if string(m) == s {
			return true
		}
	}
	return false
}

// MoodEntry is a logged mood owned by the backend.
type MoodEntry struct {
	ID     string    `json:"id,omitempty" yaml:"id,omitempty" response:"required"`
	Mood   Mood      `json:"mood" yaml:"mood" validate:"required,oneof=Great Good Okay Low Poor"`
	Energy int       `json:"energy" yaml:"energy" validate:"gte=1,lte=10"`
	Notes  *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Date   time.Time `json:"date" yaml:"date" validate:"required" response:"required"`
}

// NewMoodEntry creates a mood entry for now.
func NewMoodEntry(mood Mood, energy int) *MoodEntry {
	return &MoodEntry{
		Mood:   mood,
		Energy: energy,
		Date:   time.Now(),
	}
}

// WithNotes sets notes on the entry.
func (e *MoodEntry) WithNotes(notes string) *MoodEntry {
	e.Notes = &notes
	return e
}

// WithDate sets when the mood was recorded.
func (e *MoodEntry) WithDate(t time.Time) *MoodEntry {
	e.Date = t
	return e
}

// Validate checks the mood form constraints.
func (e *MoodEntry) Validate() error {
	return check(e)
}

// ValidateResponse checks an entry read from the server has an id and a date.
// Unknown labels are kept; they score as neutral.
func (e *MoodEntry) ValidateResponse() error {
	return checkShape(e)
}
