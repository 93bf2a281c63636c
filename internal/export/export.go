// ABOUTME: Snapshot of an account's server data for backup and sharing.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/wellness/internal/models"
)

// Version of the snapshot layout.
const Version = "1.0"

// Source is the read side of the data layer.
type Source interface {
	Me(ctx context.Context) (*models.User, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
	Workouts(ctx context.Context) ([]*models.Workout, error)
	Meals(ctx context.Context) ([]*models.Meal, error)
	Moods(ctx context.Context) ([]*models.MoodEntry, error)
}

// Snapshot is everything the backend holds for one user.
type Snapshot struct {
	Version    string              `json:"version" yaml:"version"`
	ExportedAt time.Time           `json:"exported_at" yaml:"exported_at"`
	Tool       string              `json:"tool" yaml:"tool"`
	User       *models.User        `json:"user" yaml:"user"`
	Profile    *models.UserProfile `json:"profile" yaml:"profile"`
	Workouts   []*models.Workout   `json:"workouts" yaml:"workouts"`
	Meals      []*models.Meal      `json:"meals" yaml:"meals"`
	Moods      []*models.MoodEntry `json:"moods" yaml:"moods"`
}

// Collect reads every collection from src. Lists are sorted oldest first.
func Collect(ctx context.Context, src Source, now time.Time) (*Snapshot, error) {
	user, err := src.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	profile, err := src.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	workouts, err := src.Workouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	meals, err := src.Meals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	moods, err := src.Moods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}

	s := &Snapshot{
		Version:    Version,
		ExportedAt: now.UTC(),
		Tool:       "wellness",
		User:       user,
		Profile:    profile,
		Workouts:   append([]*models.Workout{}, workouts...),
		Meals:      append([]*models.Meal{}, meals...),
		Moods:      append([]*models.MoodEntry{}, moods...),
	}
	sort.SliceStable(s.Workouts, func(i, j int) bool { return s.Workouts[i].Date.Before(s.Workouts[j].Date) })
	sort.SliceStable(s.Meals, func(i, j int) bool { return s.Meals[i].DateTime.Before(s.Meals[j].DateTime) })
	sort.SliceStable(s.Moods, func(i, j int) bool { return s.Moods[i].Date.Before(s.Moods[j].Date) })
	return s, nil
}

// Since drops entries before day. A zero day keeps everything.
func (s *Snapshot) Since(day models.Date) *Snapshot {
	if day.IsZero() {
		return s
	}
	out := *s
	out.Workouts = nil
	for _, w := range s.Workouts {
		if !w.Date.Before(day) {
			out.Workouts = append(out.Workouts, w)
		}
	}
	out.Meals = nil
	for _, m := range s.Meals {
		if !models.DateOf(m.DateTime).Before(day) {
			out.Meals = append(out.Meals, m)
		}
	}
	out.Moods = nil
	for _, e := range s.Moods {
		if !models.DateOf(e.Date).Before(day) {
			out.Moods = append(out.Moods, e)
		}
	}
	return &out
}

// JSON renders the snapshot as indented JSON.
func (s *Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// YAML renders the snapshot as YAML.
func (s *Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// Markdown renders one table per collection.
func (s *Snapshot) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Wellness Export - %s\n\n", s.ExportedAt.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Generated: %s\n\n", s.ExportedAt.Format(time.RFC3339))
	if s.User != nil {
		fmt.Fprintf(&sb, "User: %s <%s>\n\n", s.User.Name, s.User.Email)
	}

	if len(s.Workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
		sb.WriteString("| Date | Exercise | Muscle | Sets x Reps | Weight | Notes |\n")
		sb.WriteString("|------|----------|--------|-------------|--------|-------|\n")
		for _, w := range s.Workouts {
			fmt.Fprintf(&sb, "| %s | %s | %s | %dx%d | %.1f kg | %s |\n",
				w.Date, cell(w.Name), cell(w.MuscleGroup), w.Sets, w.Reps, w.Weight, notes(w.Notes))
		}
		sb.WriteString("\n")
	}

	if len(s.Meals) > 0 {
		sb.WriteString("## Meals\n\n")
		sb.WriteString("| Time | Type | Title | Calories | Protein | Carbs | Fat | Notes |\n")
		sb.WriteString("|------|------|-------|----------|---------|-------|-----|-------|\n")
		for _, m := range s.Meals {
			fmt.Fprintf(&sb, "| %s | %s | %s | %.0f | %.0f g | %.0f g | %.0f g | %s |\n",
				m.DateTime.Format("2006-01-02 15:04"), m.Type, cell(m.Title),
				m.Calories, m.Protein, m.Carbs, m.Fat, notes(m.Notes))
		}
		sb.WriteString("\n")
	}

	if len(s.Moods) > 0 {
		sb.WriteString("## Mood\n\n")
		sb.WriteString("| Time | Mood | Energy | Notes |\n")
		sb.WriteString("|------|------|--------|-------|\n")
		for _, e := range s.Moods {
			fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n",
				e.Date.Format("2006-01-02 15:04"), e.Mood, e.Energy, notes(e.Notes))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// cell escapes pipes so user text cannot break a table row.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func notes(n *string) string {
	if n == nil {
		return ""
	}
	return cell(strings.ReplaceAll(*n, "\n", " "))
}
