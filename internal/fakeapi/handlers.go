// ABOUTME: CRUD handlers for workouts, meals, mood entries and the user profile.
// ABOUTME: Entities are validated with the shared models and stored per account.
package fakeapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/harperreed/wellness/internal/models"
)

// view runs fn with the caller's account under the read lock.
func (s *Server) view(r *http.Request, fn func(a *account)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.accounts[userID(r.Context())])
}

// update runs fn with the caller's account under the write lock.
func (s *Server) update(r *http.Request, fn func(a *account)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.accounts[userID(r.Context())])
}

func indexByID[T any](items []*T, id string, idOf func(*T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

func workoutID(w *models.Workout) string { return w.ID }
func mealID(m *models.Meal) string       { return m.ID }
func moodID(e *models.MoodEntry) string  { return e.ID }

func (s *Server) listWorkouts(w http.ResponseWriter, r *http.Request) {
	var out []*models.Workout
	s.view(r, func(a *account) {
		out = append(make([]*models.Workout, 0, len(a.workouts)), a.workouts...)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getWorkout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var found *models.Workout
	s.view(r, func(a *account) {
		if i := indexByID(a.workouts, id, workoutID); i >= 0 {
			found = a.workouts[i]
		}
	})
	if found == nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) createWorkout(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if !decode(w, r, &workout) {
		return
	}
	if workout.Date.IsZero() {
		workout.Date = models.DateOf(s.now())
	}
	if !valid(w, &workout) {
		return
	}
	workout.ID = uuid.NewString()
	s.update(r, func(a *account) {
		a.workouts = append(a.workouts, &workout)
	})
	writeJSON(w, http.StatusCreated, &workout)
}

func (s *Server) updateWorkout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var workout models.Workout
	if !decode(w, r, &workout) || !valid(w, &workout) {
		return
	}
	workout.ID = id

	found := false
	s.update(r, func(a *account) {
		if i := indexByID(a.workouts, id, workoutID); i >= 0 {
			a.workouts[i] = &workout
			found = true
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusOK, &workout)
}

func (s *Server) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	found := false
	s.update(r, func(a *account) {
		if i := indexByID(a.workouts, id, workoutID); i >= 0 {
			a.workouts = append(a.workouts[:i], a.workouts[i+1:]...)
			found = true
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listMeals(w http.ResponseWriter, r *http.Request) {
	var out []*models.Meal
	s.view(r, func(a *account) {
		out = append(make([]*models.Meal, 0, len(a.meals)), a.meals...)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getMeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var found *models.Meal
	s.view(r, func(a *account) {
		if i := indexByID(a.meals, id, mealID); i >= 0 {
			found = a.meals[i]
		}
	})
	if found == nil {
		writeError(w, http.StatusNotFound, "meal not found")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) createMeal(w http.ResponseWriter, r *http.Request) {
	var meal models.Meal
	if !decode(w, r, &meal) {
		return
	}
	if meal.DateTime.IsZero() {
		meal.DateTime = s.now()
	}
	if !valid(w, &meal) {
		return
	}
	meal.ID = uuid.NewString()
	s.update(r, func(a *account) {
		a.meals = append(a.meals, &meal)
	})
	writeJSON(w, http.StatusCreated, &meal)
}

func (s *Server) updateMeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var meal models.Meal
	if !decode(w, r, &meal) || !valid(w, &meal) {
		return
	}
	meal.ID = id

	found := false
	s.update(r, func(a *account) {
		if i := indexByID(a.meals, id, mealID); i >= 0 {
			a.meals[i] = &meal
			found = true
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "meal not found")
		return
	}
	writeJSON(w, http.StatusOK, &meal)
}

func (s *Server) deleteMeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	found := false
	s.update(r, func(a *account) {
		if i := indexByID(a.meals, id, mealID); i >= 0 {
			a.meals = append(a.meals[:i], a.meals[i+1:]...)
			found = true
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "meal not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listMoods(w http.ResponseWriter, r *http.Request) {
	var out []*models.MoodEntry
	s.view(r, func(a *account) {
		out = append(make([]*models.MoodEntry, 0, len(a.moods)), a.moods...)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createMood(w http.ResponseWriter, r *http.Request) {
	var entry models.MoodEntry
	if !decode(w, r, &entry) {
		return
	}
	if entry.Date.IsZero() {
		entry.Date = s.now()
	}
	if !valid(w, &entry) {
		return
	}
	entry.ID = uuid.NewString()
	s.update(r, func(a *account) {
		a.moods = append(a.moods, &entry)
	})
	writeJSON(w, http.StatusCreated, &entry)
}

func (s *Server) deleteMood(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	found := false
	s.update(r, func(a *account) {
		if i := indexByID(a.moods, id, moodID); i >= 0 {
			a.moods = append(a.moods[:i], a.moods[i+1:]...)
			found = true
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "mood entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	s.view(r, func(a *account) { profile = a.profile })
	writeJSON(w, http.StatusOK, &profile)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if !decode(w, r, &profile) {
		return
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	if !valid(w, &profile) {
		return
	}

	conflict := false
	s.update(r, func(a *account) {
		if owner, ok := s.emails[profile.Email]; ok && owner != a.user.ID {
			conflict = true
			return
		}
		delete(s.emails, a.user.Email)
		profile.ID = a.user.ID
		a.profile = profile
		a.user.Name = profile.Name
		a.user.Email = profile.Email
		s.emails[profile.Email] = a.user.ID
	})
	if conflict {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	writeJSON(w, http.StatusOK, &profile)
}
