package tracker

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidUnit      = errors.New("invalid unit, expected kg or lbs")
)

type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewCategory struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// CategoryPatch holds the fields to merge into a category; nil fields are kept.
type CategoryPatch struct {
	Title *string `json:"title,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

type Workout struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes,omitempty"`
	Favorite   bool      `json:"favorite"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NewWorkout struct {
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
	Favorite   bool   `json:"favorite"`
}

type WorkoutPatch struct {
	CategoryID *string `json:"categoryId,omitempty"`
	Title      *string `json:"title,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Favorite   *bool   `json:"favorite,omitempty"`
}

// Set is one round of repetitions at a given weight.
type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type Session struct {
	ID        string    `json:"id"`
	WorkoutID string    `json:"workoutId"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Sets      []Set     `json:"sets"`
	Notes     string    `json:"notes,omitempty"`
}

type NewSession struct {
	WorkoutID string    `json:"workoutId"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Sets      []Set     `json:"sets"`
	Notes     string    `json:"notes,omitempty"`
}

// SessionPatch merges into a session; a non-nil Sets replaces the whole list.
type SessionPatch struct {
	WorkoutID *string    `json:"workoutId,omitempty"`
	Name      *string    `json:"name,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Sets      []Set      `json:"sets,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

type Unit string

const (
	UnitKg  Unit = "kg"
	UnitLbs Unit = "lbs"
)

func (u Unit) Valid() bool {
	return u == UnitKg || u == UnitLbs
}

type UserSettings struct {
	PreferredUnit Unit `json:"preferredUnit"`
}

func DefaultSettings() UserSettings {
	return UserSettings{PreferredUnit: UnitKg}
}

// DefaultCategories is the seed written when the category collection is empty.
func DefaultCategories(now time.Time) []Category {
	return []Category{
		{ID: "1", Title: "Chest", Icon: "💪", CreatedAt: now},
		{ID: "2", Title: "Back", Icon: "🦾", CreatedAt: now},
		{ID: "3", Title: "Legs", Icon: "🦵", CreatedAt: now},
		{ID: "4", Title: "Shoulders", Icon: "🏋️", CreatedAt: now},
		{ID: "5", Title: "Arms", Icon: "💪", CreatedAt: now},
		{ID: "6", Title: "Abs", Icon: "🔥", CreatedAt: now},
	}
}

func totalReps(sets []Set) int {
	reps := 0
	for _, s := range sets {
		reps += s.Reps
	}
	return reps
}
