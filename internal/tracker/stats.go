package tracker

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const (
	recentWindowDays = 7
	maxSearchResults = 8
)

type GlobalStats struct {
	// TotalWorkouts counts logged sessions, not workout definitions.
	TotalWorkouts  int `json:"totalWorkouts"`
	TotalSets      int `json:"totalSets"`
	AvgReps        int `json:"avgReps"`
	RecentSessions int `json:"recentSessions"`
	FavoriteCount  int `json:"favoriteCount"`
}

type CategoryStats struct {
	WorkoutCount int `json:"workoutCount"`
	SessionCount int `json:"sessionCount"`
	TotalSets    int `json:"totalSets"`
	TotalReps    int `json:"totalReps"`
}

type DayProgress struct {
	Day  string `json:"day"`
	Date string `json:"date"`
	Sets int    `json:"sets"`
}

type SearchResult struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	CategoryIcon string `json:"categoryIcon"`
}

// Aggregator derives summaries by scanning the stored collections on every call.
type Aggregator struct {
	db *DB
}

func NewAggregator(db *DB) *Aggregator {
	return &Aggregator{
		db: db,
	}
}

func (a *Aggregator) GlobalStats(ctx context.Context) GlobalStats {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.global")
	defer span.End()

	a.db.mu.Lock()
	sessions := a.db.sessions(ctx)
	workouts := a.db.workouts(ctx)
	a.db.mu.Unlock()

	stats := GlobalStats{
		TotalWorkouts: len(sessions),
	}

	reps := 0
	recentFrom := a.db.now().AddDate(0, 0, -recentWindowDays)
	for _, s := range sessions {
		stats.TotalSets += len(s.Sets)
		reps += totalReps(s.Sets)
		if !s.Date.Before(recentFrom) {
			stats.RecentSessions++
		}
	}
	stats.AvgReps = averageReps(reps, stats.TotalSets)

	for _, w := range workouts {
		if w.Favorite {
			stats.FavoriteCount++
		}
	}

	span.SetAttributes(attribute.Int("sessions", len(sessions)))
	return stats
}

func (a *Aggregator) CategoryStats(ctx context.Context, categoryID string) CategoryStats {
	a.db.mu.Lock()
	sessions := a.db.sessions(ctx)
	workouts := workoutsInCategory(a.db.workouts(ctx), categoryID)
	a.db.mu.Unlock()

	inCategory := make(map[string]bool, len(workouts))
	for _, w := range workouts {
		inCategory[w.ID] = true
	}

	stats := CategoryStats{
		WorkoutCount: len(workouts),
	}
	for _, s := range sessions {
		if !inCategory[s.WorkoutID] {
			continue
		}
		stats.SessionCount++
		stats.TotalSets += len(s.Sets)
		stats.TotalReps += totalReps(s.Sets)
	}

	return stats
}

// WeeklyProgress returns set totals for the last seven UTC days, oldest first,
// ending with today.
func (a *Aggregator) WeeklyProgress(ctx context.Context) []DayProgress {
	a.db.mu.Lock()
	sessions := a.db.sessions(ctx)
	a.db.mu.Unlock()

	setsByDay := map[string]int{}
	for _, s := range sessions {
		setsByDay[s.Date.UTC().Format(time.DateOnly)] += len(s.Sets)
	}

	today := a.db.now().UTC()
	progress := make([]DayProgress, 0, recentWindowDays)
	for i := recentWindowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		date := day.Format(time.DateOnly)
		progress = append(progress, DayProgress{
			Day:  day.Format("Mon"),
			Date: date,
			Sets: setsByDay[date],
		})
	}

	return progress
}

// RecentWorkouts walks sessions newest first and collects up to limit distinct
// workouts that still exist.
func (a *Aggregator) RecentWorkouts(ctx context.Context, limit int) []Workout {
	a.db.mu.Lock()
	sessions := a.db.sessions(ctx)
	workouts := a.db.workouts(ctx)
	a.db.mu.Unlock()

	byID := make(map[string]Workout, len(workouts))
	for _, w := range workouts {
		byID[w.ID] = w
	}

	sortNewestFirst(sessions)

	seen := map[string]bool{}
	recent := []Workout{}
	for _, s := range sessions {
		if len(recent) >= limit {
			break
		}
		if seen[s.WorkoutID] {
			continue
		}
		w, ok := byID[s.WorkoutID]
		if !ok {
			continue
		}
		seen[s.WorkoutID] = true
		recent = append(recent, w)
	}

	return recent
}

// CategoryWorkoutCounts maps every category id to its number of workouts.
func (a *Aggregator) CategoryWorkoutCounts(ctx context.Context) map[string]int {
	a.db.mu.Lock()
	defer a.db.mu.Unlock()

	categories := a.db.categories(ctx)
	workouts := a.db.workouts(ctx)

	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c.ID] = 0
	}
	for _, w := range workouts {
		if _, ok := counts[w.CategoryID]; ok {
			counts[w.CategoryID]++
		}
	}
	return counts
}

// Search matches workouts by title first, then by category title, case
// insensitive. Workouts whose category no longer exists are skipped.
func (a *Aggregator) Search(ctx context.Context, query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []SearchResult{}
	}

	a.db.mu.Lock()
	categories := a.db.categories(ctx)
	workouts := a.db.workouts(ctx)
	a.db.mu.Unlock()

	categoryByID := make(map[string]Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	results := []SearchResult{}
	added := map[string]bool{}
	collect := func(match func(w Workout, c Category) bool) {
		for _, w := range workouts {
			c, ok := categoryByID[w.CategoryID]
			if !ok || added[w.ID] || !match(w, c) {
				continue
			}
			added[w.ID] = true
			results = append(results, SearchResult{
				ID:           w.ID,
				Title:        w.Title,
				CategoryID:   w.CategoryID,
				CategoryName: c.Title,
				CategoryIcon: c.Icon,
			})
		}
	}

	collect(func(w Workout, _ Category) bool {
		return strings.Contains(strings.ToLower(w.Title), query)
	})
	collect(func(_ Workout, c Category) bool {
		return strings.Contains(strings.ToLower(c.Title), query)
	})

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

func averageReps(reps, sets int) int {
	if sets == 0 {
		return 0
	}
	return int(math.Round(float64(reps) / float64(sets)))
}
