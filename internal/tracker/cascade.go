package tracker

import (
	"context"
	"fmt"

	"github.com/2beens/workoutlog/internal/kvstore"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type CascadeResult struct {
	DeletedWorkouts int `json:"deletedWorkouts"`
	DeletedSessions int `json:"deletedSessions"`
}

// Coordinator owns every delete that spans more than one collection. The touched
// collections are committed in one SetMany, so a failed delete leaves the store
// exactly as it was.
type Coordinator struct {
	db *DB
}

func NewCoordinator(db *DB) *Coordinator {
	return &Coordinator{
		db: db,
	}
}

func (c *Coordinator) DeleteCategory(ctx context.Context, categoryID string) (_ CascadeResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cascade.deleteCategory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category.id", categoryID))

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	categories := c.db.categories(ctx)
	workouts := c.db.workouts(ctx)
	sessions := c.db.sessions(ctx)

	doomedWorkouts := map[string]bool{}
	keptWorkouts := make([]Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.CategoryID == categoryID {
			doomedWorkouts[w.ID] = true
			continue
		}
		keptWorkouts = append(keptWorkouts, w)
	}

	keptSessions := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if !doomedWorkouts[s.WorkoutID] {
			keptSessions = append(keptSessions, s)
		}
	}

	keptCategories := make([]Category, 0, len(categories))
	for _, cat := range categories {
		if cat.ID != categoryID {
			keptCategories = append(keptCategories, cat)
		}
	}

	result := CascadeResult{
		DeletedWorkouts: len(workouts) - len(keptWorkouts),
		DeletedSessions: len(sessions) - len(keptSessions),
	}
	span.SetAttributes(
		attribute.Int("deleted.workouts", result.DeletedWorkouts),
		attribute.Int("deleted.sessions", result.DeletedSessions),
	)

	if len(keptCategories) == len(categories) && result.DeletedWorkouts == 0 {
		log.Tracef("delete category [%s]: nothing to delete", categoryID)
		return result, nil
	}

	if err := kvstore.WriteMany(ctx, c.db.store, map[string]any{
		KeySessions:   keptSessions,
		KeyWorkouts:   keptWorkouts,
		KeyCategories: keptCategories,
	}); err != nil {
		return CascadeResult{}, fmt.Errorf("delete category [%s]: %w", categoryID, err)
	}

	log.Debugf("category [%s] deleted with %d workouts and %d sessions",
		categoryID, result.DeletedWorkouts, result.DeletedSessions)
	return result, nil
}

func (c *Coordinator) DeleteWorkout(ctx context.Context, workoutID string) (_ CascadeResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cascade.deleteWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	workouts := c.db.workouts(ctx)
	sessions := c.db.sessions(ctx)

	keptSessions := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.WorkoutID != workoutID {
			keptSessions = append(keptSessions, s)
		}
	}

	keptWorkouts := make([]Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.ID != workoutID {
			keptWorkouts = append(keptWorkouts, w)
		}
	}

	result := CascadeResult{
		DeletedWorkouts: len(workouts) - len(keptWorkouts),
		DeletedSessions: len(sessions) - len(keptSessions),
	}
	span.SetAttributes(attribute.Int("deleted.sessions", result.DeletedSessions))

	if result.DeletedWorkouts == 0 && result.DeletedSessions == 0 {
		log.Tracef("delete workout [%s]: nothing to delete", workoutID)
		return result, nil
	}

	if err := kvstore.WriteMany(ctx, c.db.store, map[string]any{
		KeySessions: keptSessions,
		KeyWorkouts: keptWorkouts,
	}); err != nil {
		return CascadeResult{}, fmt.Errorf("delete workout [%s]: %w", workoutID, err)
	}

	log.Debugf("workout [%s] deleted with %d sessions", workoutID, result.DeletedSessions)
	return result, nil
}
