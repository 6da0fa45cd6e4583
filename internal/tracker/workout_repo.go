package tracker

import (
	"context"
	"fmt"

	"github.com/2beens/workoutlog/internal/kvstore"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type WorkoutRepo struct {
	db      *DB
	cascade *Coordinator
}

func NewWorkoutRepo(db *DB, cascade *Coordinator) *WorkoutRepo {
	return &WorkoutRepo{
		db:      db,
		cascade: cascade,
	}
}

func (r *WorkoutRepo) List(ctx context.Context) []Workout {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.workouts(ctx)
}

func (r *WorkoutRepo) ListByCategory(ctx context.Context, categoryID string) []Workout {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return workoutsInCategory(r.db.workouts(ctx), categoryID)
}

func (r *WorkoutRepo) GetByID(ctx context.Context, id string) (*Workout, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, w := range r.db.workouts(ctx) {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, ErrWorkoutNotFound
}

func (r *WorkoutRepo) Add(ctx context.Context, newWorkout NewWorkout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	workout := Workout{
		ID:         r.db.newID(),
		CategoryID: newWorkout.CategoryID,
		Title:      newWorkout.Title,
		Notes:      newWorkout.Notes,
		Favorite:   newWorkout.Favorite,
		CreatedAt:  r.db.now(),
	}
	span.SetAttributes(
		attribute.String("workout.id", workout.ID),
		attribute.String("category.id", workout.CategoryID),
	)

	workouts := append(r.db.workouts(ctx), workout)
	if err := kvstore.Write(ctx, r.db.store, KeyWorkouts, workouts); err != nil {
		return nil, fmt.Errorf("save workouts: %w", err)
	}

	return &workout, nil
}

// SaveAll replaces the whole workout collection. There is no version check: the
// last caller wins.
func (r *WorkoutRepo) SaveAll(ctx context.Context, workouts []Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.saveAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if workouts == nil {
		workouts = []Workout{}
	}
	if err := kvstore.Write(ctx, r.db.store, KeyWorkouts, workouts); err != nil {
		return fmt.Errorf("save workouts: %w", err)
	}
	return nil
}

func (r *WorkoutRepo) Update(ctx context.Context, id string, patch WorkoutPatch) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	workouts := r.db.workouts(ctx)
	found := false
	for i := range workouts {
		if workouts[i].ID != id {
			continue
		}
		found = true
		applyWorkoutPatch(&workouts[i], patch)
	}

	if !found {
		log.Tracef("update workout [%s]: not found, nothing to do", id)
		return nil
	}

	if err := kvstore.Write(ctx, r.db.store, KeyWorkouts, workouts); err != nil {
		return fmt.Errorf("save workouts: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the updated workout.
func (r *WorkoutRepo) ToggleFavorite(ctx context.Context, id string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.toggleFavorite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	workouts := r.db.workouts(ctx)
	idx := -1
	for i := range workouts {
		if workouts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrWorkoutNotFound
	}

	workouts[idx].Favorite = !workouts[idx].Favorite
	if err := kvstore.Write(ctx, r.db.store, KeyWorkouts, workouts); err != nil {
		return nil, fmt.Errorf("save workouts: %w", err)
	}

	toggled := workouts[idx]
	return &toggled, nil
}

// Delete removes the workout and every session logged for it.
func (r *WorkoutRepo) Delete(ctx context.Context, id string) (CascadeResult, error) {
	return r.cascade.DeleteWorkout(ctx, id)
}

func applyWorkoutPatch(w *Workout, patch WorkoutPatch) {
	if patch.CategoryID != nil {
		w.CategoryID = *patch.CategoryID
	}
	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Notes != nil {
		w.Notes = *patch.Notes
	}
	if patch.Favorite != nil {
		w.Favorite = *patch.Favorite
	}
}

func workoutsInCategory(workouts []Workout, categoryID string) []Workout {
	filtered := []Workout{}
	for _, w := range workouts {
		if w.CategoryID == categoryID {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
