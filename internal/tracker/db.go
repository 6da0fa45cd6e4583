package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/workoutlog/internal/kvstore"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	KeyCategories = "workout_categories"
	KeyWorkouts   = "workout_workouts"
	KeySessions   = "workout_sessions"
	KeySettings   = "workout_settings"
)

// DB is the shared handle every repository works through. Its mutex is held for
// the whole read-modify-write of an operation, so writers inside one process never
// interleave. Separate processes sharing a store follow last write wins.
type DB struct {
	mu    sync.Mutex
	store kvstore.Store
	now   func() time.Time
	newID func() string
}

type Option func(*DB)

func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(db *DB) {
		db.newID = newID
	}
}

func NewDB(store kvstore.Store, opts ...Option) *DB {
	db := &DB{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// categories returns the stored categories, seeding the defaults when none exist.
// A failed seed write is logged, and the seed is still returned.
func (db *DB) categories(ctx context.Context) []Category {
	categories := kvstore.Read(ctx, db.store, KeyCategories, []Category{})
	if len(categories) > 0 {
		return categories
	}

	seed := DefaultCategories(db.now())
	if err := kvstore.Write(ctx, db.store, KeyCategories, seed); err != nil {
		log.Errorf("seed default categories: %s", err)
	} else {
		log.Debugf("seeded %d default categories", len(seed))
	}
	return seed
}

// a stored JSON null decodes to a nil slice
func (db *DB) workouts(ctx context.Context) []Workout {
	workouts := kvstore.Read(ctx, db.store, KeyWorkouts, []Workout{})
	if workouts == nil {
		return []Workout{}
	}
	return workouts
}

func (db *DB) sessions(ctx context.Context) []Session {
	sessions := kvstore.Read(ctx, db.store, KeySessions, []Session{})
	if sessions == nil {
		return []Session{}
	}
	return sessions
}

func (db *DB) settings(ctx context.Context) UserSettings {
	return kvstore.Read(ctx, db.store, KeySettings, DefaultSettings())
}
