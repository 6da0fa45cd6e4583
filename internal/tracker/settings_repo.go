package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/workoutlog/internal/kvstore"
)

type SettingsRepo struct {
	db *DB
}

func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{
		db: db,
	}
}

// Get returns the stored settings, or kg as preferred unit when nothing is stored.
func (r *SettingsRepo) Get(ctx context.Context) UserSettings {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.settings(ctx)
}

func (r *SettingsRepo) Set(ctx context.Context, settings UserSettings) error {
	if !settings.PreferredUnit.Valid() {
		return ErrInvalidUnit
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := kvstore.Write(ctx, r.db.store, KeySettings, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func DefaultSessionName(date time.Time) string {
	return "Session " + date.Format("Jan 2")
}
