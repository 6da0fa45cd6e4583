package tracker

import (
	"context"
	"fmt"
	"sort"

	"github.com/2beens/workoutlog/internal/kvstore"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type SessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{
		db: db,
	}
}

func (r *SessionRepo) List(ctx context.Context) []Session {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.sessions(ctx)
}

// ListByWorkout returns the sessions of a workout, newest first.
func (r *SessionRepo) ListByWorkout(ctx context.Context, workoutID string) []Session {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	filtered := []Session{}
	for _, s := range r.db.sessions(ctx) {
		if s.WorkoutID == workoutID {
			filtered = append(filtered, s)
		}
	}
	sortNewestFirst(filtered)
	return filtered
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, s := range r.db.sessions(ctx) {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, ErrSessionNotFound
}

// Add stores a new session. A zero date means now, and an empty name becomes
// "Session <Mon D>" of the session date.
func (r *SessionRepo) Add(ctx context.Context, newSession NewSession) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	session := Session{
		ID:        r.db.newID(),
		WorkoutID: newSession.WorkoutID,
		Name:      newSession.Name,
		Date:      newSession.Date,
		Sets:      newSession.Sets,
		Notes:     newSession.Notes,
	}
	if session.Date.IsZero() {
		session.Date = r.db.now()
	}
	if session.Name == "" {
		session.Name = DefaultSessionName(session.Date)
	}
	if session.Sets == nil {
		session.Sets = []Set{}
	}
	span.SetAttributes(
		attribute.String("session.id", session.ID),
		attribute.String("workout.id", session.WorkoutID),
		attribute.Int("session.sets", len(session.Sets)),
	)

	sessions := append(r.db.sessions(ctx), session)
	if err := kvstore.Write(ctx, r.db.store, KeySessions, sessions); err != nil {
		return nil, fmt.Errorf("save sessions: %w", err)
	}

	return &session, nil
}

func (r *SessionRepo) Update(ctx context.Context, id string, patch SessionPatch) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	sessions := r.db.sessions(ctx)
	found := false
	for i := range sessions {
		if sessions[i].ID != id {
			continue
		}
		found = true
		applySessionPatch(&sessions[i], patch)
	}

	if !found {
		log.Tracef("update session [%s]: not found, nothing to do", id)
		return nil
	}

	if err := kvstore.Write(ctx, r.db.store, KeySessions, sessions); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

// Delete removes a single session. Sessions have no dependents.
func (r *SessionRepo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	sessions := r.db.sessions(ctx)
	kept := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}

	if len(kept) == len(sessions) {
		return nil
	}

	if err := kvstore.Write(ctx, r.db.store, KeySessions, kept); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

func applySessionPatch(s *Session, patch SessionPatch) {
	if patch.WorkoutID != nil {
		s.WorkoutID = *patch.WorkoutID
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Date != nil {
		s.Date = *patch.Date
	}
	if patch.Sets != nil {
		s.Sets = patch.Sets
	}
	if patch.Notes != nil {
		s.Notes = *patch.Notes
	}
}

func sortNewestFirst(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
}
