package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=tracker_test

type sessionsRepo interface {
	List(ctx context.Context) []Session
	ListByWorkout(ctx context.Context, workoutID string) []Session
	GetByID(ctx context.Context, id string) (*Session, error)
	Add(ctx context.Context, newSession NewSession) (*Session, error)
	Update(ctx context.Context, id string, patch SessionPatch) error
	Delete(ctx context.Context, id string) error
}

type SessionsListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type SessionsHandler struct {
	repo    sessionsRepo
	metrics *metrics.Manager
}

func NewSessionsHandler(repo sessionsRepo, metricsManager *metrics.Manager) *SessionsHandler {
	return &SessionsHandler{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *SessionsHandler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/sessions", handler.HandleList).Methods("GET")
	r.HandleFunc("/sessions", handler.HandleAdd).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{id}", handler.HandleGet).Methods("GET")
	r.HandleFunc("/sessions/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS")
	r.HandleFunc("/sessions/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/workouts/{id}/sessions", handler.HandleListByWorkout).Methods("GET")
}

func (handler *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	writeSessions(w, handler.repo.List(ctx))
}

func (handler *SessionsHandler) HandleListByWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.listByWorkout")
	defer span.End()

	workoutID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("workout.id", workoutID))

	writeSessions(w, handler.repo.ListByWorkout(ctx, workoutID))
}

func (handler *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("session.id", id))

	session, err := handler.repo.GetByID(ctx, id)
	if err != nil {
		writeSessionLookupErr(w, id, err)
		return
	}

	pkg.WriteJSONResponse(w, session, http.StatusOK)
}

func (handler *SessionsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.add")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newSession NewSession
	if err := json.NewDecoder(r.Body).Decode(&newSession); err != nil {
		log.Errorf("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	if newSession.WorkoutID == "" {
		http.Error(w, "error, workout id empty", http.StatusBadRequest)
		return
	}
	if !validSets(newSession.Sets) {
		http.Error(w, "error, reps and weight must not be negative", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, newSession)
	if err != nil {
		log.Errorf("add session for workout [%s]: %s", newSession.WorkoutID, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsLogged.Inc()

	log.Debugf("new session added: [%s] %s with %d sets", added.ID, added.Name, len(added.Sets))
	pkg.WriteJSONResponse(w, added, http.StatusCreated)
}

func (handler *SessionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("session.id", id))

	var patch SessionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Errorf("update session, unmarshal json params: %s", err)
		http.Error(w, "update session failed", http.StatusBadRequest)
		return
	}
	if !validSets(patch.Sets) {
		http.Error(w, "error, reps and weight must not be negative", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, id, patch); err != nil {
		log.Errorf("update session [%s]: %s", id, err)
		http.Error(w, "update session failed", http.StatusInternalServerError)
		return
	}

	updated, err := handler.repo.GetByID(ctx, id)
	if err != nil {
		writeSessionLookupErr(w, id, err)
		return
	}

	pkg.WriteJSONResponse(w, updated, http.StatusOK)
}

func (handler *SessionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("session.id", id))

	if err := handler.repo.Delete(ctx, id); err != nil {
		log.Errorf("delete session [%s]: %s", id, err)
		http.Error(w, "delete session failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, DeleteResponse{DeletedID: id}, http.StatusOK)
}

func validSets(sets []Set) bool {
	for _, set := range sets {
		if set.Reps < 0 || set.Weight < 0 {
			return false
		}
	}
	return true
}

func writeSessions(w http.ResponseWriter, sessions []Session) {
	pkg.WriteJSONResponse(w, SessionsListResponse{
		Sessions: sessions,
		Total:    len(sessions),
	}, http.StatusOK)
}

func writeSessionLookupErr(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	log.Errorf("session [%s]: %s", id, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
