package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=tracker_test

type workoutsRepo interface {
	List(ctx context.Context) []Workout
	ListByCategory(ctx context.Context, categoryID string) []Workout
	GetByID(ctx context.Context, id string) (*Workout, error)
	Add(ctx context.Context, newWorkout NewWorkout) (*Workout, error)
	SaveAll(ctx context.Context, workouts []Workout) error
	Update(ctx context.Context, id string, patch WorkoutPatch) error
	ToggleFavorite(ctx context.Context, id string) (*Workout, error)
	Delete(ctx context.Context, id string) (CascadeResult, error)
}

type WorkoutsListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type WorkoutsHandler struct {
	repo workoutsRepo
}

func NewWorkoutsHandler(repo workoutsRepo) *WorkoutsHandler {
	return &WorkoutsHandler{
		repo: repo,
	}
}

func (handler *WorkoutsHandler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", handler.HandleList).Methods("GET")
	r.HandleFunc("/workouts", handler.HandleAdd).Methods("POST", "OPTIONS")
	r.HandleFunc("/workouts", handler.HandleSaveAll).Methods("PUT")
	r.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET")
	r.HandleFunc("/workouts/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS")
	r.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/workouts/{id}/favorite", handler.HandleToggleFavorite).Methods("POST", "OPTIONS")
	r.HandleFunc("/categories/{id}/workouts", handler.HandleListByCategory).Methods("GET")
}

func (handler *WorkoutsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	writeWorkouts(w, handler.repo.List(ctx))
}

func (handler *WorkoutsHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listByCategory")
	defer span.End()

	categoryID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("category.id", categoryID))

	writeWorkouts(w, handler.repo.ListByCategory(ctx, categoryID))
}

func (handler *WorkoutsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("workout.id", id))

	workout, err := handler.repo.GetByID(ctx, id)
	if err != nil {
		writeWorkoutLookupErr(w, id, err)
		return
	}

	pkg.WriteJSONResponse(w, workout, http.StatusOK)
}

func (handler *WorkoutsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newWorkout NewWorkout
	if err := json.NewDecoder(r.Body).Decode(&newWorkout); err != nil {
		log.Errorf("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	newWorkout.Title = strings.TrimSpace(newWorkout.Title)
	if newWorkout.Title == "" || newWorkout.CategoryID == "" {
		http.Error(w, "error, workout title and category id are required", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, newWorkout)
	if err != nil {
		log.Errorf("add workout [%s]: %s", newWorkout.Title, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: [%s] %s in category %s", added.ID, added.Title, added.CategoryID)
	pkg.WriteJSONResponse(w, added, http.StatusCreated)
}

// HandleSaveAll replaces the whole workout collection with the request body.
func (handler *WorkoutsHandler) HandleSaveAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.saveAll")
	defer span.End()

	var workouts []Workout
	if err := json.NewDecoder(r.Body).Decode(&workouts); err != nil {
		log.Errorf("save workouts, unmarshal json params: %s", err)
		http.Error(w, "save workouts failed", http.StatusBadRequest)
		return
	}
	if workouts == nil {
		workouts = []Workout{}
	}
	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))

	if err := handler.repo.SaveAll(ctx, workouts); err != nil {
		log.Errorf("save workouts: %s", err)
		http.Error(w, "save workouts failed", http.StatusInternalServerError)
		return
	}

	writeWorkouts(w, workouts)
}

func (handler *WorkoutsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("workout.id", id))

	var patch WorkoutPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Errorf("update workout, unmarshal json params: %s", err)
		http.Error(w, "update workout failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, id, patch); err != nil {
		log.Errorf("update workout [%s]: %s", id, err)
		http.Error(w, "update workout failed", http.StatusInternalServerError)
		return
	}

	updated, err := handler.repo.GetByID(ctx, id)
	if err != nil {
		writeWorkoutLookupErr(w, id, err)
		return
	}

	pkg.WriteJSONResponse(w, updated, http.StatusOK)
}

func (handler *WorkoutsHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.toggleFavorite")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("workout.id", id))

	toggled, err := handler.repo.ToggleFavorite(ctx, id)
	if err != nil {
		writeWorkoutLookupErr(w, id, err)
		return
	}

	pkg.WriteJSONResponse(w, toggled, http.StatusOK)
}

func (handler *WorkoutsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("workout.id", id))

	res, err := handler.repo.Delete(ctx, id)
	if err != nil {
		log.Errorf("delete workout [%s]: %s", id, err)
		http.Error(w, "delete workout failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout [%s] deleted with %d sessions", id, res.DeletedSessions)
	pkg.WriteJSONResponse(w, DeleteResponse{
		DeletedID:       id,
		DeletedWorkouts: res.DeletedWorkouts,
		DeletedSessions: res.DeletedSessions,
	}, http.StatusOK)
}

func writeWorkouts(w http.ResponseWriter, workouts []Workout) {
	pkg.WriteJSONResponse(w, WorkoutsListResponse{
		Workouts: workouts,
		Total:    len(workouts),
	}, http.StatusOK)
}

func writeWorkoutLookupErr(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	log.Errorf("workout [%s]: %s", id, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
