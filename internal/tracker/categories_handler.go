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

//go:generate mockgen -source=$GOFILE -destination=categories_mocks_test.go -package=tracker_test

type categoriesRepo interface {
	List(ctx context.Context) []Category
	GetByID(ctx context.Context, id string) (*Category, error)
	Add(ctx context.Context, newCategory NewCategory) (*Category, error)
	Update(ctx context.Context, id string, patch CategoryPatch) error
	Delete(ctx context.Context, id string) (CascadeResult, error)
}

type CategoriesListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

// DeleteResponse is returned by every delete endpoint. Counts of cascaded
// children are zero where nothing depends on the deleted entity.
type DeleteResponse struct {
	DeletedID       string `json:"deletedId"`
	DeletedWorkouts int    `json:"deletedWorkouts"`
	DeletedSessions int    `json:"deletedSessions"`
}

type CategoriesHandler struct {
	repo categoriesRepo
}

func NewCategoriesHandler(repo categoriesRepo) *CategoriesHandler {
	return &CategoriesHandler{
		repo: repo,
	}
}

func (handler *CategoriesHandler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/categories", handler.HandleList).Methods("GET")
	r.HandleFunc("/categories", handler.HandleAdd).Methods("POST", "OPTIONS")
	r.HandleFunc("/categories/{id}", handler.HandleGet).Methods("GET")
	r.HandleFunc("/categories/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS")
	r.HandleFunc("/categories/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS")
}

func (handler *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.list")
	defer span.End()

	categories := handler.repo.List(ctx)
	pkg.WriteJSONResponse(w, CategoriesListResponse{
		Categories: categories,
		Total:      len(categories),
	}, http.StatusOK)
}

func (handler *CategoriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("category.id", id))

	category, err := handler.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		log.Errorf("get category [%s]: %s", id, err)
		http.Error(w, "get category failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, category, http.StatusOK)
}

func (handler *CategoriesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.add")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newCategory NewCategory
	if err := json.NewDecoder(r.Body).Decode(&newCategory); err != nil {
		log.Errorf("new category, unmarshal json params: %s", err)
		http.Error(w, "add category failed", http.StatusBadRequest)
		return
	}

	newCategory.Title = strings.TrimSpace(newCategory.Title)
	if newCategory.Title == "" {
		http.Error(w, "error, category title empty", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, newCategory)
	if err != nil {
		log.Errorf("add category [%s]: %s", newCategory.Title, err)
		http.Error(w, "error, failed to add new category", http.StatusInternalServerError)
		return
	}

	log.Debugf("new category added: [%s] %s", added.ID, added.Title)
	pkg.WriteJSONResponse(w, added, http.StatusCreated)
}

func (handler *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("category.id", id))

	var patch CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Errorf("update category, unmarshal json params: %s", err)
		http.Error(w, "update category failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, id, patch); err != nil {
		log.Errorf("update category [%s]: %s", id, err)
		http.Error(w, "update category failed", http.StatusInternalServerError)
		return
	}

	// update is a no-op for unknown ids, so the lookup decides the status
	updated, err := handler.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		log.Errorf("get updated category [%s]: %s", id, err)
		http.Error(w, "update category failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, updated, http.StatusOK)
}

func (handler *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("category.id", id))

	res, err := handler.repo.Delete(ctx, id)
	if err != nil {
		log.Errorf("delete category [%s]: %s", id, err)
		http.Error(w, "delete category failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("category [%s] deleted, cascaded: %+v", id, res)
	pkg.WriteJSONResponse(w, DeleteResponse{
		DeletedID:       id,
		DeletedWorkouts: res.DeletedWorkouts,
		DeletedSessions: res.DeletedSessions,
	}, http.StatusOK)
}
