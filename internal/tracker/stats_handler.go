package tracker

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

const defaultRecentLimit = 3

//go:generate mockgen -source=$GOFILE -destination=stats_mocks_test.go -package=tracker_test

type statsProvider interface {
	GlobalStats(ctx context.Context) GlobalStats
	CategoryStats(ctx context.Context, categoryID string) CategoryStats
	WeeklyProgress(ctx context.Context) []DayProgress
	RecentWorkouts(ctx context.Context, limit int) []Workout
	CategoryWorkoutCounts(ctx context.Context) map[string]int
	Search(ctx context.Context, query string) []SearchResult
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

type StatsHandler struct {
	stats statsProvider
}

func NewStatsHandler(stats statsProvider) *StatsHandler {
	return &StatsHandler{
		stats: stats,
	}
}

func (handler *StatsHandler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/stats", handler.HandleGlobal).Methods("GET")
	r.HandleFunc("/stats/weekly", handler.HandleWeekly).Methods("GET")
	r.HandleFunc("/stats/recent", handler.HandleRecent).Methods("GET")
	r.HandleFunc("/stats/categories", handler.HandleCategoryCounts).Methods("GET")
	r.HandleFunc("/stats/categories/{id}", handler.HandleCategory).Methods("GET")
	r.HandleFunc("/search", handler.HandleSearch).Methods("GET")
}

func (handler *StatsHandler) HandleGlobal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.global")
	defer span.End()

	pkg.WriteJSONResponse(w, handler.stats.GlobalStats(ctx), http.StatusOK)
}

func (handler *StatsHandler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.category")
	defer span.End()

	categoryID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("category.id", categoryID))

	pkg.WriteJSONResponse(w, handler.stats.CategoryStats(ctx, categoryID), http.StatusOK)
}

func (handler *StatsHandler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSONResponse(w, handler.stats.WeeklyProgress(r.Context()), http.StatusOK)
}

func (handler *StatsHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			http.Error(w, "error, limit must be a positive number", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	workouts := handler.stats.RecentWorkouts(r.Context(), limit)
	pkg.WriteJSONResponse(w, WorkoutsListResponse{
		Workouts: workouts,
		Total:    len(workouts),
	}, http.StatusOK)
}

func (handler *StatsHandler) HandleCategoryCounts(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSONResponse(w, handler.stats.CategoryWorkoutCounts(r.Context()), http.StatusOK)
}

func (handler *StatsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.search")
	defer span.End()

	query := r.URL.Query().Get("q")
	results := handler.stats.Search(ctx, query)
	span.SetAttributes(attribute.Int("results", len(results)))

	pkg.WriteJSONResponse(w, SearchResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	}, http.StatusOK)
}
