package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=settings_mocks_test.go -package=tracker_test

type settingsRepo interface {
	Get(ctx context.Context) UserSettings
	Set(ctx context.Context, settings UserSettings) error
}

type SettingsHandler struct {
	repo settingsRepo
}

func NewSettingsHandler(repo settingsRepo) *SettingsHandler {
	return &SettingsHandler{
		repo: repo,
	}
}

func (handler *SettingsHandler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/settings", handler.HandleGet).Methods("GET")
	r.HandleFunc("/settings", handler.HandleSet).Methods("PUT", "OPTIONS")
}

func (handler *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSONResponse(w, handler.repo.Get(r.Context()), http.StatusOK)
}

func (handler *SettingsHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.set")
	defer span.End()

	var settings UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		log.Errorf("set settings, unmarshal json params: %s", err)
		http.Error(w, "set settings failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Set(ctx, settings); err != nil {
		if errors.Is(err, ErrInvalidUnit) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("set settings: %s", err)
		http.Error(w, "set settings failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, settings, http.StatusOK)
}
