package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/workoutlog/internal/geoip"
	"github.com/2beens/workoutlog/internal/middleware"
	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=submissions_test

type submitter interface {
	SubmitContact(ctx context.Context, contact Contact) Result
	SubscribeNewsletter(ctx context.Context, email, name string) Result
}

type geoLocator interface {
	GetRequestGeoInfo(ctx context.Context, r *http.Request) (*geoip.IPInfo, error)
}

type ValidationResponse struct {
	Success bool             `json:"success"`
	Errors  ValidationErrors `json:"errors"`
}

type Handler struct {
	service   submitter
	geoIp     geoLocator
	validator *Validator
}

func NewHandler(service submitter, geoIp geoLocator) *Handler {
	return &Handler{
		service:   service,
		geoIp:     geoIp,
		validator: NewValidator(),
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	rateLimit := middleware.RateLimit(rateLimiter, "submissions", allowedPerMin, metricsManager)
	mainRouter.
		Handle("/contact", rateLimit(http.HandlerFunc(handler.HandleContact))).
		Methods("POST", "OPTIONS").Name("contact")
	mainRouter.
		Handle("/newsletter", rateLimit(http.HandlerFunc(handler.HandleNewsletter))).
		Methods("POST", "OPTIONS").Name("newsletter")
}

func (handler *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.submissions.contact")
	defer span.End()

	var contact Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		log.Errorf("contact, unmarshal json params: %s", err)
		http.Error(w, "contact submission failed", http.StatusBadRequest)
		return
	}
	contact.Email = strings.TrimSpace(contact.Email)

	if !handler.valid(w, contact) {
		return
	}

	if contact.Country == "" && handler.geoIp != nil {
		if ipInfo, err := handler.geoIp.GetRequestGeoInfo(ctx, r); err != nil {
			log.Debugf("contact, resolve country: %s", err)
		} else {
			contact.Country = ipInfo.CountryName
			if contact.Country == "" {
				contact.Country = ipInfo.Country
			}
		}
	}
	span.SetAttributes(attribute.String("contact.country", contact.Country))

	writeResult(w, handler.service.SubmitContact(ctx, contact))
}

func (handler *Handler) HandleNewsletter(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.submissions.newsletter")
	defer span.End()

	var signup NewsletterSignup
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		log.Errorf("newsletter, unmarshal json params: %s", err)
		http.Error(w, "newsletter signup failed", http.StatusBadRequest)
		return
	}
	signup.Email = strings.TrimSpace(signup.Email)

	if !handler.valid(w, signup) {
		return
	}

	writeResult(w, handler.service.SubscribeNewsletter(ctx, signup.Email, signup.Name))
}

func (handler *Handler) valid(w http.ResponseWriter, v any) bool {
	err := handler.validator.Validate(v)
	if err == nil {
		return true
	}

	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		pkg.WriteJSONResponse(w, ValidationResponse{Errors: validationErrs}, http.StatusBadRequest)
		return false
	}

	log.Errorf("validate submission: %s", err)
	http.Error(w, "invalid submission", http.StatusBadRequest)
	return false
}

// writeResult maps the result onto a status: duplicates are a conflict and
// storage failures a server error. The body is always the result.
func writeResult(w http.ResponseWriter, res Result) {
	status := http.StatusOK
	switch {
	case res.Success:
	case res.Message == MsgAlreadySubscribed:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}
	pkg.WriteJSONResponse(w, res, status)
}
