package misc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/workoutlog/internal/auth"
	"github.com/2beens/workoutlog/internal/geoip"
	"github.com/2beens/workoutlog/internal/middleware"
	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const loginRequestsPerMin = 15

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc_test

type geoLocator interface {
	GetRequestGeoInfo(ctx context.Context, r *http.Request) (*geoip.IPInfo, error)
}

type authenticator interface {
	Login(ctx context.Context, credentials auth.Credentials, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type LoginResponse struct {
	Token string `json:"token"`
}

type WhereAmIResponse struct {
	IP      string `json:"ip"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Handler struct {
	geoIp       geoLocator
	authService authenticator
	versionInfo string
	now         func() time.Time
}

func NewHandler(geoIp geoLocator, authService authenticator, versionInfo string) *Handler {
	return &Handler{
		geoIp:       geoIp,
		authService: authService,
		versionInfo: versionInfo,
		now:         time.Now,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/whereami", handler.handleWhereAmI).Methods("GET").Name("whereami")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "POST", "OPTIONS").Name("logout")

	// rate limit the login endpoints to slow down password guessing
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginRequestsPerMin, metricsManager))
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleWhereAmI(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.whereAmI")
	defer span.End()

	ipInfo, err := handler.geoIp.GetRequestGeoInfo(ctx, r)
	if err != nil {
		span.SetStatus(codes.Error, "get request geo info")
		span.RecordError(err)
		log.Errorf("error getting geo ip info: %s", err)
		http.Error(w, "geo ip info error", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("user.city", ipInfo.City))
	span.SetAttributes(attribute.String("user.country", ipInfo.Country))

	pkg.WriteJSONResponse(w, WhereAmIResponse{
		IP:      ipInfo.IP,
		City:    ipInfo.City,
		Country: ipInfo.Country,
	}, http.StatusOK)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.login")
	defer span.End()

	var creds auth.Credentials
	if r.Header.Get("Content-Type") == pkg.ContentType.JSON {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return
		}
		creds = auth.Credentials{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if creds.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	token, err := handler.authService.Login(ctx, creds, handler.now())
	if err != nil {
		if errors.Is(err, auth.ErrWrongCredentials) {
			log.Tracef("failed login attempt for user: %s", creds.Username)
			span.SetStatus(codes.Error, "wrong-credentials")
			http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
			return
		}
		log.Errorf("login failed: %s", err)
		span.RecordError(err)
		http.Error(w, "login error", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	pkg.WriteJSONResponse(w, LoginResponse{Token: token}, http.StatusOK)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	authToken := middleware.RequestToken(r)
	if authToken == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout error", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	log.Debug("logout success")
	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
