package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/2beens/workoutlog/internal/auth"
	"github.com/2beens/workoutlog/internal/config"
	"github.com/2beens/workoutlog/internal/db"
	"github.com/2beens/workoutlog/internal/geoip"
	"github.com/2beens/workoutlog/internal/kvstore"
	"github.com/2beens/workoutlog/internal/middleware"
	"github.com/2beens/workoutlog/internal/misc"
	"github.com/2beens/workoutlog/internal/submissions"
	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/tracker"
	"github.com/2beens/workoutlog/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

const (
	authCleanerInterval = 8 * time.Hour
	storeCacheExpirySec = 300
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	mongoClient *mongo.Client
	store       kvstore.Store
	geoIp       *geoip.Api

	redisClient  *redis.Client
	rateLimiter  middleware.RequestRateLimiter
	loginChecker auth.Checker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	IpInfoAPIKey            string
	VersionInfo             string
	OwnerUsername           string
	OwnerPasswordHash       string
	RedisPassword           string
	PostgresPassword        string
	MongoURI                string
	HoneycombTracingEnabled bool
	ServiceName             string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	serviceName := params.ServiceName
	if serviceName == "" {
		serviceName = "workoutlog"
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		redisClient:  rdb,
		rateLimiter:  redis_rate.NewLimiter(rdb),
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),
		authService: auth.NewAuthService(&auth.Owner{
			Username:     params.OwnerUsername,
			PasswordHash: params.OwnerPasswordHash,
		}, auth.DefaultTTL, rdb),
		otelShutdown: otelShutdown,
	}

	var extraCollectors []prometheus.Collector
	if cfg.StoreBackend == config.StorePostgres {
		s.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := s.dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			s.dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("workoutlog", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	s.store, err = s.newStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}
	s.geoIp = geoip.NewApi(
		geoip.NewIPInfoClient(tracedHttpClient, params.IpInfoAPIKey),
		rdb,
		geoip.DefaultCacheTTL,
	)

	if params.MongoURI != "" {
		s.mongoClient, err = submissions.NewMongoClient(ctx, params.MongoURI)
		if err != nil {
			// submissions stay disabled, tracker routes are unaffected
			log.Errorf("mongo client: %s", err)
		}
	} else {
		log.Warnln("mongo uri not set, contact and newsletter submissions disabled")
	}

	go s.authService.RunCleaner(ctx, authCleanerInterval)

	return s, nil
}

// newStore builds the configured backend, optionally fronted by a cache, and
// always instrumented. Only process-local backends may be cached.
func (s *Server) newStore(ctx context.Context) (kvstore.Store, error) {
	var (
		store kvstore.Store
		err   error
	)

	switch s.config.StoreBackend {
	case config.StoreMemory:
		store = kvstore.NewMemory()
	case config.StoreSQLite:
		if dir := filepath.Dir(s.config.SQLitePath); dir != "." {
			if err := pkg.EnsureDir(dir); err != nil {
				return nil, fmt.Errorf("sqlite dir: %w", err)
			}
		}
		store, err = kvstore.NewSQLite(ctx, s.config.SQLitePath)
		if err != nil {
			return nil, err
		}
	case config.StoreRedis:
		store = kvstore.NewRedis(s.redisClient, s.config.StoreKeyPrefix)
	case config.StorePostgres:
		pg := kvstore.NewPostgres(s.dbPool)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		store = pg
	default:
		return nil, fmt.Errorf("unknown store backend: %s", s.config.StoreBackend)
	}

	if s.config.StoreCacheSizeBytes > 0 {
		if s.config.SharedStore() {
			_ = store.Close()
			return nil, fmt.Errorf("store cache not allowed for shared backend: %s", s.config.StoreBackend)
		}
		store = kvstore.NewCached(store, s.config.StoreCacheSizeBytes, storeCacheExpirySec)
	}

	log.Debugf("tracker store: %s (cache bytes: %d)", s.config.StoreBackend, s.config.StoreCacheSizeBytes)
	return kvstore.NewInstrumented(store, s.metricsManager), nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("workoutlog-router"))

	trackerDB := tracker.NewDB(s.store)
	cascade := tracker.NewCoordinator(trackerDB)
	tracker.NewCategoriesHandler(tracker.NewCategoryRepo(trackerDB, cascade)).SetupRoutes(r)
	tracker.NewWorkoutsHandler(tracker.NewWorkoutRepo(trackerDB, cascade)).SetupRoutes(r)
	tracker.NewSessionsHandler(tracker.NewSessionRepo(trackerDB), s.metricsManager).SetupRoutes(r)
	tracker.NewSettingsHandler(tracker.NewSettingsRepo(trackerDB)).SetupRoutes(r)
	tracker.NewStatsHandler(tracker.NewAggregator(trackerDB)).SetupRoutes(r)

	misc.NewHandler(s.geoIp, s.authService, s.versionInfo).
		SetupRoutes(r, s.rateLimiter, s.metricsManager)

	if s.mongoClient != nil {
		submissionsService := submissions.NewService(
			submissions.NewMongoRepo(s.mongoClient, s.config.MongoDBName),
			s.metricsManager,
		)
		submissions.NewHandler(submissionsService, s.geoIp).SetupRoutes(
			r,
			s.rateLimiter,
			s.config.SubmissionsRateLimitPerMin,
			s.metricsManager,
		)
	}

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing what they depend on
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	if err := s.closeResources(ctx); err != nil {
		log.Errorf("close resources: %s", err)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) closeResources(ctx context.Context) error {
	var err error
	if s.store != nil {
		err = multierr.Append(err, s.store.Close())
	}
	if s.mongoClient != nil {
		err = multierr.Append(err, s.mongoClient.Disconnect(ctx))
	}
	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
	return err
}
