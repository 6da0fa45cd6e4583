package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/workoutlog/internal"
	"github.com/2beens/workoutlog/internal/config"
	"github.com/2beens/workoutlog/internal/logging"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file with secrets")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Debugf("no env file loaded from [%s]: %s", *envFile, err)
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "workoutlog-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("using store backend: [%s]", cfg.StoreBackend)

	ipInfoAPIKey := os.Getenv("IP_INFO_API_KEY")
	if ipInfoAPIKey == "" {
		log.Errorf("ip info API key not set, use IP_INFO_API_KEY env var to set it")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		versionInfo = "dev"
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	ownerUsername := os.Getenv("WORKOUTLOG_OWNER_USERNAME")
	ownerPasswordHash := os.Getenv("WORKOUTLOG_OWNER_PASSWORD_HASH")
	if ownerUsername == "" || ownerPasswordHash == "" {
		log.Errorf("owner username and password not set. use WORKOUTLOG_OWNER_USERNAME and WORKOUTLOG_OWNER_PASSWORD_HASH")
	}

	redisPassword := os.Getenv("WORKOUTLOG_REDIS_PASS")
	if redisPassword == "" {
		log.Warnln("redis password not set. use WORKOUTLOG_REDIS_PASS")
	}

	mongoURI := os.Getenv("WORKOUTLOG_MONGO_URI")

	otelServiceName := os.Getenv("OTEL_SERVICE_NAME")
	if otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			IpInfoAPIKey:            ipInfoAPIKey,
			VersionInfo:             versionInfo,
			OwnerUsername:           ownerUsername,
			OwnerPasswordHash:       ownerPasswordHash,
			RedisPassword:           redisPassword,
			PostgresPassword:        os.Getenv("WORKOUTLOG_POSTGRES_PASS"),
			MongoURI:                mongoURI,
			HoneycombTracingEnabled: honeycombEnabled,
			ServiceName:             otelServiceName,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash assumes the binary runs from inside the repo checkout.
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}
