package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "workoutlog-session||"
	tokensSetKey     = "workoutlog-sessions"
	tokenBytes       = 32
)

var (
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrOwnerNotSet      = errors.New("owner credentials not configured")
)

// Owner is the single account allowed to use the tracker API.
type Owner struct {
	Username     string
	PasswordHash string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Service struct {
	owner       *Owner
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(n int) (string, error)
}

func NewAuthService(
	owner *Owner,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		owner:          owner,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login checks the credentials against the owner and opens a new session. The
// session key expires in redis after the TTL, and the token is tracked in a set so
// ScanAndClean can find sessions left behind.
func (as *Service) Login(ctx context.Context, credentials Credentials, createdAt time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if as.owner == nil || as.owner.Username == "" || as.owner.PasswordHash == "" {
		return "", ErrOwnerNotSet
	}
	if credentials.Username != as.owner.Username {
		log.Tracef("[username] failed login attempt for user: %s", credentials.Username)
		return "", ErrWrongCredentials
	}
	if !pkg.CheckPasswordHash(credentials.Password, as.owner.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", credentials.Username)
		return "", ErrWrongCredentials
	}

	token, err := as.RandStringFunc(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	if err := as.redisClient.Set(ctx, sessionKey, createdAt.Unix(), as.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("track session: %w", err)
	}

	return token, nil
}

// Logout ends the session. It reports false when the token had no live session.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	deleted, err := as.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, fmt.Errorf("untrack session: %w", err)
	}

	return deleted > 0, nil
}

// ScanAndClean runs through all tracked sessions and drops the expired ones,
// including tokens whose session key redis has already evicted.
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Traceln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		createdAtUnixStr, err := as.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}

		if time.Since(time.Unix(createdAtUnix, 0)) > as.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
	}
	log.Debugf("auth service, scan and clean removed %d sessions", len(toRemove))
}

// RunCleaner calls ScanAndClean every interval until ctx is done.
func (as *Service) RunCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			as.ScanAndClean(ctx)
		}
	}
}
