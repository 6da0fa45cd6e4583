package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	cacheKeyPrefix  = "ip-info::"
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// IPInfo is the part of the lookup the service cares about.
type IPInfo struct {
	IP          string `json:"ip"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	CountryName string `json:"countryName"`
}

var devIPInfo = IPInfo{
	IP:          "127.0.0.1",
	City:        "Berlin",
	Region:      "Berlin",
	Country:     "DE",
	CountryName: "Germany",
}

type Api struct {
	mu          sync.Mutex
	client      *ipinfo.Client
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewApi(client *ipinfo.Client, redisClient *redis.Client, cacheTTL time.Duration) *Api {
	return &Api{
		client:      client,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// NewIPInfoClient returns an ipinfo client doing its calls through httpClient.
func NewIPInfoClient(httpClient *http.Client, token string) *ipinfo.Client {
	return ipinfo.NewClient(httpClient, nil, token)
}

func (gi *Api) GetRequestGeoInfo(ctx context.Context, r *http.Request) (*IPInfo, error) {
	userIP, err := pkg.ReadUserIP(r)
	if err != nil {
		return nil, fmt.Errorf("get user ip: %w", err)
	}
	return gi.GetIPGeoInfo(ctx, userIP)
}

// GetIPGeoInfo resolves ip, trying the redis cache before calling ipinfo. Cache
// failures are logged and never fail the lookup.
func (gi *Api) GetIPGeoInfo(ctx context.Context, ip string) (_ *IPInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoIp.getIPGeoInfo")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.ip", ip))

	// used for development
	if ip == pkg.LocalhostIP {
		log.Tracef("ip geo info: returning development localhost / Berlin")
		info := devIPInfo
		return &info, nil
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return nil, fmt.Errorf("ip addr %s is invalid", ip)
	}

	// concurrent requests from one visitor would otherwise all miss the cache
	// and each spend an ipinfo call
	gi.mu.Lock()
	defer gi.mu.Unlock()

	cacheKey := cacheKeyPrefix + ip
	if info, ok := gi.cached(ctx, cacheKey); ok {
		span.SetAttributes(attribute.Bool("user.ip.from-cache", true))
		return info, nil
	}
	span.SetAttributes(attribute.Bool("user.ip.from-cache", false))

	log.Debugf("will ask ipinfo for ip info: %s", ip)
	core, err := gi.client.GetIPInfo(parsedIP)
	if err != nil {
		span.SetStatus(codes.Error, "ipinfo call failed")
		return nil, fmt.Errorf("ipinfo lookup [%s]: %w", ip, err)
	}

	info := &IPInfo{
		IP:          ip,
		City:        core.City,
		Region:      core.Region,
		Country:     core.Country,
		CountryName: core.CountryName,
	}

	infoBytes, err := json.Marshal(info)
	if err != nil {
		log.Errorf("marshal ip info for %s: %s", ip, err)
		return info, nil
	}
	if err := gi.redisClient.Set(ctx, cacheKey, infoBytes, gi.cacheTTL).Err(); err != nil {
		log.Errorf("failed to cache ip info in redis for %s: %s", ip, err)
	} else {
		log.Tracef("ip info cache set in redis for: %s", ip)
	}

	return info, nil
}

func (gi *Api) cached(ctx context.Context, cacheKey string) (*IPInfo, bool) {
	infoBytes, err := gi.redisClient.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Tracef("ip info value from redis not found for [%s]", cacheKey)
		return nil, false
	}
	if err != nil {
		log.Errorf("failed to find ip info from redis for [%s]: %s", cacheKey, err)
		return nil, false
	}

	info := &IPInfo{}
	if err := json.Unmarshal(infoBytes, info); err != nil {
		log.Errorf("failed to unmarshal cached ip info from redis for %s: %s", cacheKey, err)
		return nil, false
	}
	return info, true
}
