package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"checkout/pkg/domain"
	pstrings "checkout/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string

	// DefaultGeneration serves requests that name no session API generation.
	DefaultGeneration domain.APIGeneration
	// SessionEmulator mounts POST /checkout/sessions on the in-memory APIs.
	SessionEmulator bool

	Redis           RedisConfig
	Postgres        PostgresConfig
	Kafka           KafkaConfig
	Features        FeatureConfig
	Fraud           FraudConfig
	RateLimit       RateLimitConfig
	ShutdownTimeout time.Duration
}

// RedisConfig configures the partner settings cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures durable partner settings. An empty DSN disables it.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// KafkaConfig configures the audit sink. No brokers keeps audit in memory.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FeatureConfig configures the static feature registry and partner tables.
type FeatureConfig struct {
	GroupedSelectPartners []string
	XboxNativePartners    []string
	PartnerSettingsTTL    time.Duration
	// PartnerSettingsSeed is a JSON file of partner tables loaded at startup.
	PartnerSettingsSeed string
}

// FraudConfig configures the fraud evaluator and its circuit breaker.
type FraudConfig struct {
	BreakerThreshold int
	BreakerCooldown  time.Duration
	BlockedNetworks  []string
}

// RateLimitConfig configures per-client throttling. Zero keeps the default
// for that class.
type RateLimitConfig struct {
	Disabled          bool
	CheckoutPerMinute int
	ConfirmPerMinute  int
	RenderPerMinute   int
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	_ = godotenv.Load()

	defaultGeneration := domain.GenerationFor(getBool("USE_NEXTGEN_DEFAULT", false))

	return Server{
		Addr:              getString("CHECKOUT_ADDR", ":8080"),
		LogLevel:          getString("LOG_LEVEL", "info"),
		LogFormat:         getString("LOG_FORMAT", "json"),
		DefaultGeneration: defaultGeneration,
		SessionEmulator:   getBool("SESSION_EMULATOR", true),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", time.Second),
		},
		Postgres: PostgresConfig{
			DSN:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Kafka: KafkaConfig{
			Brokers: pstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getString("AUDIT_TOPIC", "checkout.audit"),
		},
		Features: FeatureConfig{
			GroupedSelectPartners: pstrings.SplitList(os.Getenv("GROUPED_SELECT_PARTNERS")),
			XboxNativePartners:    pstrings.SplitList(os.Getenv("XBOX_NATIVE_PARTNERS")),
			PartnerSettingsTTL:    getDuration("PARTNER_SETTINGS_TTL", 30*time.Second),
			PartnerSettingsSeed:   os.Getenv("PARTNER_SETTINGS_SEED"),
		},
		Fraud: FraudConfig{
			BreakerThreshold: getInt("FRAUD_BREAKER_THRESHOLD", 5),
			BreakerCooldown:  getDuration("FRAUD_BREAKER_COOLDOWN", 30*time.Second),
			BlockedNetworks:  pstrings.SplitList(os.Getenv("FRAUD_BLOCKED_NETWORKS")),
		},
		RateLimit: RateLimitConfig{
			Disabled:          getBool("DISABLE_RATE_LIMITING", false),
			CheckoutPerMinute: getInt("RATE_LIMIT_CHECKOUT_PER_MINUTE", 0),
			ConfirmPerMinute:  getInt("RATE_LIMIT_CONFIRM_PER_MINUTE", 0),
			RenderPerMinute:   getInt("RATE_LIMIT_RENDER_PER_MINUTE", 0),
		},
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
