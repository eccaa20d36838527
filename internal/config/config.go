package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the API process.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	JWTSecret    string
	JWTIssuer    string
	JWTExpiresIn time.Duration

	RateLimitRPS     float64
	RateLimitBurst   int
	TrustProxyHeader bool

	MetricsUser string
	MetricsPass string
	PprofSecret string

	FCMCredentialsFile string
	FCMCredentialsJSON string

	KafkaBrokers           []string
	KafkaNotificationTopic string
	NotificationWorkers    int
	NotificationQueueSize  int

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return Config{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "3333"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "gym_api"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTIssuer:    getEnv("JWT_ISSUER", "gym-api"),
		JWTExpiresIn: getDurationEnv("JWT_EXPIRES_IN", 24*time.Hour),

		RateLimitRPS:     getFloatEnv("RATE_LIMIT_RPS", 5),
		RateLimitBurst:   getIntEnv("RATE_LIMIT_BURST", 30),
		TrustProxyHeader: getBoolEnv("TRUST_PROXY_HEADER", false),

		MetricsUser: os.Getenv("METRICS_USER"),
		MetricsPass: os.Getenv("METRICS_PASS"),
		PprofSecret: os.Getenv("PPROF_SECRET"),

		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", "./serviceAccountKey.json"),
		FCMCredentialsJSON: os.Getenv("FCM_SERVICE_ACCOUNT_JSON"),

		KafkaBrokers:           getListEnv("KAFKA_BROKERS"),
		KafkaNotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "gym.notifications"),
		NotificationWorkers:    getIntEnv("NOTIFICATION_WORKERS", 5),
		NotificationQueueSize:  getIntEnv("NOTIFICATION_QUEUE_SIZE", 100),

		RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT", 5*time.Second),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getListEnv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
