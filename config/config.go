package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Config struct {
	Env           string
	HTTPAddr      string
	StatsHTTPAddr string
	TimeZone      string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisAddr string

	KafkaEnabled bool
	KafkaBroker  string
	KafkaTopic   string
	KafkaGroupID string

	CORSOrigins []string

	JWTSecret       string
	BcryptCost      int
	AdminUsername   string
	AdminEmail      string
	AdminPassword   string
	AdminSessionTTL time.Duration
	GuestSessionTTL time.Duration
	CartTTL         time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:           getEnv("APP_ENV", "development"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8081"),
		StatsHTTPAddr: getEnv("STATS_HTTP_ADDR", ":8082"),
		TimeZone:      getEnv("APP_TIMEZONE", "Europe/Istanbul"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "qrmenu"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr: getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),

		KafkaEnabled: getEnvBool("KAFKA_ENABLED", true),
		KafkaBroker:  getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "restaurant-events"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "stats-svc"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		BcryptCost:      getEnvInt("BCRYPT_COST", 12),
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@restoran.com"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		AdminSessionTTL: time.Duration(getEnvInt("ADMIN_SESSION_HOURS", 24*7)) * time.Hour,
		GuestSessionTTL: time.Duration(getEnvInt("GUEST_SESSION_HOURS", 24)) * time.Hour,
		CartTTL:         time.Duration(getEnvInt("CART_TTL_HOURS", 24)) * time.Hour,
	}
}

// Location falls back to UTC when the configured zone is unknown.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// minProductionSecret is the shortest JWT secret accepted in production.
const minProductionSecret = 32

// ValidateSecrets fails when JWT_SECRET is unset, or too short for production.
func (c Config) ValidateSecrets() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.Env == "production" && len(c.JWTSecret) < minProductionSecret {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minProductionSecret)
	}
	return nil
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

func NewLogger(env string) *zap.SugaredLogger {
	if env == "production" {
		return zap.Must(zap.NewProduction()).Sugar()
	}
	return zap.Must(zap.NewDevelopment()).Sugar()
}

func MustInitPostgres(cfg Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
	})
}

func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBroker),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
