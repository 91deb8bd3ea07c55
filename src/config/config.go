package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const fallbackSecret = "fallback-secret-key"

type Config struct {
	Env    string
	Port   string
	WSPort string

	DBDriver    string
	DBPath      string
	DatabaseDSN string
	DBLogLevel  string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	CORSOrigins string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	MongoURI      string
	MongoDatabase string

	CloudinaryURL string
}

// LoadConfig reads .env (outside prod) and the process environment.
func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	cfg := Config{
		Env:    getEnv("ENV", "dev"),
		Port:   getEnv("PORT", "3000"),
		WSPort: getEnv("WS_PORT", "3001"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:      getEnv("DB_PATH", "./therive.db"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		DBLogLevel:  getEnv("DB_LOG_LEVEL", "warn"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   getDuration("TOKEN_TTL", 30*24*time.Hour),
		BcryptCost: getInt("BCRYPT_COST", 12),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "therive.notifications"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "therive"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProd() {
			log.Fatal("JWT_SECRET is required when ENV=prod")
		}
		log.Println("Warning: JWT_SECRET not set, using development fallback")
		cfg.JWTSecret = fallbackSecret
	}

	return cfg
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
