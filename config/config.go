package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"shoestore/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port  string
	DB    DB
	JWT   JWT
	Redis Redis
	Kafka Kafka
	Admin Admin
}

type DB struct {
	database.Config
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessExp time.Duration
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type Kafka struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// Admin holds the seed credentials for the back-office account.
type Admin struct {
	Email    string
	Password string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnv("JWT_ISSUER", log),
			Audience:  getEnv("JWT_AUDIENCE", log),
			AccessExp: parseDurationWithDays(getEnv("ACCESS_EXP", log)),
		},
		Redis: Redis{
			Enabled:    os.Getenv("REDIS_ENABLED") == "true",
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("GUEST_SESSION_TTL_SECONDS"), 86400),
		},
		Kafka: Kafka{
			Enabled: os.Getenv("KAFKA_ENABLED") == "true",
			Brokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			Topic:   os.Getenv("KAFKA_TOPIC_EMAIL"),
		},
		Admin: Admin{
			Email:    getSecret("ADMIN_EMAIL", "admin@shoestore.local"),
			Password: getSecret("ADMIN_PASSWORD", ""),
		},
	}
}

type Notifier struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	TMPLDir string

	KafkaBrokers []string
	KafkaGroupID string
	KafkaTopic   string
}

func LoadNotifier(log *zap.Logger) *Notifier {
	return &Notifier{
		SMTPHost:     getEnv("SMTP_HOST", log),
		SMTPPort:     getEnvInt("SMTP_PORT", log),
		SMTPUser:     getEnv("SMTP_USER", log),
		SMTPPassword: getEnv("SMTP_PASSWORD", log),
		SMTPFrom:     getEnv("SMTP_FROM", log),
		TMPLDir:      getEnv("TMPL_DIR", log),
		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", log),
		KafkaTopic:   getEnv("KAFKA_TOPIC_EMAIL", log),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvInt(key string, log *zap.Logger) int {
	valStr := getEnv(key, log)
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Error("environment variable is not an int", zap.String("key", key), zap.Error(err))
		panic("invalid int value for environment variable: " + key)
	}
	return val
}

// getSecret resolves a value with priority: environment variable,
// then a file pointed to by <KEY>_FILE (docker/k8s secrets), then the
// built-in default.
func getSecret(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	if path, exists := os.LookupEnv(key + "_FILE"); exists && path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return def
}

func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0
		}
		return time.Duration(days) * 24 * time.Hour
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
