package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port    int
	BaseURL string

	MongoURI string
	MongoDB  string

	JWTKey string
	Debug  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	KafkaBrokers []string
	KafkaTopic   string

	MidtransServerKey string
	MidtransProd      bool

	AdminEmail    string
	AdminPassword string
}

// LoadConfig reads the configuration from environment variables, loading a
// local .env file first when one exists.
func LoadConfig() *Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		Port:    port,
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  getEnv("MONGO_DB", "portal"),

		JWTKey: getEnv("JWT_KEY", "your-secret-key"), // replace in real deployments
		Debug:  getEnv("GIN_MODE", "debug") == "debug",

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@launchhub.io"),

		KafkaBrokers: splitNonEmpty(getEnv("KAFKA_BROKERS", ""), ","),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "portal.moderation"),

		MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
		MidtransProd:      getEnv("MIDTRANS_ENV", "sandbox") == "production",

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@launchhub.io"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

// getEnv returns the environment value for key, or def when unset.
func getEnv(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
