package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	AppEnv  string `yaml:"APP_ENV"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBDriver     string `yaml:"DB_DRIVER"`
	DBUser       string `yaml:"DB_USER"`
	DBName       string `yaml:"DB_NAME"`
	DBPassword   string `yaml:"DB_PASSWORD"`
	DBPort       string `yaml:"DB_PORT"`
	DBHost       string `yaml:"DB_HOST"`
	DBSQLitePath string `yaml:"DB_SQLITE_PATH"`

	// JWT
	JWTSecret     string `yaml:"JWT_SECRET"`
	JWTTTLMinutes string `yaml:"JWT_TTL_MINUTES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// HTTP
	CORSOrigins  string `yaml:"CORS_ORIGINS"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`
}

var (
	config     Config
	configOnce sync.Once
	configPath = "config.yaml"
)

var defaults = map[string]string{
	"APP_PORT":        "8080",
	"APP_ENV":         "development",
	"APP_URL":         "http://localhost:8080",
	"DB_DRIVER":       "postgres",
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_SQLITE_PATH":  "foodloss.db",
	"JWT_TTL_MINUTES": "120",
	"SMTP_PORT":       "587",
	"CORS_ORIGINS":    "*",
	"RATE_LIMIT_MAX":  "10",
}

// LoadConfig reads .env and config.yaml once. Environment variables win over
// config.yaml, which wins over the built-in defaults.
func LoadConfig() {
	configOnce.Do(func() {
		_ = godotenv.Load()

		file, err := os.ReadFile(configPath)
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
			return
		}

		if err := yaml.Unmarshal(file, &config); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
		}
	})
}

func yamlValue(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_ENV":
		return config.AppEnv
	case "APP_URL":
		return config.AppURL
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SQLITE_PATH":
		return config.DBSQLitePath
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_TTL_MINUTES":
		return config.JWTTTLMinutes
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "CORS_ORIGINS":
		return config.CORSOrigins
	case "RATE_LIMIT_MAX":
		return config.RateLimitMax
	default:
		return ""
	}
}

func GetConfig(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := yamlValue(key); v != "" {
		return v
	}
	return defaults[key]
}

// GetConfigInt falls back to def when the value is missing or not a number.
func GetConfigInt(key string, def int) int {
	raw := GetConfig(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid integer for %s: %s", key, raw)
		return def
	}
	return n
}
