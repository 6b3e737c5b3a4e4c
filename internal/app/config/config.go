package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	// Адреса для писем и ссылок в них
	AdminEmail   string
	FromEmail    string
	DashboardURL string

	JWT      JWTConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	MinIO    MinIOConfig
	Razorpay RazorpayConfig
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

const (
	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envSMTPHost = "SMTP_HOST"
	envSMTPPort = "SMTP_PORT"
	envSMTPUser = "SMTP_USER"
	envSMTPPass = "SMTP_PASSWORD"

	envMinIOEndpoint  = "MINIO_ENDPOINT"
	envMinIOAccessKey = "MINIO_ACCESS_KEY"
	envMinIOSecretKey = "MINIO_SECRET_KEY"
	envMinIOBucket    = "MINIO_BUCKET"

	envRazorpayKeyID  = "RAZORPAY_KEY_ID"
	envRazorpaySecret = "RAZORPAY_KEY_SECRET"

	envJWTSecret = "JWT_SECRET"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// JWT: секрет только из окружения, срок и алгоритм фиксированные
	cfg.JWT = JWTConfig{
		Token:         os.Getenv(envJWTSecret),
		ExpiresIn:     24 * time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}
	if cfg.JWT.Token == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	// Redis конфигурация из env
	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
	if err != nil {
		return nil, fmt.Errorf("redis port must be int value: %w", err)
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	// SMTP конфигурация из env
	cfg.SMTP.Host = os.Getenv(envSMTPHost)
	if portStr := os.Getenv(envSMTPPort); portStr != "" {
		cfg.SMTP.Port, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("smtp port must be int value: %w", err)
		}
	} else {
		cfg.SMTP.Port = 587
	}
	cfg.SMTP.Username = os.Getenv(envSMTPUser)
	cfg.SMTP.Password = os.Getenv(envSMTPPass)

	// MinIO конфигурация из env
	cfg.MinIO.Endpoint = os.Getenv(envMinIOEndpoint)
	cfg.MinIO.AccessKey = os.Getenv(envMinIOAccessKey)
	cfg.MinIO.SecretKey = os.Getenv(envMinIOSecretKey)
	cfg.MinIO.Bucket = os.Getenv(envMinIOBucket)
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = "arka-receipts"
	}

	// Razorpay ключи из env
	cfg.Razorpay.KeyID = os.Getenv(envRazorpayKeyID)
	cfg.Razorpay.KeySecret = os.Getenv(envRazorpaySecret)

	log.Info("config parsed")

	return cfg, nil
}
