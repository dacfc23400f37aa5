package config

import (
	"errors"
	"io/fs"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Notification NotificationConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	Issuer       string
	AccessExpiry time.Duration
}

type PasswordConfig struct {
	BcryptCost int
	// MaxConcurrentHashes bounds how many bcrypt operations run at once.
	MaxConcurrentHashes int64
}

type NotificationConfig struct {
	Stream string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

func LoadConfig() (*Config, error) {
	return load(".env")
}

func load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil || accessExpiry <= 0 {
		accessExpiry = time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			Issuer:       v.GetString("JWT_ISSUER"),
			AccessExpiry: accessExpiry,
		},
		Password: PasswordConfig{
			BcryptCost:          v.GetInt("BCRYPT_COST"),
			MaxConcurrentHashes: v.GetInt64("PASSWORD_HASH_CONCURRENCY"),
		},
		Notification: NotificationConfig{
			Stream: v.GetString("NOTIFICATION_STREAM"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_ISSUER", "health-first-server")
	v.SetDefault("JWT_ACCESS_EXPIRY", "3600s")

	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("PASSWORD_HASH_CONCURRENCY", runtime.NumCPU())

	v.SetDefault("NOTIFICATION_STREAM", "provider:notifications")
}
