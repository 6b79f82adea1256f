package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string
	DBDebug    bool

	JWTSecret      string
	JWTIssuer      string
	AccessTokenTTL time.Duration

	ServerPort string
	LogLevel   string
	LogFormat  string

	// AllowSelfPromotion lets a user flip their own is_teacher flag.
	AllowSelfPromotion bool
}

// fileConfig mirrors Config for the optional TOML file named by CONFIG_FILE.
type fileConfig struct {
	Database struct {
		Driver   string `toml:"driver"`
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		User     string `toml:"user"`
		Password string `toml:"password"`
		Name     string `toml:"name"`
		SSLMode  string `toml:"sslmode"`
		Path     string `toml:"path"`
		Debug    *bool  `toml:"debug"`
	} `toml:"database"`
	Auth struct {
		JWTSecret                string `toml:"jwt_secret"`
		JWTIssuer                string `toml:"jwt_issuer"`
		AccessTokenExpireMinutes int    `toml:"access_token_expire_minutes"`
		AllowSelfPromotion       *bool  `toml:"allow_self_promotion"`
	} `toml:"auth"`
	Server struct {
		Port      string `toml:"port"`
		LogLevel  string `toml:"log_level"`
		LogFormat string `toml:"log_format"`
	} `toml:"server"`
}

// defaultJWTSecret is only fit for local runs.
const defaultJWTSecret = "secret"

func Default() *Config {
	return &Config{
		DBDriver:           "postgres",
		DBHost:             "localhost",
		DBPort:             "5432",
		DBUser:             "postgres",
		DBPassword:         "postgres",
		DBName:             "learning_platform",
		DBSSLMode:          "disable",
		DBPath:             "data/studytrack.db",
		JWTSecret:          defaultJWTSecret,
		JWTIssuer:          "studytrack",
		AccessTokenTTL:     30 * time.Minute,
		ServerPort:         "8080",
		LogLevel:           "INFO",
		LogFormat:          "text",
		AllowSelfPromotion: true,
	}
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSLMODE", cfg.DBSSLMode)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.DBDebug = getEnvBool("DB_DEBUG", cfg.DBDebug)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.AccessTokenTTL = getEnvMinutes("ACCESS_TOKEN_EXPIRE_MINUTES", cfg.AccessTokenTTL)
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.AllowSelfPromotion = getEnvBool("ALLOW_SELF_PROMOTION", cfg.AllowSelfPromotion)

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.DBDriver, fc.Database.Driver)
	setString(&c.DBHost, fc.Database.Host)
	setString(&c.DBPort, fc.Database.Port)
	setString(&c.DBUser, fc.Database.User)
	setString(&c.DBPassword, fc.Database.Password)
	setString(&c.DBName, fc.Database.Name)
	setString(&c.DBSSLMode, fc.Database.SSLMode)
	setString(&c.DBPath, fc.Database.Path)
	if fc.Database.Debug != nil {
		c.DBDebug = *fc.Database.Debug
	}
	setString(&c.JWTSecret, fc.Auth.JWTSecret)
	setString(&c.JWTIssuer, fc.Auth.JWTIssuer)
	if fc.Auth.AccessTokenExpireMinutes > 0 {
		c.AccessTokenTTL = time.Duration(fc.Auth.AccessTokenExpireMinutes) * time.Minute
	}
	if fc.Auth.AllowSelfPromotion != nil {
		c.AllowSelfPromotion = *fc.Auth.AllowSelfPromotion
	}
	setString(&c.ServerPort, fc.Server.Port)
	setString(&c.LogLevel, fc.Server.LogLevel)
	setString(&c.LogFormat, fc.Server.LogFormat)
	return nil
}

// UsesDefaultSecret reports whether tokens are signed with the built-in
// secret, which anyone reading the source can forge.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		log.Printf("Invalid boolean for %s: %q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvMinutes(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
		log.Printf("Invalid minutes for %s: %q, using %v", key, value, defaultValue)
	}
	return defaultValue
}
