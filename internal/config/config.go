package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AppConfig holds all environment variables.
type AppConfig struct {
	Port              string
	FrontendURL       string
	SessionTTL        time.Duration
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string // bcrypt hash of the operator password
	DBHost            string
	DBPort            string
	DBUser            string
	DBName            string
	DBPassword        string
	DBSSLMode         string
}

// Load reads environment variables (and .env if present).
func Load() *AppConfig {
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:              os.Getenv("PORT"),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET_KEY"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBName:            os.Getenv("DB_NAME"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBSSLMode:         os.Getenv("DB_SSLMODE"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	cfg.SessionTTL = time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil && ttl > 0 {
			cfg.SessionTTL = ttl
		} else {
			log.Printf("config: ignoring invalid SESSION_TTL %q", v)
		}
	}
	return cfg
}

// UseDatabase reports whether a postgres session store is configured.
func (c *AppConfig) UseDatabase() bool {
	return c.DBHost != ""
}

// InitDB opens the postgres connection with a detailed logger.
func InitDB(c *AppConfig) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	return db
}

// CORSMiddleware allows the configured front end; with no FRONTEND_URL set
// it stays permissive for local development.
func CORSMiddleware(c *AppConfig) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	if c.FrontendURL != "" {
		conf.AllowOrigins = []string{c.FrontendURL}
	} else {
		conf.AllowAllOrigins = true
	}
	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization")
	return cors.New(conf)
}
