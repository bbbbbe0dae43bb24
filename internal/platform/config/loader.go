package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load, with their defaults.
const (
	envPort             = "PORT"
	envAdminPassword    = "ADMIN_PASSWORD"
	envSessionSecret    = "SESSION_SECRET"
	envSessionStore     = "SESSION_STORE"
	envSessionTTL       = "SESSION_TTL"
	envChallengeSecret  = "RECAPTCHA_SECRET_KEY"
	envChallengeSiteKey = "RECAPTCHA_SITE_KEY"
	envChallengeURL     = "RECAPTCHA_VERIFY_URL"
	envRedisAddr        = "REDIS_ADDR"
	envRedisPassword    = "REDIS_PASSWORD"
	envRedisDB          = "REDIS_DB"
	envDBPath           = "KENEVIZ_DB_PATH"
	envCatalogPath      = "CATALOG_PATH"
	envStaticDir        = "STATIC_DIR"
	envTemplateGlob     = "TEMPLATE_GLOB"
	envLogLevel         = "LOG_LEVEL"
	envLogDir           = "LOG_DIR"
	envLogFile          = "LOG_FILE"
)

const (
	defaultPort          = 5000
	defaultAdminPassword = "sistemnabide"
	defaultChallengeURL  = "https://www.google.com/recaptcha/api/siteverify"
	defaultDBPath        = "./data/keneviz.db"
	defaultStaticDir     = "./web/static"
	defaultTemplateGlob  = "./web/templates/*.html"
	defaultSessionTTL    = 24 * time.Hour
	defaultCallTimeout   = 10 * time.Second
)

// Loader reads configuration from the environment, optionally preloading a
// .env file.
type Loader struct {
	useDotEnv bool
}

// NewLoader creates a loader with .env support enabled.
func NewLoader() *Loader {
	return &Loader{useDotEnv: true}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Load builds the Config from the environment. Every value has a documented
// default; SESSION_SECRET falls back to a random per-process secret so
// unset deployments stay functional, at the cost of sessions not surviving a
// restart.
func (l *Loader) Load() (*Config, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using process environment")
		}
	}

	port, err := intEnv(envPort, defaultPort)
	if err != nil {
		return nil, err
	}
	redisDB, err := intEnv(envRedisDB, 0)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := durationEnv(envSessionTTL, defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv(envSessionSecret)
	if secret == "" {
		secret = randomSecret()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         port,
			StaticDir:    stringEnv(envStaticDir, defaultStaticDir),
			TemplateGlob: stringEnv(envTemplateGlob, defaultTemplateGlob),
		},
		Log: LogConfig{
			Level: stringEnv(envLogLevel, "info"),
			Dir:   os.Getenv(envLogDir),
			File:  stringEnv(envLogFile, "keneviz.log"),
		},
		Storage: StorageConfig{
			DBPath: stringEnv(envDBPath, defaultDBPath),
		},
		Admin: AdminConfig{
			BootstrapPassword: stringEnv(envAdminPassword, defaultAdminPassword),
		},
		Session: SessionConfig{
			Secret: secret,
			Store:  stringEnv(envSessionStore, "memory"),
			TTL:    sessionTTL,
			Redis: RedisConfig{
				Addr:     os.Getenv(envRedisAddr),
				Password: os.Getenv(envRedisPassword),
				DB:       redisDB,
				Prefix:   "keneviz:session:",
			},
		},
		Challenge: ChallengeConfig{
			Secret:    os.Getenv(envChallengeSecret),
			SiteKey:   os.Getenv(envChallengeSiteKey),
			VerifyURL: stringEnv(envChallengeURL, defaultChallengeURL),
			Timeout:   defaultCallTimeout,
		},
		Catalog: CatalogConfig{
			Path: os.Getenv(envCatalogPath),
		},
		Upstream: UpstreamConfig{
			Timeout: defaultCallTimeout,
		},
	}

	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return d, nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("read random secret: %v", err))
	}
	return hex.EncodeToString(buf)
}
