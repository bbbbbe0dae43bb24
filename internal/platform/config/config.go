package config

import (
	"time"
)

// Config is the process-wide configuration, constructed once at startup and
// passed by injection. Nothing in this package mutates it afterwards.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	Admin     AdminConfig
	Session   SessionConfig
	Challenge ChallengeConfig
	Catalog   CatalogConfig
	Upstream  UpstreamConfig
}

type ServerConfig struct {
	Port      int
	StaticDir string
	// TemplateGlob locates the HTML templates handed to the renderer.
	TemplateGlob string
}

type LogConfig struct {
	Level string
	Dir   string
	File  string
}

type StorageConfig struct {
	// DBPath is the sqlite database file backing admins, keys and audit events.
	DBPath string
}

type AdminConfig struct {
	// BootstrapPassword seeds the initial admin account when the table is empty.
	BootstrapPassword string
}

type SessionConfig struct {
	// Secret signs the session cookie token.
	Secret string
	// Store selects the session backend: memory or redis.
	Store string
	TTL   time.Duration
	Redis RedisConfig
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

type ChallengeConfig struct {
	// Secret is the shared secret sent to the verification service.
	Secret string
	// SiteKey is the public key embedded in the challenge page.
	SiteKey string
	// VerifyURL is the external verification endpoint.
	VerifyURL string
	Timeout   time.Duration
}

type CatalogConfig struct {
	// Path optionally points at a YAML file overriding the built-in catalog.
	Path string
}

type UpstreamConfig struct {
	Timeout time.Duration
}
