// Package config builds the edge gateway configuration from environment
// variables so main stays lean.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures the full edge gateway configuration.
type Server struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// Token verification inputs. The secret must match the auth backend; an
	// empty issuer disables issuer verification.
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `env:"JWT_ISSUER"`
	VerifyTimeout time.Duration `env:"VERIFY_TIMEOUT" envDefault:"2s"`

	// Locale routing.
	SupportedLocales []string `env:"SUPPORTED_LOCALES" envDefault:"ro,en,fr,nl"`
	DefaultLocale    string   `env:"DEFAULT_LOCALE" envDefault:"ro"`

	// Upstreams: the rendering app behind the gate and the REST backend
	// behind the /api proxy.
	UpstreamURL string `env:"UPSTREAM_URL" envDefault:"http://localhost:3000"`
	BackendURL  string `env:"BACKEND_URL" envDefault:"http://localhost:8000"`

	// Optional shared revocation list.
	RedisAddr string `env:"REDIS_ADDR"`

	// Optional security audit sinks.
	DatabaseURL     string   `env:"DATABASE_URL"`
	KafkaBrokers    []string `env:"KAFKA_BROKERS"`
	KafkaAuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"acont.edge.security"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// FromEnv parses the configuration from the process environment.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
