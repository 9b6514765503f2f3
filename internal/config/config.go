package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile string // path to a canonical-seeds YAML file (optional, empty = built-in list)

	// Health monitoring
	ProbeInterval          time.Duration // interval between full health cycles (default: 30s)
	ProbeTimeout           time.Duration // per-probe timeout when a record carries none (default: 5s)
	ProbeRetries           int           // retries after the first failed attempt (default: 2)
	ProbeConcurrency       int           // max concurrent probes per cycle (default: 16)
	HealthTTL              time.Duration // TTL on health snapshots (default: 5m)
	CanonicalSweepInterval time.Duration // interval between canonical seed sweeps (default: 10m)
	ReconcileInterval      time.Duration // interval between index reconciliation sweeps (default: 1h)

	// External authorities
	IdentityURL      string        // ex: https://id.chitty.cc
	SchemaURL        string        // ex: https://schema.chitty.cc
	CanonicalURL     string        // ex: https://canon.chitty.cc
	TrustURL         string        // ex: https://trust.chitty.cc
	AuthorityTimeout time.Duration // per-call timeout for authority requests (default: 5s)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("REGISTRY_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("REGISTRY_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("REGISTRY_LOG_LEVEL", "info"),
		PrettyLog: mustBool("REGISTRY_PRETTY_LOG", false),

		// Canonical seeds
		SeedFile: getenv("REGISTRY_SEED_FILE", ""), // Optional, empty = built-in seed list

		// Health monitoring
		ProbeInterval:          mustDuration("REGISTRY_PROBE_INTERVAL", 30*time.Second),
		ProbeTimeout:           mustDuration("REGISTRY_PROBE_TIMEOUT", 5*time.Second),
		ProbeRetries:           getenvInt("REGISTRY_PROBE_RETRIES", 2),
		ProbeConcurrency:       getenvInt("REGISTRY_PROBE_CONCURRENCY", 16),
		HealthTTL:              mustDuration("REGISTRY_HEALTH_TTL", 5*time.Minute),
		CanonicalSweepInterval: mustDuration("REGISTRY_CANONICAL_SWEEP_INTERVAL", 10*time.Minute),
		ReconcileInterval:      mustDuration("REGISTRY_RECONCILE_INTERVAL", time.Hour),

		// External authorities
		IdentityURL:      getenv("CHITTYID_URL", "https://id.chitty.cc"),
		SchemaURL:        getenv("CHITTYSCHEMA_URL", "https://schema.chitty.cc"),
		CanonicalURL:     getenv("CHITTYCANON_URL", "https://canon.chitty.cc"),
		TrustURL:         getenv("CHITTYTRUST_URL", "https://trust.chitty.cc"),
		AuthorityTimeout: mustDuration("REGISTRY_AUTHORITY_TIMEOUT", 5*time.Second),

		// Redis settings
		RedisAddr:             requireEnv("REGISTRY_REDIS_ADDR"),
		RedisUser:             getenv("REGISTRY_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("REGISTRY_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("REGISTRY_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("REGISTRY_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("REGISTRY_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("REGISTRY_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("REGISTRY_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: REGISTRY_REDIS_PASSWORD is required when REGISTRY_REDIS_PASSWORD_REQUIRED=true")
	}

	if cfg.ProbeRetries < 0 {
		panic("❌ FATAL: REGISTRY_PROBE_RETRIES must be >= 0")
	}
	if cfg.ProbeConcurrency < 1 {
		panic("❌ FATAL: REGISTRY_PROBE_CONCURRENCY must be >= 1")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
