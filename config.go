package cookieless

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config is the construction-time configuration of a [Store].
//
// The store's session policy (deferred persistence, no skip, no renewal, no
// cookies) is deliberately absent: see [Policy].
type Config struct {
	Session SessionConfig
	Redis   RedisConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig holds the pass-through session options that still take effect.
type SessionConfig struct {
	// KeyPrefix namespaces backend keys as "prefix:id". Empty stores entries
	// under the bare identifier.
	KeyPrefix string
	// ExpireAfter is the default entry TTL used by the middleware. Zero means
	// entries never expire.
	ExpireAfter time.Duration
}

/*
====================================
REDIS CONFIG
====================================
*/

// RedisConfig is the allow-listed set of Redis connection options. Only these
// fields reach the client; everything else about it is fixed by go-redis
// defaults.
type RedisConfig struct {
	URL               string        // redis:// or rediss:// URL; other fields override it
	Host              string        // default "localhost"
	Port              int           // default 6379
	Path              string        // unix socket path; takes precedence over Host/Port
	Timeout           time.Duration // read and write timeout
	ConnectTimeout    time.Duration
	Password          string
	DB                int
	Protocol          int // RESP version, 2 or 3; 0 keeps the client default
	TCPKeepAlive      time.Duration
	ReconnectAttempts int // maximum retries; -1 disables retries
}

// Options maps the allow-listed fields onto go-redis client options.
func (c RedisConfig) Options() (*redis.Options, error) {
	opts := &redis.Options{}
	if c.URL != "" {
		parsed, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	}

	switch {
	case c.Path != "":
		opts.Network = "unix"
		opts.Addr = c.Path
	case c.Host != "" || c.Port != 0:
		host := c.Host
		if host == "" {
			host = "localhost"
		}
		port := c.Port
		if port == 0 {
			port = 6379
		}
		opts.Network = "tcp"
		opts.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	case opts.Addr == "":
		opts.Addr = "localhost:6379"
	}

	if c.Password != "" {
		opts.Password = c.Password
	}
	if c.DB != 0 {
		opts.DB = c.DB
	}
	if c.Protocol != 0 {
		opts.Protocol = c.Protocol
	}
	if c.Timeout > 0 {
		opts.ReadTimeout = c.Timeout
		opts.WriteTimeout = c.Timeout
	}
	if c.ConnectTimeout > 0 {
		opts.DialTimeout = c.ConnectTimeout
	}
	if c.ReconnectAttempts != 0 {
		opts.MaxRetries = c.ReconnectAttempts
	}
	if c.TCPKeepAlive > 0 {
		opts.Dialer = keepAliveDialer(opts.DialTimeout, c.TCPKeepAlive, opts.TLSConfig)
	}

	return opts, nil
}

func keepAliveDialer(timeout, keepAlive time.Duration, tlsConfig *tls.Config) func(context.Context, string, string) (net.Conn, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	netDialer := &net.Dialer{Timeout: timeout, KeepAlive: keepAlive}
	if tlsConfig == nil {
		return netDialer.DialContext
	}
	tlsDialer := &tls.Dialer{NetDialer: netDialer, Config: tlsConfig}
	return tlsDialer.DialContext
}

/*
====================================
OBSERVABILITY CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process counters and histograms.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the configuration used by [New].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			KeyPrefix:   "",
			ExpireAfter: 0,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first invalid field in c.
func (c *Config) Validate() error {
	// Session
	if c.Session.ExpireAfter < 0 {
		return errors.New("Session.ExpireAfter must be >= 0")
	}
	if strings.ContainsAny(c.Session.KeyPrefix, " \t\r\n") {
		return errors.New("Session.KeyPrefix must not contain whitespace")
	}

	// Redis
	if c.Redis.Port < 0 || c.Redis.Port > 65535 {
		return errors.New("Redis.Port must be within 0..65535")
	}
	if c.Redis.DB < 0 {
		return errors.New("Redis.DB must be >= 0")
	}
	if c.Redis.Timeout < 0 || c.Redis.ConnectTimeout < 0 || c.Redis.TCPKeepAlive < 0 {
		return errors.New("Redis timeouts must be >= 0")
	}
	if c.Redis.Protocol != 0 && c.Redis.Protocol != 2 && c.Redis.Protocol != 3 {
		return errors.New("Redis.Protocol must be 0, 2, or 3")
	}
	if c.Redis.ReconnectAttempts < -1 {
		return errors.New("Redis.ReconnectAttempts must be >= -1")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be > 0 when audit is enabled")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics.EnableLatencyHistograms requires Metrics.Enabled")
	}

	return nil
}
