package cookieless

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Session.KeyPrefix != "" || cfg.Session.ExpireAfter != 0 {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"negative expiry":      func(c *Config) { c.Session.ExpireAfter = -time.Second },
		"prefix whitespace":    func(c *Config) { c.Session.KeyPrefix = "a b" },
		"port range":           func(c *Config) { c.Redis.Port = 70000 },
		"negative db":          func(c *Config) { c.Redis.DB = -1 },
		"negative timeout":     func(c *Config) { c.Redis.Timeout = -1 },
		"protocol":             func(c *Config) { c.Redis.Protocol = 4 },
		"reconnect":            func(c *Config) { c.Redis.ReconnectAttempts = -2 },
		"audit buffer":         func(c *Config) { c.Audit = AuditConfig{Enabled: true, BufferSize: 0} },
		"latency needs metric": func(c *Config) { c.Metrics = MetricsConfig{EnableLatencyHistograms: true} },
	}

	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestRedisOptionsFromFields(t *testing.T) {
	opts, err := RedisConfig{
		Host:              "cache.internal",
		Port:              6380,
		Password:          "secret",
		DB:                2,
		Protocol:          2,
		Timeout:           time.Second,
		ConnectTimeout:    2 * time.Second,
		ReconnectAttempts: -1,
		TCPKeepAlive:      30 * time.Second,
	}.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}

	if opts.Addr != "cache.internal:6380" || opts.Network != "tcp" {
		t.Fatalf("unexpected address %s/%s", opts.Network, opts.Addr)
	}
	if opts.Password != "secret" || opts.DB != 2 || opts.Protocol != 2 {
		t.Fatalf("unexpected auth/db/protocol: %+v", opts)
	}
	if opts.ReadTimeout != time.Second || opts.WriteTimeout != time.Second || opts.DialTimeout != 2*time.Second {
		t.Fatalf("unexpected timeouts: %+v", opts)
	}
	if opts.MaxRetries != -1 {
		t.Fatalf("expected retries disabled, got %d", opts.MaxRetries)
	}
	if opts.Dialer == nil {
		t.Fatal("expected keepalive dialer")
	}
}

func TestRedisOptionsFromURLWithOverrides(t *testing.T) {
	opts, err := RedisConfig{URL: "redis://:pw@example.com:7000/3", DB: 5}.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "example.com:7000" || opts.Password != "pw" || opts.DB != 5 {
		t.Fatalf("unexpected options: addr=%s pw=%s db=%d", opts.Addr, opts.Password, opts.DB)
	}

	if _, err := (RedisConfig{URL: "http://nope"}).Options(); err == nil {
		t.Fatal("expected url parse error")
	}
}

func TestRedisOptionsUnixSocket(t *testing.T) {
	opts, err := RedisConfig{Host: "ignored", Path: "/tmp/redis.sock"}.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Network != "unix" || opts.Addr != "/tmp/redis.sock" {
		t.Fatalf("unexpected unix options %s/%s", opts.Network, opts.Addr)
	}
}

func TestRedisOptionsDefaultAddress(t *testing.T) {
	opts, err := RedisConfig{}.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("expected default address, got %s", opts.Addr)
	}
}
