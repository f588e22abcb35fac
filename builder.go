package cookieless

import (
	"io"

	"github.com/MrEthical07/cookieless/internal/audit"
	"github.com/MrEthical07/cookieless/session"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Store]. Configure it during initialization and call
// Build once; a Builder cannot be reused.
type Builder struct {
	config Config

	redis    redis.UniversalClient
	redisSet bool

	backend    Backend
	backendSet bool

	extractor    Extractor
	extractorSet bool

	resolver    ErrorResolver
	resolverSet bool

	auditSink AuditSink
	random    io.Reader

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies an existing Redis client. The caller keeps ownership of
// it: [Store.Close] does not close a client passed here.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	b.redisSet = true
	return b
}

// WithBackend supplies a custom key-value backend. It takes precedence over
// WithRedis, and keys reach it without the configured prefix.
func (b *Builder) WithBackend(backend Backend) *Builder {
	b.backend = backend
	b.backendSet = true
	return b
}

// WithExtractor sets the identifier extraction strategy. Passing nil makes
// Build fail with [ErrNilExtractor].
func (b *Builder) WithExtractor(e Extractor) *Builder {
	b.extractor = e
	b.extractorSet = true
	return b
}

// WithErrorResolver sets the failure observer. Passing nil makes Build fail
// with [ErrNilErrorResolver].
func (b *Builder) WithErrorResolver(res ErrorResolver) *Builder {
	b.resolver = res
	b.resolverSet = true
	return b
}

// WithAuditSink sets the audit destination. Audit must also be enabled in
// Config.Audit.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithRandom sets the entropy source for identifiers. A read failure falls
// back to crypto/rand.
func (b *Builder) WithRandom(r io.Reader) *Builder {
	b.random = r
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and strategies and returns the store.
// Misconfiguration is always reported here, never at request time. Build does
// not dial Redis; connections are opened lazily by the client.
func (b *Builder) Build() (*Store, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- STRATEGIES --------
	extractor := DefaultExtractor
	if b.extractorSet {
		if isNilStrategy(b.extractor) {
			return nil, ErrNilExtractor
		}
		extractor = b.extractor
	}

	var resolver ErrorResolver = NoOpResolver{}
	if b.resolverSet {
		if isNilStrategy(b.resolver) {
			return nil, ErrNilErrorResolver
		}
		resolver = b.resolver
	}

	// -------- BACKEND --------
	var (
		backend Backend
		owned   io.Closer
	)
	switch {
	case b.backendSet:
		if isNilStrategy(b.backend) {
			return nil, ErrNilBackend
		}
		backend = b.backend
	case b.redisSet:
		if isNilStrategy(b.redis) {
			return nil, ErrNilBackend
		}
		backend = session.NewStore(b.redis, cfg.Session.KeyPrefix)
	default:
		opts, err := cfg.Redis.Options()
		if err != nil {
			return nil, err
		}
		client := redis.NewClient(opts)
		backend = session.NewStore(client, cfg.Session.KeyPrefix)
		owned = client
	}

	store := &Store{
		config:    cfg,
		backend:   backend,
		owned:     owned,
		extractor: extractor,
		resolver:  resolver,
		random:    b.random,
		metrics:   NewMetrics(cfg.Metrics),
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
	}

	b.built = true

	return store, nil
}

func cloneConfig(cfg Config) Config {
	// Config holds only value fields today; copying the struct is a deep copy.
	out := cfg
	return out
}
