package vetcare

import (
	"errors"

	"github.com/vetcare/vetcare/api"
	"github.com/vetcare/vetcare/cart"
	"github.com/vetcare/vetcare/internal/rate"
	"github.com/vetcare/vetcare/session"
	"github.com/vetcare/vetcare/storage"
)

// Builder defines a public type used by vetcare APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	store    storage.Store
	users    UserDirectory
	views    ViewSource
	history  History
	notifier Notifier

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage describes the withstorage operation and its observable behavior.
//
// WithStorage may return an error when input validation, dependency calls, or security checks fail.
// WithStorage does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStorage(store storage.Store) *Builder {
	b.store = store
	return b
}

// WithUsers describes the withusers operation and its observable behavior.
//
// WithUsers may return an error when input validation, dependency calls, or security checks fail.
// WithUsers does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithUsers(users UserDirectory) *Builder {
	b.users = users
	return b
}

// WithViewSource describes the withviewsource operation and its observable behavior.
//
// WithViewSource may return an error when input validation, dependency calls, or security checks fail.
// WithViewSource does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithViewSource(views ViewSource) *Builder {
	b.views = views
	return b
}

// WithHistory describes the withhistory operation and its observable behavior.
//
// WithHistory may return an error when input validation, dependency calls, or security checks fail.
// WithHistory does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHistory(history History) *Builder {
	b.history = history
	return b
}

// WithNotifier describes the withnotifier operation and its observable behavior.
//
// WithNotifier may return an error when input validation, dependency calls, or security checks fail.
// WithNotifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNotifier(notifier Notifier) *Builder {
	b.notifier = notifier
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, errors.New("storage backend required")
	}

	users := b.users
	if users == nil {
		users = api.NewClient(cfg.API.Endpoint, cfg.API.Timeout)
	}

	views := b.views
	if views == nil {
		views = NewHTTPViewSource(cfg.Router.ViewBaseURL, cfg.API.Timeout)
	}

	history := b.history
	if history == nil {
		history = NoOpHistory{}
	}

	notifier := b.notifier
	if notifier == nil {
		notifier = NoOpNotifier{}
	}

	// -------- SESSION STORE --------
	codec, err := session.NewCodec(cfg.Session.Encoding, cloneBytes(cfg.Session.SigningKey))
	if err != nil {
		return nil, err
	}
	sessions := session.NewStore(b.store, codec)

	// -------- LOGIN LIMITER --------
	limiter := rate.New(b.store, rate.Config{
		Enabled:     cfg.Security.EnableLoginThrottle,
		MaxAttempts: cfg.Security.MaxLoginAttempts,
		Cooldown:    cfg.Security.LoginCooldown,
	})

	audit := newAuditDispatcher(cfg.Audit, b.auditSink)
	metrics := NewMetrics(cfg.Metrics)

	auth := newAuth(cfg, users, sessions, limiter, audit, metrics)
	router := newRouter(cfg, auth, views, history, notifier, audit, metrics)

	basket, err := cart.NewManager(b.store, cart.Config{
		StorageKey:       cfg.Cart.StorageKey,
		ShippingFlatRate: cfg.Cart.ShippingFlatRate,
	})
	if err != nil {
		return nil, err
	}

	client := &Client{
		config:  cfg,
		Auth:    auth,
		Router:  router,
		Cart:    basket,
		audit:   audit,
		metrics: metrics,
	}

	if apiClient, ok := users.(*api.Client); ok {
		client.API = apiClient
	}

	b.built = true

	return client, nil
}
