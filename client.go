package vetcare

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/vetcare/vetcare/api"
	"github.com/vetcare/vetcare/cart"
)

// Client defines a public type used by vetcare APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	config Config

	// Auth owns the session lifecycle: login, registration, restore, logout.
	Auth *Auth
	// Router resolves paths, enforces guards, and loads views.
	Router *Router
	// Cart is the client-local shopping cart.
	Cart *cart.Manager
	// API is set when the default REST directory backs the client. A custom
	// UserDirectory leaves it nil.
	API *api.Client

	audit   *auditDispatcher
	metrics *Metrics
	closed  atomic.Bool
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.closed.Store(true)
	if c.audit != nil {
		c.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// Checkout describes the checkout operation and its observable behavior.
//
// Checkout may return an error when input validation, dependency calls, or security checks fail.
// Checkout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Checkout(ctx context.Context) (cart.Summary, error) {
	if c.closed.Load() {
		return cart.Summary{}, ErrClientClosed
	}
	summary, err := c.Cart.Checkout(ctx)
	if err != nil {
		return summary, err
	}
	if c.metrics != nil {
		c.metrics.Inc(MetricCartCheckout)
	}
	if c.audit != nil {
		email := ""
		if s := c.Auth.CurrentUser(); s != nil {
			email = s.Email
		}
		c.audit.Emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: AuditCheckout,
			Email:     email,
			Success:   true,
			Metadata: map[string]string{
				"items": strconv.Itoa(summary.Count),
				"total": strconv.FormatFloat(summary.Total, 'f', 2, 64),
			},
		})
	}
	return summary, nil
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() Config {
	return cloneConfig(c.config)
}
