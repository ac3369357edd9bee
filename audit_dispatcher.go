package vetcare

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metadata keys that must never reach an audit sink. Matched as
// substrings after lowercasing, so "Password" and "confirmPassword"
// are both caught.
var sensitiveMetadataKeys = []string{"password", "secret", "token"}

// auditDispatcher fans storefront audit events out to the configured
// sink on a single background goroutine so Emit never blocks the
// login or navigation path. Events carrying credential-like metadata
// keys are scrubbed before they are queued.
type auditDispatcher struct {
	cfg       AuditConfig
	sink      AuditSink
	queue     chan AuditEvent
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &auditDispatcher{
		cfg:   cfg,
		sink:  sink,
		queue: make(chan AuditEvent, cfg.BufferSize),
		done:  make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *auditDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.done:
			d.drain()
			return
		}
	}
}

// drain delivers every event still buffered at close time. New Emit
// calls are already refused by then, so the queue only shrinks.
func (d *auditDispatcher) drain() {
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

// Emit queues an audit event for asynchronous delivery. A zero
// Timestamp is backfilled and credential-like metadata keys are
// dropped before the event is enqueued.
//
// With DropIfFull set, a full buffer discards the event and counts it
// in Dropped; otherwise Emit waits until the buffer has room, the
// context is cancelled, or the dispatcher closes.
func (d *auditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Metadata = scrubMetadata(event.Metadata)

	if d.cfg.DropIfFull {
		select {
		case d.queue <- event:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
	case <-ctx.Done():
	case <-d.done:
	}
}

// scrubMetadata returns metadata with credential-like keys removed.
// The input map is not modified; callers may still hold it.
func scrubMetadata(md map[string]string) map[string]string {
	if len(md) == 0 {
		return md
	}
	clean := make(map[string]string, len(md))
	for k, v := range md {
		lower := strings.ToLower(k)
		redact := false
		for _, s := range sensitiveMetadataKeys {
			if strings.Contains(lower, s) {
				redact = true
				break
			}
		}
		if !redact {
			clean[k] = v
		}
	}
	return clean
}

// Close stops the dispatcher after draining buffered events. It is
// idempotent and safe to call from multiple goroutines.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped reports how many events were discarded because the buffer
// was full while DropIfFull was set.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
