// Package feed streams registry events to a socket.io server so that
// dashboards and other observers can follow enrollment changes live. The
// feed is outbound only; nothing received on the socket reaches the registry.
package feed

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEvent is the socket.io event name used when Config.Event is empty.
const DefaultEvent = "roster"

const defaultConnectTimeout = 10 * time.Second

// Config describes the socket.io endpoint to publish to.
type Config struct {
	URL                string `validate:"omitempty,url"`
	Namespace          string `validate:"omitempty,startswith=/"`
	Event              string `validate:"omitempty,max=64"`
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration `validate:"gte=0"`
}

// Publisher emits registry events over a socket.io connection. It implements
// registry.Notifier.
type Publisher struct {
	event     string
	emit      func(event string, payload map[string]any)
	connected func() bool
	close     func()
	now       func() time.Time
	newID     func() string
}

// Connect dials the socket.io server described by cfg and waits until the
// connection is established, fails, or the timeout elapses.
func Connect(ctx context.Context, cfg Config) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("component", "feed", "url", cfg.URL)
	logger.Info("Connecting to event feed...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("feed URL %q must include a scheme and host", cfg.URL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespaceOrRoot(cfg.Namespace), opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Event feed connected", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}

	return newPublisher(
		cfg.Event,
		func(event string, payload map[string]any) { io.Emit(event, payload) },
		io.Connected,
		func() { io.Disconnect() },
	), nil
}

func newPublisher(event string, emit func(string, map[string]any), connected func() bool, closeFn func()) *Publisher {
	if event == "" {
		event = DefaultEvent
	}
	return &Publisher{
		event:     event,
		emit:      emit,
		connected: connected,
		close:     closeFn,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Notify implements registry.Notifier. Events are dropped with a warning
// while the socket is disconnected.
func (p *Publisher) Notify(ctx context.Context, e registry.Event) {
	logger := ctxlog.FromContext(ctx)
	if !p.connected() {
		logger.Warn("Event feed disconnected, dropping event.", "kind", e.Kind)
		return
	}
	payload := p.payload(e)
	p.emit(p.event, payload)
	logger.Debug("Event published.", "event", p.event, "id", payload["id"], "kind", e.Kind)
}

// Close disconnects the socket.
func (p *Publisher) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}

func (p *Publisher) payload(e registry.Event) map[string]any {
	return map[string]any{
		"id":          p.newID(),
		"at":          p.now().UTC().Format(time.RFC3339),
		"kind":        string(e.Kind),
		"student_id":  e.StudentID,
		"course_code": e.CourseCode,
		"enrolled":    e.Enrolled,
		"capacity":    e.Capacity,
	}
}

func namespaceOrRoot(ns string) string {
	if ns == "" {
		return "/"
	}
	return ns
}
