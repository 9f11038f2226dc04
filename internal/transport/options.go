package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DeltaH-ll/library-client/internal/domain/session"
	"github.com/DeltaH-ll/library-client/internal/metrics"
	"github.com/DeltaH-ll/library-client/internal/notify"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithAPIBase sets the API address.
// If not set, defaults to the LIBRARY_CLIENT_API_BASE environment
// variable, then to DefaultAPIBase.
func WithAPIBase(base string) Option {
	return func(c *Client) {
		c.apiBase = base
	}
}

// WithAssetBase sets the asset address.
// If not set, defaults to the LIBRARY_CLIENT_ASSET_BASE environment
// variable, then to the API base with a trailing "/api" stripped.
func WithAssetBase(base string) Option {
	return func(c *Client) {
		c.assetBase = base
	}
}

// WithTimeout sets the upper bound on how long a call may remain
// outstanding. If not set, defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom http.Client. Useful for testing and
// custom transport configurations.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSessionManager sets the session manager used for forced
// teardown. Without one, teardown removes each durable key directly.
func WithSessionManager(m *session.Manager) Option {
	return func(c *Client) {
		c.sessions = m
	}
}

// WithRedirector sets the navigation surface used to redirect to the
// login route after authentication failures. Without one, no redirect
// is issued.
func WithRedirector(nav Redirector) Option {
	return func(c *Client) {
		c.nav = nav
	}
}

// WithNotifier sets the notifier failure messages are surfaced through.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics sink. A nil sink records nothing.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}
