// Package transport implements the request pipeline: it attaches the
// current credential to every outbound call and centralizes
// authentication and authorization failure handling.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/DeltaH-ll/library-client/internal/domain/route"
	"github.com/DeltaH-ll/library-client/internal/domain/session"
	"github.com/DeltaH-ll/library-client/internal/metrics"
	"github.com/DeltaH-ll/library-client/internal/notify"
)

// Defaults for the outbound call contract.
const (
	// DefaultAPIBase is the documented default API address.
	DefaultAPIBase = "http://111.231.168.29/api"

	// DefaultTimeout bounds how long a call may remain outstanding
	// before it is treated as failed. Generous because some server-side
	// operations (bulk re-ordering) take a while.
	DefaultTimeout = 30 * time.Second
)

// Environment variables overriding the bases.
const (
	EnvAPIBase   = "LIBRARY_CLIENT_API_BASE"
	EnvAssetBase = "LIBRARY_CLIENT_ASSET_BASE"
)

// The validation-failure status whose server message is left to
// call-site handling instead of the generic notification path.
const statusValidation = http.StatusUnprocessableEntity

// Fallback notification texts, used when the server supplies no message.
const (
	msgSessionExpired = "session expired, please sign in again"
	msgNoPermission   = "insufficient permissions"
	msgGenericFailure = "request failed, please try again later"
)

// Redirector is the navigation surface the pipeline needs for forced
// redirects after authentication failures. Implemented by
// navigator.Navigator.
type Redirector interface {
	CurrentPath() string
	Push(ctx context.Context, path string)
}

// Client issues API calls with the bearer credential attached and
// classifies failure responses. Interception is stateless per call
// except for the shared session state, so concurrent in-flight calls
// that each fail authentication converge to a single logged-out state.
type Client struct {
	apiBase    string
	assetBase  string
	timeout    time.Duration
	httpClient *http.Client

	storage  session.Storage
	sessions *session.Manager
	nav      Redirector
	notifier notify.Notifier

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewClient creates a Client over the given durable storage. The API
// and asset bases default from LIBRARY_CLIENT_* environment variables,
// falling back to the documented defaults. Options override both.
func NewClient(storage session.Storage, opts ...Option) *Client {
	c := &Client{
		apiBase:  envOrDefault(EnvAPIBase, DefaultAPIBase),
		timeout:  DefaultTimeout,
		storage:  storage,
		notifier: notify.NewLogNotifier(nil),
		logger:   slog.Default(),
		tracer:   otel.Tracer("github.com/DeltaH-ll/library-client/internal/transport"),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetBase == "" {
		c.assetBase = envOrDefault(EnvAssetBase, DeriveAssetBase(c.apiBase))
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c
}

// DeriveAssetBase strips a trailing "/api" segment from the API base,
// yielding the address static assets are served from.
func DeriveAssetBase(apiBase string) string {
	trimmed := strings.TrimRight(apiBase, "/")
	if strings.HasSuffix(trimmed, "/api") {
		return strings.TrimSuffix(trimmed, "/api")
	}
	return apiBase
}

// APIBase returns the configured API address.
func (c *Client) APIBase() string { return c.apiBase }

// AssetBase returns the configured asset address.
func (c *Client) AssetBase() string { return c.assetBase }

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPut, path, body, result)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, result)
}

// apiMessage is the error envelope the server answers failures with.
type apiMessage struct {
	Msg   string `json:"msg"`
	Error string `json:"error"`
}

// Do performs one API call. On failure it runs the classification side
// effects (teardown, redirect, notification) and then re-raises the
// failure as a typed error, so call sites retain the ability to react.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	ctx, span := c.tracer.Start(ctx, "library.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	err := c.do(ctx, method, path, body, result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	url := strings.TrimRight(c.apiBase, "/") + "/" + strings.TrimLeft(path, "/")

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	// The credential is read from durable storage, not from the
	// in-memory session, so a freshly reloaded process still sends it.
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response to classify: surface the failure's own
		// description, like any other message-carrying error.
		c.metrics.Request(method, "network")
		c.notifier.Error(err.Error())
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.Request(method, "network")
		c.notifier.Error(err.Error())
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(ctx, method, resp.StatusCode, respBody)
	}

	c.metrics.Request(method, "ok")
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// fail classifies a failure response, runs its side effects, and
// returns the typed error for the caller.
func (c *Client) fail(ctx context.Context, method string, status int, body []byte) error {
	var envelope apiMessage
	_ = json.Unmarshal(body, &envelope)

	// Server message priority: msg over the alternate error field.
	message := envelope.Msg
	if message == "" {
		message = envelope.Error
	}

	switch {
	case status == http.StatusUnauthorized:
		c.metrics.Request(method, "auth")
		c.teardown(ctx)
		if c.nav != nil && c.nav.CurrentPath() != route.PathLogin {
			c.nav.Push(ctx, route.PathLogin)
		}
		resolved := message
		if resolved == "" {
			resolved = msgSessionExpired
		}
		c.notifier.Error(resolved)
		return &AuthError{Status: status, Message: resolved}

	case status == http.StatusForbidden:
		c.metrics.Request(method, "forbidden")
		resolved := message
		if resolved == "" {
			resolved = msgNoPermission
		}
		c.notifier.Error(resolved)
		return &PermissionError{Status: status, Message: resolved}

	case message != "" && status != statusValidation:
		c.metrics.Request(method, "api")
		c.notifier.Error(message)
		return &APIError{Status: status, Message: message}

	default:
		// Validation failures keep their message out of the generic
		// notification path; call sites handle it from the error.
		c.metrics.Request(method, "api")
		c.notifier.Error(msgGenericFailure)
		return &APIError{Status: status, Message: message}
	}
}

// teardown guarantees no orphaned credential survives an
// authentication failure. It prefers the session manager's logout;
// without a manager it removes each durable key directly. Idempotent,
// so concurrent failing calls converge to one logged-out state.
func (c *Client) teardown(ctx context.Context) {
	c.metrics.ForcedLogout()
	if c.sessions != nil {
		c.sessions.Logout(ctx)
		return
	}
	for _, key := range session.Keys {
		if err := c.storage.Delete(ctx, key); err != nil {
			c.logger.Warn("failed to remove session key", "key", key, "error", err)
		}
	}
}

// token reads the credential from durable storage. Absence is not an
// error; the call simply goes out unauthenticated.
func (c *Client) token(ctx context.Context) string {
	token, err := c.storage.Get(ctx, session.KeyToken)
	if err != nil {
		c.logger.Warn("failed to read credential", "error", err)
		return ""
	}
	return token
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
