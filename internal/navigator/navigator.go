// Package navigator owns the current location and runs every route
// transition through the navigation guard.
package navigator

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/DeltaH-ll/library-client/internal/domain/guard"
	"github.com/DeltaH-ll/library-client/internal/domain/route"
)

// maxRedirects bounds redirect chains. The guard's redirect targets
// are constructed to never re-fail the check that produced them, so
// hitting this bound indicates a broken route table.
const maxRedirects = 10

// ErrRedirectLoop is returned when a transition keeps redirecting
// without settling.
var ErrRedirectLoop = errors.New("navigation redirect loop")

// Navigator resolves transitions: table redirects first (a parent
// route forwarding to its default child), then the guard, repeating
// until the path settles.
type Navigator struct {
	table *route.Table
	guard *guard.Guard

	mu      sync.Mutex
	current string

	logger *slog.Logger
}

// New creates a Navigator positioned at the root path.
func New(table *route.Table, g *guard.Guard, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{
		table:   table,
		guard:   g,
		current: "/",
		logger:  logger,
	}
}

// CurrentPath returns the path of the last completed transition.
func (n *Navigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate attempts a transition to path and returns the path the
// transition settled on after any redirects.
func (n *Navigator) Navigate(ctx context.Context, path string) (string, error) {
	path = route.Normalize(path)

	for hop := 0; hop < maxRedirects; hop++ {
		target, matched := n.table.Match(path)
		if matched && target.Redirect != "" {
			path = target.Redirect
			continue
		}
		if !matched {
			target.Path = path
		}

		decision := n.guard.Evaluate(ctx, target, matched)
		if decision.Allowed() {
			n.mu.Lock()
			n.current = path
			n.mu.Unlock()
			n.logger.Debug("navigated", "path", path)
			return path, nil
		}
		path = decision.RedirectTo
	}

	return "", ErrRedirectLoop
}

// Push is Navigate for callers without a result channel, such as the
// request pipeline's forced redirect to the login route. Failures are
// logged, never surfaced.
func (n *Navigator) Push(ctx context.Context, path string) {
	if _, err := n.Navigate(ctx, path); err != nil {
		n.logger.Error("forced navigation failed", "path", path, "error", err)
	}
}
