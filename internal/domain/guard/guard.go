// Package guard implements the navigation guard: the decision function
// run before every route transition.
package guard

import (
	"context"
	"log/slog"

	"github.com/DeltaH-ll/library-client/internal/domain/route"
	"github.com/DeltaH-ll/library-client/internal/domain/session"
	"github.com/DeltaH-ll/library-client/internal/metrics"
)

// Decision is the guard's verdict for one transition attempt. An empty
// RedirectTo allows the transition unmodified. The guard has no error
// channel: every non-allow outcome is a redirect.
type Decision struct {
	RedirectTo string
}

// Allowed reports whether the transition proceeds unmodified.
func (d Decision) Allowed() bool {
	return d.RedirectTo == ""
}

// Allow is the decision that lets the transition proceed.
func Allow() Decision {
	return Decision{}
}

// Redirect is the decision that sends the transition to path instead.
func Redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// Guard decides, for every attempted transition, whether to allow it
// or redirect elsewhere. Its only side effect is reconstituting the
// session from durable storage when in-memory state is empty but the
// target requires authentication (a page reload clears memory while
// durable storage may still hold a valid session).
type Guard struct {
	sessions *session.Manager
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a Guard over the session manager. metrics may be nil.
func New(sessions *session.Manager, logger *slog.Logger, m *metrics.Metrics) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		sessions: sessions,
		logger:   logger,
		metrics:  m,
	}
}

// Evaluate decides the outcome for a transition to target. matched is
// false when no route definition matches the requested path; unmatched
// paths always redirect to the login route.
//
// Redirect targets never fail the check they were redirected for: the
// login route is public and only reachable here when unauthenticated,
// and the per-role landing routes match the session's own role.
func (g *Guard) Evaluate(ctx context.Context, target route.Route, matched bool) Decision {
	if !matched {
		return g.redirect(target.Path, route.PathLogin, "unmatched path")
	}

	snap := g.sessions.Current()
	if !snap.Authenticated() && target.Meta.RequiresAuth {
		g.sessions.Load(ctx)
		g.metrics.SessionLoad()
		snap = g.sessions.Current()
	}

	// Public pages: authenticated users are bounced to their own
	// role's landing route, everyone else passes through.
	if target.Meta.Public {
		if snap.Authenticated() {
			return g.redirect(target.Path, route.LandingPath(snap.Role), "already authenticated")
		}
		return g.allow()
	}

	if target.Meta.RequiresAuth && !snap.Authenticated() {
		return g.redirect(target.Path, route.PathLogin, "no credential")
	}

	// Role mismatch lands the user on their own role's home page, not
	// an error page. Logged at debug only; intentional UX choice, not
	// a security control.
	if target.Meta.Role != "" && target.Meta.Role != snap.Role {
		return g.redirect(target.Path, route.LandingPath(snap.Role), "role mismatch")
	}

	return g.allow()
}

func (g *Guard) allow() Decision {
	g.metrics.GuardDecision("allow")
	return Allow()
}

func (g *Guard) redirect(from, to, reason string) Decision {
	g.metrics.GuardDecision("redirect")
	g.logger.Debug("navigation redirected",
		"from", from,
		"to", to,
		"reason", reason,
	)
	return Redirect(to)
}
