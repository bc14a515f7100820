// Package session provides the process-wide authentication session
// controller: it tracks authentication status, renews the token ahead of
// expiry, and reconciles its view of the token with out-of-band refreshes.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spotkit/spotkit/pkg/spotify"
)

// DefaultReconcileInterval is how often the controller re-reads token state
// from the token authority. Requests refreshed out-of-band by the API
// mediator are picked up here.
const DefaultReconcileInterval = 60 * time.Second

// State is the session view exposed to the rest of the application.
type State struct {
	Authenticated bool
	Loading       bool
	Err           string // user-facing error message, empty when healthy
	TokenInfo     spotify.TokenInfo
}

// Config holds controller configuration
type Config struct {
	ReconcileInterval time.Duration // defaults to DefaultReconcileInterval
}

// Controller owns the session state. All mutations go through the token
// authority first; the controller's state is always derived from a fresh
// TokenInfo read, so concurrent operations converge on the authority's view.
type Controller struct {
	auth     *spotify.AuthService
	interval time.Duration
	logger   zerolog.Logger

	mu    sync.RWMutex
	state State

	// Renewal timer bookkeeping. timerGen invalidates a scheduled renewal
	// when a newer schedule, a clear, or teardown supersedes it.
	timerMu  sync.Mutex
	timer    *time.Timer
	timerGen uint64
}

// New creates a session controller around the given token authority.
func New(auth *spotify.AuthService, cfg Config, logger zerolog.Logger) *Controller {
	interval := cfg.ReconcileInterval
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}

	return &Controller{
		auth:     auth,
		interval: interval,
		logger:   logger.With().Str("component", "session").Logger(),
		state:    State{Loading: true},
	}
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Run authenticates immediately, then keeps the session fresh until the
// context is cancelled: a proactive renewal fires ahead of token expiry and
// a periodic reconciliation re-reads token state. Blocks until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info().
		Dur("reconcile_interval", c.interval).
		Msg("Starting session controller")

	c.Authenticate(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer c.cancelRenewal()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Session controller stopped")
			return ctx.Err()
		case <-ticker.C:
			c.reconcile(ctx)
		}
	}
}

// Authenticate ensures a valid token exists and updates the session state.
// It never returns an error: failures are normalized into State.Err.
func (c *Controller) Authenticate(ctx context.Context) {
	if !c.auth.HasCredentials() {
		c.logger.Warn().Msg("Spotify credentials not configured")
		c.setState(State{
			Err: "Spotify client ID and client secret are not configured",
		})
		return
	}

	c.setLoading(true)

	_, err := c.auth.GetValidToken(ctx)
	c.finish(ctx, err, "authentication failed")
}

// Refresh forces a new token and updates the session state. Never returns
// an error; failures are normalized into State.Err.
func (c *Controller) Refresh(ctx context.Context) {
	c.setLoading(true)

	_, err := c.auth.Refresh(ctx)
	c.finish(ctx, err, "token renewal failed")
}

// ClearAuth discards the token and resets the session to a signed-out state.
func (c *Controller) ClearAuth(ctx context.Context) {
	c.cancelRenewal()
	c.auth.Clear(ctx)
	c.setState(State{})
	c.logger.Info().Msg("Session cleared")
}

// finish derives the post-operation state from the authority and schedules
// the next proactive renewal. Loading is always cleared, even on failure.
func (c *Controller) finish(ctx context.Context, err error, what string) {
	if err != nil {
		c.logger.Warn().Err(err).Msg("Session operation failed")
		c.setState(State{Err: userMessage(err, what)})
		return
	}

	info := c.auth.TokenInfo(ctx)
	c.setState(State{
		Authenticated: info.HasToken,
		TokenInfo:     info,
	})

	if info.HasToken {
		c.scheduleRenewal(ctx, info)
	}
}

// reconcile re-reads token state without triggering any fetch. This is
// deliberately read-only so it can never race the renewal timer into
// duplicate token fetches.
func (c *Controller) reconcile(ctx context.Context) {
	info := c.auth.TokenInfo(ctx)

	c.mu.Lock()
	changed := c.state.Authenticated != info.HasToken ||
		c.state.TokenInfo.ExpiresAt != info.ExpiresAt
	c.state.Authenticated = info.HasToken
	c.state.TokenInfo = info
	c.mu.Unlock()

	if changed {
		c.logger.Debug().
			Bool("has_token", info.HasToken).
			Int64("expires_in", info.ExpiresIn).
			Msg("Reconciled token state")
	}

	if info.HasToken {
		c.scheduleRenewal(ctx, info)
	} else {
		c.cancelRenewal()
	}
}

// scheduleRenewal arranges a Refresh at expiry minus the freshness margin.
// A non-positive delay triggers renewal immediately. Superseded schedules
// are invalidated via the generation counter.
func (c *Controller) scheduleRenewal(ctx context.Context, info spotify.TokenInfo) {
	delay := renewalDelay(info)

	c.timerMu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
	gen := c.timerGen
	c.timerMu.Unlock()

	fire := func() {
		if !c.renewalCurrent(gen) {
			return
		}
		if ctx.Err() != nil {
			return
		}
		c.logger.Info().Msg("Proactively renewing token before expiry")
		c.Refresh(ctx)
	}

	if delay <= 0 {
		go fire()
		return
	}

	c.timerMu.Lock()
	if gen == c.timerGen {
		c.timer = time.AfterFunc(delay, fire)
		c.logger.Debug().Dur("delay", delay).Msg("Scheduled token renewal")
	}
	c.timerMu.Unlock()
}

// cancelRenewal stops any pending renewal and invalidates in-flight fires.
func (c *Controller) cancelRenewal() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}

func (c *Controller) renewalCurrent(gen uint64) bool {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	return gen == c.timerGen
}

func (c *Controller) setLoading(loading bool) {
	c.mu.Lock()
	c.state.Loading = loading
	if loading {
		c.state.Err = ""
	}
	c.mu.Unlock()
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// renewalDelay computes how long to wait before proactively renewing:
// expiry minus the freshness margin, floored at zero.
func renewalDelay(info spotify.TokenInfo) time.Duration {
	lead := int64(spotify.FreshnessMargin / time.Second)
	seconds := info.ExpiresIn - lead
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// userMessage maps authority errors to the strings shown in State.Err.
func userMessage(err error, what string) string {
	switch {
	case errors.Is(err, spotify.ErrMissingCredentials):
		return "Spotify client ID and client secret are not configured"
	case errors.Is(err, spotify.ErrAuthenticationFailed):
		return "authentication with Spotify failed"
	default:
		return what + ": " + err.Error()
	}
}
