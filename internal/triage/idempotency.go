package triage

import (
	"context"
	"strings"
	"time"

	"github.com/ziadkadry99/triagebot/internal/config"
)

// Guard decides whether a ticket was already handled by a previous
// webhook delivery. Both policies are best-effort at-most-one: the
// read-then-write sequence is not transactional, so two concurrent
// deliveries for the same ticket can still both classify.
type Guard interface {
	// AlreadyHandled reports whether to skip the ticket, with a
	// human-readable reason when skipping.
	AlreadyHandled(ctx context.Context, ticketID int64) (bool, string)
}

// NewGuard builds the guard for the configured policy.
func NewGuard(api TicketAPI, cfg config.IdempotencyConfig) Guard {
	if cfg.Policy == config.PolicyAnyInternal {
		return &anyInternalGuard{api: api}
	}
	window := time.Duration(cfg.WindowMinutes) * time.Minute
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &recencyGuard{api: api, window: window, now: time.Now}
}

// recencyGuard skips a ticket when a recent internal note containing a
// classification payload exists within the trailing window.
type recencyGuard struct {
	api    TicketAPI
	window time.Duration
	now    func() time.Time
}

func (g *recencyGuard) AlreadyHandled(ctx context.Context, ticketID int64) (bool, string) {
	comments, err := g.api.GetTicketComments(ctx, ticketID, false)
	if err != nil {
		// A transient read failure must never block a new ticket.
		return false, ""
	}

	cutoff := g.now().UTC().Add(-g.window)
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		if c.Public {
			continue
		}
		body := strings.TrimSpace(c.Text())
		if body == "" || !strings.Contains(body, `"classification"`) {
			continue
		}
		createdAt, err := time.Parse(time.RFC3339, c.CreatedAt)
		if err != nil {
			// Unparseable timestamp: conservatively treat as handled.
			return true, "recent classification exists"
		}
		if !createdAt.Before(cutoff) {
			return true, "recent classification exists"
		}
	}
	return false, ""
}

// anyInternalGuard skips a ticket as soon as it has any internal
// comment, regardless of content or age.
type anyInternalGuard struct {
	api TicketAPI
}

func (g *anyInternalGuard) AlreadyHandled(ctx context.Context, ticketID int64) (bool, string) {
	comments, err := g.api.GetTicketComments(ctx, ticketID, false)
	if err != nil {
		return false, ""
	}
	for _, c := range comments {
		if !c.Public {
			return true, "internal comment exists"
		}
	}
	return false, ""
}
