// Package metrics holds the Prometheus collectors for the guild service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
	OutcomeDuplicate = "duplicate"
)

// AuthAttempts counts signup and login attempts by outcome.
var AuthAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "guild_auth_attempts_total",
		Help: "Total number of signup and login attempts",
	},
	[]string{"operation", "outcome"},
)

// InviteRedemptions counts accept attempts by outcome.
var InviteRedemptions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "guild_invite_redemptions_total",
		Help: "Total number of invite redemption attempts",
	},
	[]string{"outcome"},
)

// InvitesCreated counts invites minted.
var InvitesCreated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "guild_invites_created_total",
		Help: "Total number of invites created",
	},
)

// InviteCodeCollisions counts generated codes that were already taken.
var InviteCodeCollisions = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "guild_invite_code_collisions_total",
		Help: "Total number of invite code collisions that forced a redraw",
	},
)

// RegisterMetrics registers the guild collectors with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(InviteRedemptions)
	reg.MustRegister(InvitesCreated)
	reg.MustRegister(InviteCodeCollisions)
}

func RecordAuth(operation, outcome string) {
	AuthAttempts.WithLabelValues(operation, outcome).Inc()
}

// RecordRedemption increments the redemption counter. Use Outcome* constants;
// OutcomeDuplicate marks a caller who was already a member.
func RecordRedemption(outcome string) {
	InviteRedemptions.WithLabelValues(outcome).Inc()
}

func RecordInviteCreated() { InvitesCreated.Inc() }

func RecordCodeCollision() { InviteCodeCollisions.Inc() }
