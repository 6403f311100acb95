package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/guildhall/internal/guild/metrics"
)

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { metrics.RegisterMetrics(reg) })
	require.Panics(t, func() { metrics.RegisterMetrics(reg) }, "double registration panics")
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeRejected))
	metrics.RecordAuth("login", metrics.OutcomeRejected)
	require.InDelta(t, before+1, testutil.ToFloat64(metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeRejected)), 0)

	before = testutil.ToFloat64(metrics.InviteRedemptions.WithLabelValues(metrics.OutcomeDuplicate))
	metrics.RecordRedemption(metrics.OutcomeDuplicate)
	require.InDelta(t, before+1, testutil.ToFloat64(metrics.InviteRedemptions.WithLabelValues(metrics.OutcomeDuplicate)), 0)

	before = testutil.ToFloat64(metrics.InvitesCreated)
	metrics.RecordInviteCreated()
	require.InDelta(t, before+1, testutil.ToFloat64(metrics.InvitesCreated), 0)

	before = testutil.ToFloat64(metrics.InviteCodeCollisions)
	metrics.RecordCodeCollision()
	require.InDelta(t, before+1, testutil.ToFloat64(metrics.InviteCodeCollisions), 0)
}
