package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	refreshRotations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_refresh_rotations_total",
		Help: "Number of refresh rotations grouped by status.",
	}, []string{"status"})

	logoutEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_logout_events_total",
		Help: "Number of logout attempts grouped by status.",
	}, []string{"status"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})

	postRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_post_renders_total",
		Help: "Number of post document renders grouped by status.",
	}, []string{"status"})

	blobsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_blobs_ingested_total",
		Help: "Number of uploaded blobs grouped by status.",
	}, []string{"status"})
)

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncRefresh increments the refresh rotation counter.
func IncRefresh(status string) {
	refreshRotations.WithLabelValues(status).Inc()
}

// IncLogout increments the logout counter.
func IncLogout(status string) {
	logoutEvents.WithLabelValues(status).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}

// IncPostRender increments the post render counter.
func IncPostRender(status string) {
	postRenders.WithLabelValues(status).Inc()
}

// IncBlobIngested increments the ingested blob counter.
func IncBlobIngested(status string) {
	blobsIngested.WithLabelValues(status).Inc()
}
