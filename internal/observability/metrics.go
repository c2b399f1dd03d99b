package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedengine_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedengine_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikesToggled counts like toggles by resulting action.
	LikesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedengine_likes_toggled_total",
		Help: "Total number of like toggles by action",
	}, []string{"action"})

	// CommentsAppended counts appended comments.
	CommentsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedengine_comments_appended_total",
		Help: "Total number of comments appended to posts",
	})

	// PostsCreated counts created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedengine_posts_created_total",
		Help: "Total number of posts created",
	})

	// SessionsIssued counts session tokens issued at login.
	SessionsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedengine_sessions_issued_total",
		Help: "Total number of session tokens issued",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
