package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// PostsCreated counts posts persisted by kind (post, reply, repost).
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_posts_created_total",
		Help: "Total number of posts created by kind",
	}, []string{"kind"})

	// LikesApplied counts like edge mutations by action (like, unlike).
	LikesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_likes_applied_total",
		Help: "Total number of like edge mutations by action",
	}, []string{"action"})

	// FollowsCreated counts new follow edges.
	FollowsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_follows_created_total",
		Help: "Total number of follow edges created",
	})

	// NotificationsEmitted counts notifications persisted by type.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_notifications_emitted_total",
		Help: "Total number of notifications emitted by type",
	}, []string{"type"})
)
