package middleware

import (
	"github.com/Satyam6458/HR-Management/internal/auth/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type GuardConfig struct {
	Tokens *token.Issuer
	RBAC   RBACService
	Redis  *redis.Client

	// Requests per second and burst for Throttle. A burst of zero disables
	// throttling.
	Rate  rate.Limit
	Burst int

	// Requests per second and burst for ThrottleUser, keyed by user ID.
	UserRate  rate.Limit
	UserBurst int
}

// Guard bundles the middleware route packages attach to their endpoints.
// The zero value rejects authenticated routes and passes everything else.
type Guard struct {
	cfg       GuardConfig
	userLimit gin.HandlerFunc
}

func NewGuard(cfg GuardConfig) Guard {
	g := Guard{cfg: cfg, userLimit: passthrough}
	if cfg.UserBurst > 0 {
		g.userLimit = RateLimitByUser(cfg.UserRate, cfg.UserBurst)
	}
	return g
}

func (g Guard) Authenticate() gin.HandlerFunc {
	return AuthMiddleware(g.cfg.Tokens)
}

func (g Guard) Authorize(resource, action string) gin.HandlerFunc {
	return RBACAuthorize(g.cfg.RBAC, resource, action)
}

// Throttle returns a fresh per-IP limiter, so each route is limited
// independently.
func (g Guard) Throttle() gin.HandlerFunc {
	if g.cfg.Burst <= 0 {
		return passthrough
	}
	return RateLimitByIP(g.cfg.Rate, g.cfg.Burst)
}

// ThrottleUser limits authenticated callers. Every route it is attached to
// draws from the same per-user bucket. It must run after Authenticate.
func (g Guard) ThrottleUser() gin.HandlerFunc {
	if g.userLimit == nil {
		return passthrough
	}
	return g.userLimit
}

func (g Guard) Idempotent() gin.HandlerFunc {
	return Idempotency(g.cfg.Redis)
}

func passthrough(c *gin.Context) {
	c.Next()
}
