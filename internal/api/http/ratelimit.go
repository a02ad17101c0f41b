package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// rateLimitMiddleware bounds requests per client IP with a fixed Redis
// window (INCR + EXPIRE). When Redis is unreachable the limiter fails open:
// losing rate limiting is preferable to refusing all traffic.
func rateLimitMiddleware(rdb *persistence.Redis, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil || rdb.Client == nil || cfg.MaxRequests <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := "ratelimit:" + c.IP()

		count, err := rdb.Client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := rdb.Client.Expire(ctx, key, cfg.Window()).Err(); err != nil {
				logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > int64(cfg.MaxRequests) {
			return apperrors.NewDomainError(
				"RATE_LIMITED",
				"Demasiadas peticiones desde esta IP, intente de nuevo más tarde.",
				http.StatusTooManyRequests,
			)
		}
		return c.Next()
	}
}
