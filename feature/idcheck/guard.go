package idcheck

import (
	"id-check/core/logger"
	"id-check/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Lookup is the read side of the filter used on the request path.
type Lookup interface {
	IsMember(id uint64) bool
}

// NewGuard returns the request hook: it reads the identifier from cfg.Header and
// rejects the request with 403 depending on cfg.Mode.
//
// In deny mode members are rejected and requests without a valid identifier pass.
// In allow mode only members pass.
func NewGuard(lookup Lookup, cfg Config, log *zap.Logger) fiber.Handler {
	allow := cfg.Mode == ModeAllow
	return func(c *fiber.Ctx) error {
		raw := c.Get(cfg.Header)
		id, ok := utils.ToUint64(raw)

		var rejected bool
		if allow {
			rejected = !ok || !lookup.IsMember(id)
		} else {
			rejected = ok && lookup.IsMember(id)
		}

		if rejected {
			logger.WithRayID(log, c).Info("Request rejected",
				zap.String("mode", cfg.Mode),
				zap.String("id", raw),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		return c.Next()
	}
}
