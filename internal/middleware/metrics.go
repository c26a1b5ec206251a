package middleware

import (
	"strconv"
	"time"

	"mercado/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Metrics records request count and latency per matched route.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := resolveError(c, c.Next())

		// label values outlive the request; fiber strings are reused buffers
		method := utils.CopyString(c.Method())
		route := c.Route().Path
		metrics.HTTPRequests.
			WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).
			Inc()
		metrics.HTTPDuration.
			WithLabelValues(method, route).
			Observe(time.Since(start).Seconds())

		return chainErr
	}
}
