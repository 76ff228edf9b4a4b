package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"CycleVis/pkg/logger"
)

// RequestLogging logs HTTP requests. Requests to quiet paths are logged at
// debug level only.
func RequestLogging(l *logger.Logger, quiet ...string) echo.MiddlewareFunc {
	skip := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		skip[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)

			fields := []logger.Field{
				logger.String("method", req.Method),
				logger.String("uri", req.RequestURI),
				logger.String("remote", c.RealIP()),
				logger.Int("status", responseStatus(c, err)),
				logger.Duration("latency_ms", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, logger.Error(err))
			}

			if _, ok := skip[c.Path()]; ok {
				l.Debug("http request", fields...)
			} else {
				l.Info("http request", fields...)
			}
			return err
		}
	}
}
