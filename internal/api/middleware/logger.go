package middleware

import (
	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/go-txsigner/internal/config"
)

// Logger attaches a request scoped zerolog logger, carrying the request id, to the
// request context and logs every handled request at the configured request level.
// It must be registered after the RequestID middleware.
func Logger(cfg config.LoggerServer, clock time2.Clock) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := clock.Now()

			l := log.With().
				Str("id", res.Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			if err := next(c); err != nil {
				c.Error(err)
			}

			l.WithLevel(cfg.RequestLevel).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration", clock.Now().Sub(start)).
				Msg("Request handled")

			return nil
		}
	}
}
