package common

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/util"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Health check
// Returns an human readable string about the current service status.
// In addition to readiness probes, it performs a complete sign cycle with a throwaway key.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Management.LivenessTimeout)
		defer cancel()

		if err := ProbeLiveness(ctx, s); err != nil {
			util.LogFromEchoContext(c).Warn().Err(err).Msg("Liveness probe failed")

			if s.Config.Echo.HideInternalServerErrorDetails {
				return c.String(statusNotReady, "Probes failed.")
			}
			return c.String(statusNotReady, "Probes failed: "+err.Error())
		}

		return c.String(http.StatusOK, "Probes succeeded.")
	}
}
