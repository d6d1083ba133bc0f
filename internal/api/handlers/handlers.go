package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/handlers/common"
	"github/chapool/go-txsigner/internal/api/handlers/messages"
	"github/chapool/go-txsigner/internal/api/handlers/transactions"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		messages.PostSignMessageRoute(s),
		transactions.PostHashTransactionRoute(s),
		transactions.PostSignTransactionRoute(s),
	}

	if s.Config.Management.EnableMetrics {
		s.Router.Routes = append(s.Router.Routes, common.GetMetricsRoute(s))
	}
}
