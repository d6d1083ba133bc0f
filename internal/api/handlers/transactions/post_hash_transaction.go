package transactions

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
)

func PostHashTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transactions.POST("/hash", postHashTransactionHandler(s))
}

func postHashTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostHashTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		chainID := body.ChainIDOr(s.Config.Signer.DefaultChainID)

		messageHash, err := s.Signer.HashTransaction(*body.Transaction, chainID)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to hash transaction")
			return err
		}

		response := &types.HashTransactionResponse{
			ChainID:     chainID,
			MessageHash: messageHash,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
