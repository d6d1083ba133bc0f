package transactions

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
)

func PostSignTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transactions.POST("/sign", postSignTransactionHandler(s))
}

func postSignTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSignTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		chainID := body.ChainIDOr(s.Config.Signer.DefaultChainID)

		signed, err := s.Signer.SignTransaction(ctx, *body.Transaction, *body.From, body.Key, chainID)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to sign transaction")
			return err
		}

		log.Info().
			Str("from", body.From.Hex()).
			Uint64("chain_id", chainID).
			Str("transaction_hash", signed.TransactionHash.Hex()).
			Msg("Transaction signed")

		return util.ValidateAndReturn(c, http.StatusOK, signed)
	}
}
