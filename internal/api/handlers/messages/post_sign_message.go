package messages

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
)

func PostSignMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Messages.POST("/sign", postSignMessageHandler(s))
}

func postSignMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSignMessagePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		signed, err := s.Signer.SignMessage(ctx, body.Bytes(), *body.From, body.Key)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to sign message")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, signed)
	}
}
