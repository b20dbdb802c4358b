package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/domain/chain"
)

type handler struct {
	chain chain.UseCase
}

func New(e *echo.Echo, chain chain.UseCase) {
	h := &handler{chain}

	gs := e.Group("/chain")

	gs.GET("", h.status)

	gs.POST("/advance", h.advance)
}

func (h *handler) status(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.chain.Status(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) advance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Seconds uint64 `json:"seconds" validate:"required"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.chain.Advance(ctx, p.Seconds)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
