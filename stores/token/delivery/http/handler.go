package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/token"
	"github.com/x-xyz/gomarket/middleware"
)

type handler struct {
	token token.UseCase
}

// New registers token routes, the faucet route is only registered when
// withFaucet is set
func New(e *echo.Echo, token token.UseCase, withFaucet bool) {
	h := &handler{token}

	gs := e.Group("/tokens")

	gs.GET("", h.getAll)

	gs.GET("/:contract/balance/:owner", h.balance, middleware.IsValidAddress("contract"), middleware.IsValidAddress("owner"))

	gs.POST("/:contract/approve", h.approve, middleware.IsValidAddress("contract"), middleware.RequireCaller())

	if withFaucet {
		gs.POST("/:contract/mint", h.mint, middleware.IsValidAddress("contract"))
	}
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.token.FindAll(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) balance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	var itemId *big.Int
	if raw := c.QueryParam("itemId"); raw != "" {
		v, ok := new(big.Int).SetString(raw, 10)
		if !ok || v.Sign() < 0 {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
		}
		itemId = v
	}

	res, err := h.token.Balance(ctx, domain.Address(c.Param("contract")), domain.Address(c.Param("owner")), itemId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("caller").(domain.Address)

	p := token.ApproveParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.token.Approve(ctx, caller, domain.Address(c.Param("contract")), p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := token.MintParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.token.Mint(ctx, domain.Address(c.Param("contract")), p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
