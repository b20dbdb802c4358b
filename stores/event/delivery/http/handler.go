package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/event"
	"github.com/x-xyz/gomarket/middleware"
)

const defaultCount = 20

type handler struct {
	publisher event.Publisher
}

func New(e *echo.Echo, publisher event.Publisher) {
	h := &handler{publisher}

	gs := e.Group("/events")

	gs.GET("/:contract", h.recent, middleware.IsValidAddress("contract"))
}

func (h *handler) recent(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	count := defaultCount
	if raw := c.QueryParam("count"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
		}
		count = v
	}

	res, err := h.publisher.Recent(ctx, domain.Address(c.Param("contract")), count)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
