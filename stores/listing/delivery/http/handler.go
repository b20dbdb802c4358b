package http

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/listing"
	"github.com/x-xyz/gomarket/middleware"
)

type handler struct {
	listing listing.UseCase
}

// New registers the marketplace routes, readMws wrap the read endpoints
func New(e *echo.Echo, listing listing.UseCase, readMws ...echo.MiddlewareFunc) {
	h := &handler{listing}

	gs := e.Group("/listings")

	gs.GET("", h.getAll, readMws...)

	gs.GET("/:id", h.get, readMws...)

	gs.POST("", h.create, middleware.RequireCaller())

	gs.POST("/:id/cancel", h.cancel, middleware.RequireCaller())

	gs.POST("/:id/bid", h.bid, middleware.RequireCaller())

	gs.POST("/:id/claim", h.claim, middleware.RequireCaller())

	gs.POST("/:id/instabuy", h.instaBuy, middleware.RequireCaller())
}

type searchParams struct {
	Creator  string `query:"creator"`
	Contract string `query:"contract"`
	Bidder   string `query:"bidder"`
	Status   string `query:"status"`
	SortBy   string `query:"sortBy"`
	Offset   int    `query:"offset"`
	Limit    int    `query:"limit"`
}

func (p *searchParams) options() ([]listing.FindAllOptions, error) {
	opts := []listing.FindAllOptions{
		listing.WithPagination(p.Offset, p.Limit),
		listing.WithSort(p.SortBy),
	}
	if p.Creator != "" {
		opts = append(opts, listing.WithCreator(domain.Address(p.Creator)))
	}
	if p.Contract != "" {
		opts = append(opts, listing.WithContract(domain.Address(p.Contract)))
	}
	if p.Bidder != "" {
		opts = append(opts, listing.WithBidder(domain.Address(p.Bidder)))
	}
	if p.Status != "" {
		var status listing.Status
		if err := status.UnmarshalText([]byte(p.Status)); err != nil {
			return nil, err
		}
		opts = append(opts, listing.WithStatus(status))
	}
	return opts, nil
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &searchParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	opts, err := p.options()
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.FindOne(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("caller").(domain.Address)

	p := listing.CreateParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Create(ctx, caller, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("caller").(domain.Address)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Amount *big.Int `json:"amount" validate:"required,nonneg"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Bid(ctx, caller, id, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) cancel(c echo.Context) error {
	return h.settle(c, h.listing.Cancel)
}

func (h *handler) claim(c echo.Context) error {
	return h.settle(c, h.listing.Claim)
}

func (h *handler) instaBuy(c echo.Context) error {
	return h.settle(c, h.listing.InstaBuy)
}

func (h *handler) settle(c echo.Context, op func(ctx.Ctx, domain.Address, uint64) (*listing.Listing, error)) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("caller").(domain.Address)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := op(ctx, caller, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func parseId(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrBadParamInput
	}
	return id, nil
}
