package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/option"
	"github.com/x-xyz/gomarket/middleware"
)

type handler struct {
	option option.UseCase
}

func New(e *echo.Echo, option option.UseCase, readMws ...echo.MiddlewareFunc) {
	h := &handler{option}

	gs := e.Group("/options")

	gs.GET("", h.getAll, readMws...)

	gs.GET("/registry", h.registry)

	gs.GET("/:id", h.get, readMws...)

	gs.POST("", h.mint, middleware.RequireCaller())

	gs.POST("/:id/exercise", h.exercise, middleware.RequireCaller())

	gs.POST("/:id/burn", h.burn, middleware.RequireCaller())
}

type searchParams struct {
	Writer   string `query:"writer"`
	Owner    string `query:"owner"`
	Category string `query:"category"`
	State    string `query:"state"`
	SortBy   string `query:"sortBy"`
	Offset   int    `query:"offset"`
	Limit    int    `query:"limit"`
}

func (p *searchParams) options() ([]option.FindAllOptions, error) {
	opts := []option.FindAllOptions{
		option.WithPagination(p.Offset, p.Limit),
		option.WithSort(p.SortBy),
	}
	if p.Writer != "" {
		opts = append(opts, option.WithWriter(domain.Address(p.Writer)))
	}
	if p.Owner != "" {
		opts = append(opts, option.WithOwner(domain.Address(p.Owner)))
	}
	if p.Category != "" {
		var category option.Category
		if err := category.UnmarshalText([]byte(p.Category)); err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCategory(category))
	}
	if p.State != "" {
		var state option.State
		if err := state.UnmarshalText([]byte(p.State)); err != nil {
			return nil, err
		}
		opts = append(opts, option.WithState(state))
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

	res, err := h.option.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) registry(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	addr, err := h.option.Registry(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]domain.Address{
		"engine":   h.option.Address(),
		"registry": addr,
	})
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.option.FindOne(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("caller").(domain.Address)

	p := option.MintParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.option.Mint(ctx, caller, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) exercise(c echo.Context) error {
	return h.settle(c, h.option.Exercise)
}

func (h *handler) burn(c echo.Context) error {
	return h.settle(c, h.option.Burn)
}

func (h *handler) settle(c echo.Context, op func(ctx.Ctx, domain.Address, uint64) (*option.View, error)) error {
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
