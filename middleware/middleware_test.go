package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/domain"
)

func TestRequireCaller(t *testing.T) {
	e := echo.New()
	h := func(c echo.Context) error {
		return c.String(http.StatusOK, string(c.Get("caller").(domain.Address)))
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	require.NoError(t, RequireCaller()(h)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(delivery.HeaderXCaller, "0x939ae6A4C8dfDBB1f7085189574F0A938013952A")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, RequireCaller()(h)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "0x939ae6a4c8dfdbb1f7085189574f0a938013952a", rec.Body.String())
}

func TestAddContext(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	rec.Header().Set(echo.HeaderXRequestID, "req-1")
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	m := InitMiddleware()
	require.NoError(t, m.AddContext()(func(c echo.Context) error {
		cont := c.Get("ctx").(ctx.Ctx)
		require.Equal(t, "req-1", cont.Value("requestID"))
		return nil
	})(c))
}

func TestIsValidAddress(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("address")
	c.SetParamValues("0x000")
	require.NoError(t, IsValidAddress("address")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
