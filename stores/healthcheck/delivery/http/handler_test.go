package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	hcdomain "github.com/x-xyz/gomarket/domain/healthcheck"
	"github.com/x-xyz/gomarket/domain/healthcheck/mocks"
	"github.com/x-xyz/gomarket/stores/healthcheck/usecase"
)

func newEcho(t *testing.T, repo hcdomain.HealthCheckRepo) *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, usecase.New(repo, ledger.New(ledger.NewManualClock(42))))
	return e
}

func TestHealth(t *testing.T) {
	req := require.New(t)
	repo := mocks.NewHealthCheckRepo(t)
	repo.On("PingDB", mock.Anything).Return(true, nil).Once()
	repo.On("PingCache", mock.Anything).Return(false, nil).Once()

	rec := httptest.NewRecorder()
	newEcho(t, repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(context.Background()))
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`{"status":"success","data":{"height":0,"time":42,"mirror":true,"publisher":false}}`, rec.Body.String())
}

func TestHealthBackendDown(t *testing.T) {
	req := require.New(t)
	repo := mocks.NewHealthCheckRepo(t)
	repo.On("PingDB", mock.Anything).Return(false, errors.New("server selection timeout")).Once()

	rec := httptest.NewRecorder()
	newEcho(t, repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	req.Equal(http.StatusServiceUnavailable, rec.Code)
	req.Contains(rec.Body.String(), `"status":"fail"`)
}
