package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/event"
	"github.com/x-xyz/gomarket/domain/event/mocks"
)

const contract = "0x1111111111111111111111111111111111111111"

func TestRecent(t *testing.T) {
	req := require.New(t)
	pub := mocks.NewPublisher(t)
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, pub)

	pub.On("Recent", mock.Anything, domain.Address(contract), 20).Return([]*event.Message{{Height: 3, Name: "asset.TransferEvent"}}, nil).Once()
	pub.On("Recent", mock.Anything, domain.Address(contract), 0).Return(nil, domain.ErrBadParamInput).Once()

	for _, tt := range []struct {
		target string
		status int
	}{
		{"/events/" + contract, http.StatusOK},
		{"/events/" + contract + "?count=0", http.StatusBadRequest},
		{"/events/" + contract + "?count=many", http.StatusBadRequest},
		{"/events/0x12", http.StatusBadRequest},
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
		req.Equal(tt.status, rec.Code, tt.target)
	}
}
