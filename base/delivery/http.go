package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/base/validator"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/service/query"
)

// HeaderXCaller carries the account an operation is submitted as
const HeaderXCaller = "X-Caller"

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var statusByErr = []struct {
	err    error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{query.ErrNotFound, http.StatusNotFound},
	{domain.ErrAlreadyListed, http.StatusConflict},
	{domain.ErrNotAllowed, http.StatusForbidden},
	{domain.ErrBadParamInput, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrInvalidNumberFormat, http.StatusBadRequest},
	{domain.ErrNotAvailable, http.StatusUnprocessableEntity},
	{domain.ErrExpired, http.StatusUnprocessableEntity},
	{domain.ErrNotYetExpired, http.StatusUnprocessableEntity},
	{domain.ErrBidTooLow, http.StatusUnprocessableEntity},
	{domain.ErrUnsupportedAssetClass, http.StatusUnprocessableEntity},
	{domain.ErrInvalidRoyalty, http.StatusUnprocessableEntity},
	{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
	{domain.ErrInsufficientAllowance, http.StatusUnprocessableEntity},
	{domain.ErrReceiverRejected, http.StatusUnprocessableEntity},
	{domain.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{domain.ErrTokenNotExist, http.StatusUnprocessableEntity},
	{domain.ErrNoContract, http.StatusUnprocessableEntity},
}

// StatusOf maps err to the http status it is reported with, fallback is used
// for errors outside the domain taxonomy
func StatusOf(err error, fallback int) int {
	for _, s := range statusByErr {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

// Caller returns the lower cased X-Caller address of the request
func Caller(c echo.Context) (domain.Address, bool) {
	caller := c.Request().Header.Get(HeaderXCaller)
	if caller == "" || !validator.IsValidAddress(caller) {
		return "", false
	}
	return domain.Address(caller).ToLower(), true
}
