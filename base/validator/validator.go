package validator

import (
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/x-xyz/gomarket/domain"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// NewCustomValidator validates big.Int fields as their decimal string and
// registers the "nonneg" tag for them
func NewCustomValidator(v *validator.Validate) echo.Validator {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(big.Int); ok {
			return n.String()
		}
		return nil
	}, big.Int{})
	_ = v.RegisterValidation("nonneg", func(fl validator.FieldLevel) bool {
		return !strings.HasPrefix(fl.Field().String(), "-")
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

// Validate reports failures as domain.ErrBadParamInput
func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrBadParamInput)
	}
	return nil
}
