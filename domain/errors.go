package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput  = errors.New("Given Param is not valid")
	ErrInvalidAddress = errors.New("Invalid address")
	// ErrInvalidNumberFormat will throw if a stored amount is not a decimal integer
	ErrInvalidNumberFormat = errors.New("Invalid number format")

	// marketplace and option engine preconditions
	ErrAlreadyListed         = errors.New("already listed")
	ErrNotAvailable          = errors.New("not available")
	ErrExpired               = errors.New("expired")
	ErrNotYetExpired         = errors.New("not yet expired")
	ErrNotAllowed            = errors.New("not allowed")
	ErrBidTooLow             = errors.New("bid too low")
	ErrUnsupportedAssetClass = errors.New("unsupported asset class")
	ErrInvalidRoyalty        = errors.New("royalty exceeds sale amount")

	// asset protocol failures
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrReceiverRejected      = errors.New("receiver rejected transfer")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrTokenNotExist         = errors.New("token does not exist")

	// host ledger
	ErrNoContract = errors.New("no contract at address")
	ErrReadOnly   = errors.New("write in read-only frame")
)
