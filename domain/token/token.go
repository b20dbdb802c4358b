package token

import (
	"math/big"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

// Info describes one asset contract deployed on the ledger
type Info struct {
	Address  domain.Address `json:"address"`
	Class    asset.Class    `json:"class"`
	Name     string         `json:"name,omitempty"`
	Symbol   string         `json:"symbol,omitempty"`
	Decimals uint8          `json:"decimals,omitempty"`
}

// Balance of owner, Display is Amount scaled by the token decimals
type Balance struct {
	Token   domain.Address `json:"token"`
	Owner   domain.Address `json:"owner"`
	ItemId  *big.Int       `json:"itemId,omitempty"`
	Amount  *big.Int       `json:"amount"`
	Display string         `json:"display"`
}

// ApproveParams grants an allowance of Amount on fungible tokens, or sets
// Spender as operator of every item of the caller otherwise
type ApproveParams struct {
	Spender  domain.Address `json:"spender" validate:"required,eth_addr"`
	Amount   *big.Int       `json:"amount" validate:"omitempty,nonneg"`
	Approved bool           `json:"approved"`
}

// MintParams issues tokens to To, ItemId is ignored by fungible tokens and
// Amount by unique ones
type MintParams struct {
	To     domain.Address `json:"to" validate:"required,eth_addr"`
	ItemId *big.Int       `json:"itemId" validate:"omitempty,nonneg"`
	Amount *big.Int       `json:"amount" validate:"omitempty,nonneg"`
}

type UseCase interface {
	FindAll(c ctx.Ctx) ([]*Info, error)
	Balance(c ctx.Ctx, token, owner domain.Address, itemId *big.Int) (*Balance, error)
	Approve(c ctx.Ctx, caller, token domain.Address, p ApproveParams) error
	// Mint is submitted as the faucet account which mints the devnet tokens
	Mint(c ctx.Ctx, token domain.Address, p MintParams) error
}
