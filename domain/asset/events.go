package asset

import (
	"math/big"

	"github.com/x-xyz/gomarket/domain"
)

// TransferEvent is emitted by every reference asset contract. ItemId is nil
// for fungible transfers.
type TransferEvent struct {
	Operator domain.Address `json:"operator"`
	From     domain.Address `json:"from"`
	To       domain.Address `json:"to"`
	ItemId   *big.Int       `json:"itemId,omitempty"`
	Amount   *big.Int       `json:"amount"`
}

// ApprovalEvent covers allowances, single item approvals and operator approvals
type ApprovalEvent struct {
	Owner    domain.Address `json:"owner"`
	Spender  domain.Address `json:"spender"`
	ItemId   *big.Int       `json:"itemId,omitempty"`
	Amount   *big.Int       `json:"amount,omitempty"`
	Approved bool           `json:"approved"`
}
