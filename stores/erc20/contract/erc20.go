package contract

import (
	"math/big"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

type Erc20Cfg struct {
	Name     string
	Symbol   string
	Decimals uint8
	// Minter is the only account allowed to Mint
	Minter domain.Address
}

type allowanceKey struct {
	owner   domain.Address
	spender domain.Address
}

// Erc20 is a fungible reference token living on the ledger
type Erc20 struct {
	self     domain.Address
	name     string
	symbol   string
	decimals uint8
	minter   domain.Address

	supply     ledger.Value[*big.Int]
	balances   *ledger.Map[domain.Address, *big.Int]
	allowances *ledger.Map[allowanceKey, *big.Int]
}

func NewErc20(cfg *Erc20Cfg) ledger.Factory {
	return func(self domain.Address) interface{} {
		return &Erc20{
			self:       self,
			name:       cfg.Name,
			symbol:     cfg.Symbol,
			decimals:   cfg.Decimals,
			minter:     cfg.Minter.ToLower(),
			balances:   ledger.NewMap[domain.Address, *big.Int](),
			allowances: ledger.NewMap[allowanceKey, *big.Int](),
		}
	}
}

func (e *Erc20) Address() domain.Address {
	return e.self
}

func (e *Erc20) Name() string {
	return e.name
}

func (e *Erc20) Symbol() string {
	return e.symbol
}

func (e *Erc20) Decimals() uint8 {
	return e.decimals
}

func (e *Erc20) SupportsInterface(tx *ledger.Tx, id asset.InterfaceId) bool {
	return id == asset.InterfaceIdERC165 || id == asset.InterfaceIdERC20
}

func (e *Erc20) TotalSupply(tx *ledger.Tx) *big.Int {
	return domain.CopyBig(e.supply.Get())
}

func (e *Erc20) BalanceOf(tx *ledger.Tx, owner domain.Address) *big.Int {
	bal, _ := e.balances.Get(owner.ToLower())
	return domain.CopyBig(bal)
}

func (e *Erc20) Allowance(tx *ledger.Tx, owner, spender domain.Address) *big.Int {
	v, _ := e.allowances.Get(allowanceKey{owner.ToLower(), spender.ToLower()})
	return domain.CopyBig(v)
}

func (e *Erc20) Approve(tx *ledger.Tx, spender domain.Address, amount *big.Int) error {
	if !validAmount(amount) {
		return domain.ErrInvalidAmount
	}
	owner := tx.Caller()
	e.allowances.Set(tx, allowanceKey{owner, spender.ToLower()}, domain.CopyBig(amount))
	tx.Emit(asset.ApprovalEvent{
		Owner:    owner,
		Spender:  spender.ToLower(),
		Amount:   domain.CopyBig(amount),
		Approved: amount.Sign() > 0,
	})
	return nil
}

func (e *Erc20) Transfer(tx *ledger.Tx, to domain.Address, amount *big.Int) error {
	return e.move(tx, tx.Caller(), to, amount)
}

// TransferFrom spends the allowance owner gave to the caller
func (e *Erc20) TransferFrom(tx *ledger.Tx, from, to domain.Address, amount *big.Int) error {
	if !validAmount(amount) {
		return domain.ErrInvalidAmount
	}
	from = from.ToLower()
	if from != tx.Caller() {
		key := allowanceKey{from, tx.Caller()}
		allowed, _ := e.allowances.Get(key)
		if domain.CopyBig(allowed).Cmp(amount) < 0 {
			return domain.ErrInsufficientAllowance
		}
		e.allowances.Set(tx, key, new(big.Int).Sub(domain.CopyBig(allowed), amount))
	}
	return e.move(tx, from, to, amount)
}

func (e *Erc20) Mint(tx *ledger.Tx, to domain.Address, amount *big.Int) error {
	if tx.Caller() != e.minter {
		return domain.ErrNotAllowed
	}
	if !validAmount(amount) {
		return domain.ErrInvalidAmount
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	to = to.ToLower()
	bal, _ := e.balances.Get(to)
	e.balances.Set(tx, to, new(big.Int).Add(domain.CopyBig(bal), amount))
	e.supply.Set(tx, new(big.Int).Add(domain.CopyBig(e.supply.Get()), amount))
	tx.Emit(asset.TransferEvent{
		Operator: tx.Caller(),
		From:     domain.EmptyAddress,
		To:       to,
		Amount:   domain.CopyBig(amount),
	})
	return nil
}

func (e *Erc20) move(tx *ledger.Tx, from, to domain.Address, amount *big.Int) error {
	if !validAmount(amount) {
		return domain.ErrInvalidAmount
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	from, to = from.ToLower(), to.ToLower()
	fromBal, _ := e.balances.Get(from)
	if domain.CopyBig(fromBal).Cmp(amount) < 0 {
		return domain.ErrInsufficientBalance
	}
	e.balances.Set(tx, from, new(big.Int).Sub(domain.CopyBig(fromBal), amount))
	toBal, _ := e.balances.Get(to)
	e.balances.Set(tx, to, new(big.Int).Add(domain.CopyBig(toBal), amount))
	tx.Emit(asset.TransferEvent{
		Operator: tx.Caller(),
		From:     from,
		To:       to,
		Amount:   domain.CopyBig(amount),
	})
	return nil
}

func validAmount(amount *big.Int) bool {
	return amount != nil && amount.Sign() >= 0
}
