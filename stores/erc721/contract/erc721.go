package contract

import (
	"math/big"

	"golang.org/x/xerrors"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

const royaltyDenominator = 10000

type Erc721Cfg struct {
	Name   string
	Symbol string
	// Minter is the only account allowed to Mint and Burn
	Minter domain.Address
	// RoyaltyReceiver enables ERC-2981 when set
	RoyaltyReceiver domain.Address
	RoyaltyBps      uint16
}

type operatorKey struct {
	owner    domain.Address
	operator domain.Address
}

// Erc721 is a unique item reference token. It also serves as the ownership
// registry of options, with the option engine as minter.
type Erc721 struct {
	self   domain.Address
	name   string
	symbol string
	minter domain.Address

	royaltyReceiver domain.Address
	royaltyBps      uint16

	owners    *ledger.Map[string, domain.Address]
	balances  *ledger.Map[domain.Address, uint64]
	approvals *ledger.Map[string, domain.Address]
	operators *ledger.Map[operatorKey, bool]
}

func NewErc721(cfg *Erc721Cfg) ledger.Factory {
	return func(self domain.Address) interface{} {
		return &Erc721{
			self:            self,
			name:            cfg.Name,
			symbol:          cfg.Symbol,
			minter:          cfg.Minter.ToLower(),
			royaltyReceiver: cfg.RoyaltyReceiver.ToLower(),
			royaltyBps:      cfg.RoyaltyBps,
			owners:          ledger.NewMap[string, domain.Address](),
			balances:        ledger.NewMap[domain.Address, uint64](),
			approvals:       ledger.NewMap[string, domain.Address](),
			operators:       ledger.NewMap[operatorKey, bool](),
		}
	}
}

func (e *Erc721) Address() domain.Address {
	return e.self
}

func (e *Erc721) Name() string {
	return e.name
}

func (e *Erc721) Symbol() string {
	return e.symbol
}

func (e *Erc721) SupportsInterface(tx *ledger.Tx, id asset.InterfaceId) bool {
	switch id {
	case asset.InterfaceIdERC165, asset.InterfaceIdERC721:
		return true
	case asset.InterfaceIdERC2981:
		return !e.royaltyReceiver.IsEmpty()
	}
	return false
}

func (e *Erc721) BalanceOf(tx *ledger.Tx, owner domain.Address) *big.Int {
	n, _ := e.balances.Get(owner.ToLower())
	return new(big.Int).SetUint64(n)
}

func (e *Erc721) OwnerOf(tx *ledger.Tx, id *big.Int) (domain.Address, error) {
	if id == nil {
		return "", domain.ErrTokenNotExist
	}
	owner, ok := e.owners.Get(id.String())
	if !ok {
		return "", domain.ErrTokenNotExist
	}
	return owner, nil
}

func (e *Erc721) Exists(tx *ledger.Tx, id *big.Int) bool {
	_, err := e.OwnerOf(tx, id)
	return err == nil
}

func (e *Erc721) GetApproved(tx *ledger.Tx, id *big.Int) domain.Address {
	if id == nil {
		return ""
	}
	approved, _ := e.approvals.Get(id.String())
	return approved
}

func (e *Erc721) IsApprovedForAll(tx *ledger.Tx, owner, operator domain.Address) bool {
	ok, _ := e.operators.Get(operatorKey{owner.ToLower(), operator.ToLower()})
	return ok
}

// Approve lets to move id, the caller must own id or be an operator of its owner
func (e *Erc721) Approve(tx *ledger.Tx, to domain.Address, id *big.Int) error {
	owner, err := e.OwnerOf(tx, id)
	if err != nil {
		return err
	}
	if tx.Caller() != owner && !e.IsApprovedForAll(tx, owner, tx.Caller()) {
		return domain.ErrNotAllowed
	}
	e.approvals.Set(tx, id.String(), to.ToLower())
	tx.Emit(asset.ApprovalEvent{
		Owner:    owner,
		Spender:  to.ToLower(),
		ItemId:   domain.CopyBig(id),
		Approved: !to.IsEmpty(),
	})
	return nil
}

func (e *Erc721) SetApprovalForAll(tx *ledger.Tx, operator domain.Address, approved bool) error {
	if operator.ToLower() == tx.Caller() {
		return domain.ErrBadParamInput
	}
	e.operators.Set(tx, operatorKey{tx.Caller(), operator.ToLower()}, approved)
	tx.Emit(asset.ApprovalEvent{
		Owner:    tx.Caller(),
		Spender:  operator.ToLower(),
		Approved: approved,
	})
	return nil
}

func (e *Erc721) TransferFrom(tx *ledger.Tx, from, to domain.Address, id *big.Int) error {
	owner, err := e.OwnerOf(tx, id)
	if err != nil {
		return err
	}
	from = from.ToLower()
	if owner != from {
		return domain.ErrNotAllowed
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	caller := tx.Caller()
	if caller != owner && e.GetApproved(tx, id) != caller && !e.IsApprovedForAll(tx, owner, caller) {
		return domain.ErrNotAllowed
	}

	to = to.ToLower()
	e.approvals.Delete(tx, id.String())
	e.decBalance(tx, from)
	e.incBalance(tx, to)
	e.owners.Set(tx, id.String(), to)
	tx.Emit(asset.TransferEvent{
		Operator: caller,
		From:     from,
		To:       to,
		ItemId:   domain.CopyBig(id),
		Amount:   big.NewInt(1),
	})
	return nil
}

// SafeTransferFrom also requires a contract recipient to accept the item
func (e *Erc721) SafeTransferFrom(tx *ledger.Tx, from, to domain.Address, id *big.Int) error {
	if err := e.TransferFrom(tx, from, to, id); err != nil {
		return err
	}
	return e.checkReceived(tx, from, to, id)
}

func (e *Erc721) Mint(tx *ledger.Tx, to domain.Address, id *big.Int) error {
	if tx.Caller() != e.minter {
		return domain.ErrNotAllowed
	}
	if id == nil || id.Sign() < 0 {
		return domain.ErrBadParamInput
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if e.Exists(tx, id) {
		return domain.ErrBadParamInput
	}
	to = to.ToLower()
	e.incBalance(tx, to)
	e.owners.Set(tx, id.String(), to)
	tx.Emit(asset.TransferEvent{
		Operator: tx.Caller(),
		From:     domain.EmptyAddress,
		To:       to,
		ItemId:   domain.CopyBig(id),
		Amount:   big.NewInt(1),
	})
	return nil
}

func (e *Erc721) Burn(tx *ledger.Tx, id *big.Int) error {
	if tx.Caller() != e.minter {
		return domain.ErrNotAllowed
	}
	owner, err := e.OwnerOf(tx, id)
	if err != nil {
		return err
	}
	e.approvals.Delete(tx, id.String())
	e.decBalance(tx, owner)
	e.owners.Delete(tx, id.String())
	tx.Emit(asset.TransferEvent{
		Operator: tx.Caller(),
		From:     owner,
		To:       domain.EmptyAddress,
		ItemId:   domain.CopyBig(id),
		Amount:   big.NewInt(1),
	})
	return nil
}

// RoyaltyInfo is salePrice * bps / 10000 paid to the configured receiver
func (e *Erc721) RoyaltyInfo(tx *ledger.Tx, id, salePrice *big.Int) (domain.Address, *big.Int, error) {
	if e.royaltyReceiver.IsEmpty() {
		return domain.EmptyAddress, new(big.Int), nil
	}
	amount := new(big.Int).Mul(domain.CopyBig(salePrice), big.NewInt(int64(e.royaltyBps)))
	amount.Div(amount, big.NewInt(royaltyDenominator))
	return e.royaltyReceiver, amount, nil
}

func (e *Erc721) checkReceived(tx *ledger.Tx, from, to domain.Address, id *big.Int) error {
	if !tx.IsContract(to) {
		return nil
	}
	c, err := tx.Contract(to)
	if err != nil {
		return err
	}
	receiver, ok := c.(asset.UniqueReceiver)
	if !ok {
		return domain.ErrReceiverRejected
	}
	operator := tx.Caller()
	if err := tx.Call(to, func(sub *ledger.Tx) error {
		return receiver.OnERC721Received(sub, operator, from.ToLower(), domain.CopyBig(id))
	}); err != nil {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrReceiverRejected)
	}
	return nil
}

func (e *Erc721) incBalance(tx *ledger.Tx, owner domain.Address) {
	n, _ := e.balances.Get(owner)
	e.balances.Set(tx, owner, n+1)
}

func (e *Erc721) decBalance(tx *ledger.Tx, owner domain.Address) {
	n, _ := e.balances.Get(owner)
	if n > 0 {
		e.balances.Set(tx, owner, n-1)
	}
}
