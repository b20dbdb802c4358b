package contract

import (
	"math/big"

	"golang.org/x/xerrors"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

type Erc1155Cfg struct {
	Uri string
	// Minter is the only account allowed to Mint
	Minter domain.Address
}

type balanceKey struct {
	owner domain.Address
	id    string
}

type operatorKey struct {
	owner    domain.Address
	operator domain.Address
}

// Erc1155 is a counted identified reference token
type Erc1155 struct {
	self   domain.Address
	uri    string
	minter domain.Address

	balances  *ledger.Map[balanceKey, *big.Int]
	operators *ledger.Map[operatorKey, bool]
}

func NewErc1155(cfg *Erc1155Cfg) ledger.Factory {
	return func(self domain.Address) interface{} {
		return &Erc1155{
			self:      self,
			uri:       cfg.Uri,
			minter:    cfg.Minter.ToLower(),
			balances:  ledger.NewMap[balanceKey, *big.Int](),
			operators: ledger.NewMap[operatorKey, bool](),
		}
	}
}

func (e *Erc1155) Address() domain.Address {
	return e.self
}

func (e *Erc1155) Uri() string {
	return e.uri
}

func (e *Erc1155) SupportsInterface(tx *ledger.Tx, id asset.InterfaceId) bool {
	return id == asset.InterfaceIdERC165 || id == asset.InterfaceIdERC1155
}

func (e *Erc1155) BalanceOf(tx *ledger.Tx, owner domain.Address, id *big.Int) *big.Int {
	bal, _ := e.balances.Get(balanceKey{owner.ToLower(), domain.CopyBig(id).String()})
	return domain.CopyBig(bal)
}

func (e *Erc1155) IsApprovedForAll(tx *ledger.Tx, owner, operator domain.Address) bool {
	ok, _ := e.operators.Get(operatorKey{owner.ToLower(), operator.ToLower()})
	return ok
}

func (e *Erc1155) SetApprovalForAll(tx *ledger.Tx, operator domain.Address, approved bool) error {
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

func (e *Erc1155) SafeTransferFrom(tx *ledger.Tx, from, to domain.Address, id, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 || id == nil {
		return domain.ErrInvalidAmount
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	from, to = from.ToLower(), to.ToLower()
	if tx.Caller() != from && !e.IsApprovedForAll(tx, from, tx.Caller()) {
		return domain.ErrNotAllowed
	}

	fromKey := balanceKey{from, id.String()}
	fromBal, _ := e.balances.Get(fromKey)
	if domain.CopyBig(fromBal).Cmp(amount) < 0 {
		return domain.ErrInsufficientBalance
	}
	e.balances.Set(tx, fromKey, new(big.Int).Sub(domain.CopyBig(fromBal), amount))
	toKey := balanceKey{to, id.String()}
	toBal, _ := e.balances.Get(toKey)
	e.balances.Set(tx, toKey, new(big.Int).Add(domain.CopyBig(toBal), amount))
	tx.Emit(asset.TransferEvent{
		Operator: tx.Caller(),
		From:     from,
		To:       to,
		ItemId:   domain.CopyBig(id),
		Amount:   domain.CopyBig(amount),
	})
	return e.checkReceived(tx, from, to, id, amount)
}

func (e *Erc1155) Mint(tx *ledger.Tx, to domain.Address, id, amount *big.Int) error {
	if tx.Caller() != e.minter {
		return domain.ErrNotAllowed
	}
	if amount == nil || amount.Sign() < 0 || id == nil {
		return domain.ErrInvalidAmount
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	key := balanceKey{to.ToLower(), id.String()}
	bal, _ := e.balances.Get(key)
	e.balances.Set(tx, key, new(big.Int).Add(domain.CopyBig(bal), amount))
	tx.Emit(asset.TransferEvent{
		Operator: tx.Caller(),
		From:     domain.EmptyAddress,
		To:       to.ToLower(),
		ItemId:   domain.CopyBig(id),
		Amount:   domain.CopyBig(amount),
	})
	return e.checkReceived(tx, domain.EmptyAddress, to.ToLower(), id, amount)
}

func (e *Erc1155) checkReceived(tx *ledger.Tx, from, to domain.Address, id, amount *big.Int) error {
	if !tx.IsContract(to) {
		return nil
	}
	c, err := tx.Contract(to)
	if err != nil {
		return err
	}
	receiver, ok := c.(asset.CountedReceiver)
	if !ok {
		return domain.ErrReceiverRejected
	}
	operator := tx.Caller()
	if err := tx.Call(to, func(sub *ledger.Tx) error {
		return receiver.OnERC1155Received(sub, operator, from, domain.CopyBig(id), domain.CopyBig(amount))
	}); err != nil {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrReceiverRejected)
	}
	return nil
}
