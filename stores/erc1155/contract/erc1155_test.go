package contract

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

type vault struct {
	reject error
	amount *big.Int
}

func (v *vault) OnERC1155Received(tx *ledger.Tx, operator, from domain.Address, id, amount *big.Int) error {
	if v.reject != nil {
		return v.reject
	}
	v.amount = amount
	return nil
}

type erc1155Suite struct {
	suite.Suite

	ctx    bCtx.Ctx
	ledger *ledger.Ledger
	addr   domain.Address
	token  *Erc1155
	minter domain.Address
	alice  domain.Address
	bob    domain.Address
	vault  *vault
	vaultA domain.Address
	id     *big.Int
}

func TestErc1155Suite(t *testing.T) {
	suite.Run(t, new(erc1155Suite))
}

func (s *erc1155Suite) SetupTest() {
	s.ctx = bCtx.Background()
	s.ledger = ledger.New(ledger.NewManualClock(100))
	s.minter = ledger.AccountAddress("minter")
	s.alice = ledger.AccountAddress("alice")
	s.bob = ledger.AccountAddress("bob")
	s.id = big.NewInt(7)
	addr, c := s.ledger.Deploy(s.minter, NewErc1155(&Erc1155Cfg{Uri: "ipfs://items/{id}", Minter: s.minter}))
	s.addr = addr
	s.token = c.(*Erc1155)
	s.vault = &vault{}
	s.vaultA, _ = s.ledger.Deploy(s.minter, func(self domain.Address) interface{} { return s.vault })
	s.Require().NoError(s.exec(s.minter, func(tx *ledger.Tx) error {
		return s.token.Mint(tx, s.alice, s.id, big.NewInt(10))
	}))
}

func (s *erc1155Suite) exec(from domain.Address, fn func(tx *ledger.Tx) error) error {
	_, err := s.ledger.Execute(s.ctx, from, s.addr, fn)
	return err
}

func (s *erc1155Suite) balance(owner domain.Address) int64 {
	var bal *big.Int
	s.Require().NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		bal = s.token.BalanceOf(tx, owner, s.id)
		return nil
	}))
	return bal.Int64()
}

func (s *erc1155Suite) TestSupportsInterface() {
	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.True(s.token.SupportsInterface(tx, asset.InterfaceIdERC165))
		s.True(s.token.SupportsInterface(tx, asset.InterfaceIdERC1155))
		s.False(s.token.SupportsInterface(tx, asset.InterfaceIdERC721))
		s.False(s.token.SupportsInterface(tx, asset.InterfaceIdERC20))
		return nil
	}))
}

func (s *erc1155Suite) TestSafeTransferFrom() {
	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.bob, s.id, big.NewInt(4))
	}))
	s.Equal(int64(6), s.balance(s.alice))
	s.Equal(int64(4), s.balance(s.bob))

	err := s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.bob, s.id, big.NewInt(7))
	})
	s.ErrorIs(err, domain.ErrInsufficientBalance)
	s.Equal(int64(6), s.balance(s.alice))
}

func (s *erc1155Suite) TestOperator() {
	err := s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.bob, s.id, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrNotAllowed)

	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SetApprovalForAll(tx, s.bob, true)
	}))
	s.NoError(s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.bob, s.id, big.NewInt(1))
	}))
	s.Equal(int64(1), s.balance(s.bob))
}

func (s *erc1155Suite) TestReceiverHook() {
	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.vaultA, s.id, big.NewInt(3))
	}))
	s.Equal(int64(3), s.vault.amount.Int64())
	s.Equal(int64(3), s.balance(s.vaultA))

	s.vault.reject = errors.New("full")
	err := s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.vaultA, s.id, big.NewInt(3))
	})
	s.ErrorIs(err, domain.ErrReceiverRejected)
	s.Equal(int64(7), s.balance(s.alice))
	s.Equal(int64(3), s.balance(s.vaultA))
}

func (s *erc1155Suite) TestMintOnlyMinter() {
	err := s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Mint(tx, s.alice, s.id, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrNotAllowed)
	s.Equal(int64(10), s.balance(s.alice))
}
