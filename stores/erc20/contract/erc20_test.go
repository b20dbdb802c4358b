package contract

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

type erc20Suite struct {
	suite.Suite

	ctx    bCtx.Ctx
	ledger *ledger.Ledger
	addr   domain.Address
	token  *Erc20
	minter domain.Address
	alice  domain.Address
	bob    domain.Address
}

func TestErc20Suite(t *testing.T) {
	suite.Run(t, new(erc20Suite))
}

func (s *erc20Suite) SetupTest() {
	s.ctx = bCtx.Background()
	s.ledger = ledger.New(ledger.NewManualClock(100))
	s.minter = ledger.AccountAddress("minter")
	s.alice = ledger.AccountAddress("alice")
	s.bob = ledger.AccountAddress("bob")
	addr, c := s.ledger.Deploy(s.minter, NewErc20(&Erc20Cfg{
		Name:     "Wrapped Ether",
		Symbol:   "WETH",
		Decimals: 18,
		Minter:   s.minter,
	}))
	s.addr = addr
	s.token = c.(*Erc20)
	s.exec(s.minter, func(tx *ledger.Tx) error {
		return s.token.Mint(tx, s.alice, big.NewInt(1000))
	})
}

func (s *erc20Suite) exec(from domain.Address, fn func(tx *ledger.Tx) error) error {
	_, err := s.ledger.Execute(s.ctx, from, s.addr, fn)
	return err
}

func (s *erc20Suite) balance(owner domain.Address) int64 {
	var bal *big.Int
	s.Require().NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		bal = s.token.BalanceOf(tx, owner)
		return nil
	}))
	return bal.Int64()
}

func (s *erc20Suite) TestSupportsInterface() {
	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.True(s.token.SupportsInterface(tx, asset.InterfaceIdERC165))
		s.True(s.token.SupportsInterface(tx, asset.InterfaceIdERC20))
		s.False(s.token.SupportsInterface(tx, asset.InterfaceIdERC721))
		s.False(s.token.SupportsInterface(tx, asset.InterfaceIdERC1155))
		return nil
	}))
}

func (s *erc20Suite) TestMintOnlyMinter() {
	err := s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Mint(tx, s.alice, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrNotAllowed)
	s.Equal(int64(1000), s.balance(s.alice))

	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.Equal(int64(1000), s.token.TotalSupply(tx).Int64())
		return nil
	}))
}

func (s *erc20Suite) TestTransfer() {
	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Transfer(tx, s.bob, big.NewInt(300))
	}))
	s.Equal(int64(700), s.balance(s.alice))
	s.Equal(int64(300), s.balance(s.bob))

	err := s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.Transfer(tx, s.alice, big.NewInt(301))
	})
	s.ErrorIs(err, domain.ErrInsufficientBalance)
	s.Equal(int64(300), s.balance(s.bob))
}

func (s *erc20Suite) TestTransferZeroFromEmptyBalance() {
	s.NoError(s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.Transfer(tx, s.alice, big.NewInt(0))
	}))
}

func (s *erc20Suite) TestInvalidAmount() {
	err := s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Transfer(tx, s.bob, big.NewInt(-1))
	})
	s.ErrorIs(err, domain.ErrInvalidAmount)

	err = s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Approve(tx, s.bob, nil)
	})
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *erc20Suite) TestTransferFromSpendsAllowance() {
	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Approve(tx, s.bob, big.NewInt(500))
	}))

	s.NoError(s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.alice, s.bob, big.NewInt(200))
	}))
	s.Equal(int64(800), s.balance(s.alice))
	s.Equal(int64(200), s.balance(s.bob))

	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.Equal(int64(300), s.token.Allowance(tx, s.alice, s.bob).Int64())
		return nil
	}))

	err := s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.alice, s.bob, big.NewInt(301))
	})
	s.ErrorIs(err, domain.ErrInsufficientAllowance)
}

func (s *erc20Suite) TestTransferFromWithoutAllowance() {
	err := s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.alice, s.bob, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrInsufficientAllowance)
	s.Equal(int64(1000), s.balance(s.alice))
}

func (s *erc20Suite) TestEvents() {
	receipt, err := s.ledger.Execute(s.ctx, s.alice, s.addr, func(tx *ledger.Tx) error {
		return s.token.Transfer(tx, s.bob, big.NewInt(5))
	})
	s.Require().NoError(err)
	s.Require().Len(receipt.Logs, 1)
	ev, ok := receipt.Logs[0].Payload.(asset.TransferEvent)
	s.Require().True(ok)
	s.Equal(s.alice, ev.From)
	s.Equal(s.bob, ev.To)
	s.Equal(int64(5), ev.Amount.Int64())
}
