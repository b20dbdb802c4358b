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

type holder struct {
	reject error
	got    []*big.Int
}

func (h *holder) OnERC721Received(tx *ledger.Tx, operator, from domain.Address, id *big.Int) error {
	if h.reject != nil {
		return h.reject
	}
	h.got = append(h.got, id)
	return nil
}

type erc721Suite struct {
	suite.Suite

	ctx     bCtx.Ctx
	ledger  *ledger.Ledger
	addr    domain.Address
	token   *Erc721
	minter  domain.Address
	artist  domain.Address
	alice   domain.Address
	bob     domain.Address
	carol   domain.Address
	holder  *holder
	holderA domain.Address
}

func TestErc721Suite(t *testing.T) {
	suite.Run(t, new(erc721Suite))
}

func (s *erc721Suite) SetupTest() {
	s.ctx = bCtx.Background()
	s.ledger = ledger.New(ledger.NewManualClock(100))
	s.minter = ledger.AccountAddress("minter")
	s.artist = ledger.AccountAddress("artist")
	s.alice = ledger.AccountAddress("alice")
	s.bob = ledger.AccountAddress("bob")
	s.carol = ledger.AccountAddress("carol")
	addr, c := s.ledger.Deploy(s.minter, NewErc721(&Erc721Cfg{
		Name:            "Punks",
		Symbol:          "PNK",
		Minter:          s.minter,
		RoyaltyReceiver: s.artist,
		RoyaltyBps:      250,
	}))
	s.addr = addr
	s.token = c.(*Erc721)
	s.holder = &holder{}
	s.holderA, _ = s.ledger.Deploy(s.minter, func(self domain.Address) interface{} { return s.holder })
	s.Require().NoError(s.exec(s.minter, func(tx *ledger.Tx) error {
		return s.token.Mint(tx, s.alice, big.NewInt(1))
	}))
}

func (s *erc721Suite) exec(from domain.Address, fn func(tx *ledger.Tx) error) error {
	_, err := s.ledger.Execute(s.ctx, from, s.addr, fn)
	return err
}

func (s *erc721Suite) ownerOf(id int64) domain.Address {
	var owner domain.Address
	_ = s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		owner, _ = s.token.OwnerOf(tx, big.NewInt(id))
		return nil
	})
	return owner
}

func (s *erc721Suite) TestSupportsInterface() {
	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.True(s.token.SupportsInterface(tx, asset.InterfaceIdERC165))
		s.True(s.token.SupportsInterface(tx, asset.InterfaceIdERC721))
		s.True(s.token.SupportsInterface(tx, asset.InterfaceIdERC2981))
		s.False(s.token.SupportsInterface(tx, asset.InterfaceIdERC20))
		return nil
	}))

	_, c := s.ledger.Deploy(s.minter, NewErc721(&Erc721Cfg{Minter: s.minter}))
	plain := c.(*Erc721)
	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.False(plain.SupportsInterface(tx, asset.InterfaceIdERC2981))
		return nil
	}))
}

func (s *erc721Suite) TestMint() {
	s.Equal(s.alice, s.ownerOf(1))

	err := s.exec(s.minter, func(tx *ledger.Tx) error {
		return s.token.Mint(tx, s.bob, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrBadParamInput)

	err = s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Mint(tx, s.alice, big.NewInt(2))
	})
	s.ErrorIs(err, domain.ErrNotAllowed)
}

func (s *erc721Suite) TestTransferFromOwner() {
	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.alice, s.bob, big.NewInt(1))
	}))
	s.Equal(s.bob, s.ownerOf(1))
	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.Equal(int64(0), s.token.BalanceOf(tx, s.alice).Int64())
		s.Equal(int64(1), s.token.BalanceOf(tx, s.bob).Int64())
		return nil
	}))
}

func (s *erc721Suite) TestTransferFromNotAllowed() {
	err := s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.alice, s.bob, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrNotAllowed)

	err = s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.bob, s.alice, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrNotAllowed)

	err = s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.alice, s.bob, big.NewInt(9))
	})
	s.ErrorIs(err, domain.ErrTokenNotExist)
}

func (s *erc721Suite) TestApprovedTransferClearsApproval() {
	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Approve(tx, s.bob, big.NewInt(1))
	}))
	s.NoError(s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.alice, s.carol, big.NewInt(1))
	}))
	s.Equal(s.carol, s.ownerOf(1))
	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.Empty(s.token.GetApproved(tx, big.NewInt(1)))
		return nil
	}))
}

func (s *erc721Suite) TestOperatorTransfer() {
	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SetApprovalForAll(tx, s.bob, true)
	}))
	s.NoError(s.exec(s.bob, func(tx *ledger.Tx) error {
		return s.token.TransferFrom(tx, s.alice, s.bob, big.NewInt(1))
	}))
	s.Equal(s.bob, s.ownerOf(1))
}

func (s *erc721Suite) TestSafeTransferToReceiver() {
	s.NoError(s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.holderA, big.NewInt(1))
	}))
	s.Equal(s.holderA, s.ownerOf(1))
	s.Require().Len(s.holder.got, 1)
	s.Equal(int64(1), s.holder.got[0].Int64())
}

func (s *erc721Suite) TestSafeTransferRejected() {
	s.holder.reject = errors.New("no thanks")
	err := s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.holderA, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrReceiverRejected)
	s.Equal(s.alice, s.ownerOf(1))
}

func (s *erc721Suite) TestSafeTransferToContractWithoutHook() {
	err := s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.SafeTransferFrom(tx, s.alice, s.addr, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrReceiverRejected)
	s.Equal(s.alice, s.ownerOf(1))
}

func (s *erc721Suite) TestBurn() {
	err := s.exec(s.alice, func(tx *ledger.Tx) error {
		return s.token.Burn(tx, big.NewInt(1))
	})
	s.ErrorIs(err, domain.ErrNotAllowed)

	s.NoError(s.exec(s.minter, func(tx *ledger.Tx) error {
		return s.token.Burn(tx, big.NewInt(1))
	}))
	s.Empty(s.ownerOf(1))
	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		s.False(s.token.Exists(tx, big.NewInt(1)))
		s.Equal(int64(0), s.token.BalanceOf(tx, s.alice).Int64())
		return nil
	}))
}

func (s *erc721Suite) TestRoyaltyInfo() {
	s.NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		receiver, amount, err := s.token.RoyaltyInfo(tx, big.NewInt(1), big.NewInt(200))
		s.Require().NoError(err)
		s.Equal(s.artist, receiver)
		s.Equal(int64(5), amount.Int64())
		return nil
	}))
}
