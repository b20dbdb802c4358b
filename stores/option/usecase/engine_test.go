package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
	"github.com/x-xyz/gomarket/domain/listing"
	"github.com/x-xyz/gomarket/domain/option"
	assetUsecase "github.com/x-xyz/gomarket/stores/asset/usecase"
	erc1155 "github.com/x-xyz/gomarket/stores/erc1155/contract"
	erc20 "github.com/x-xyz/gomarket/stores/erc20/contract"
	erc721 "github.com/x-xyz/gomarket/stores/erc721/contract"
	listingRepository "github.com/x-xyz/gomarket/stores/listing/repository"
	listingUsecase "github.com/x-xyz/gomarket/stores/listing/usecase"
	"github.com/x-xyz/gomarket/stores/option/repository"
)

const expiry = uint64(2000)

type plain struct{}

type engineSuite struct {
	suite.Suite

	ctx    bCtx.Ctx
	clock  *ledger.ManualClock
	ledger *ledger.Ledger
	im     option.UseCase

	engineA   domain.Address
	registryA domain.Address
	registry  *erc721.Erc721

	deployer domain.Address
	writer   domain.Address
	bob      domain.Address
	carol    domain.Address

	coinA  domain.Address
	coin   *erc20.Erc20
	artA   domain.Address
	art    *erc721.Erc721
	multiA domain.Address
	multi  *erc1155.Erc1155
	plainA domain.Address
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(engineSuite))
}

func (s *engineSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.clock = ledger.NewManualClock(1000)
	s.ledger = ledger.New(s.clock)

	s.deployer = ledger.AccountAddress("deployer")
	s.writer = ledger.AccountAddress("writer")
	s.bob = ledger.AccountAddress("bob")
	s.carol = ledger.AccountAddress("carol")

	var c interface{}
	s.engineA, c = s.ledger.Deploy(s.deployer, NewEngine(&EngineCfg{
		Repo:       repository.NewOptionRepo(),
		Dispatcher: assetUsecase.NewDispatcher(),
		Admin:      s.deployer,
	}))
	eng := c.(option.Engine)
	s.registryA, c = s.ledger.Deploy(s.deployer, erc721.NewErc721(&erc721.Erc721Cfg{Name: "Option", Symbol: "OPT", Minter: s.engineA}))
	s.registry = c.(*erc721.Erc721)
	s.exec(s.deployer, s.engineA, func(tx *ledger.Tx) error {
		return eng.SetRegistry(tx, s.registryA)
	})
	s.im = NewOptionUseCase(&OptionUseCaseCfg{
		Ledger:  s.ledger,
		Address: s.engineA,
		Engine:  eng,
	})

	s.coinA, c = s.ledger.Deploy(s.deployer, erc20.NewErc20(&erc20.Erc20Cfg{Name: "Coin", Symbol: "A", Decimals: 18, Minter: s.deployer}))
	s.coin = c.(*erc20.Erc20)
	s.artA, c = s.ledger.Deploy(s.deployer, erc721.NewErc721(&erc721.Erc721Cfg{Name: "Art", Symbol: "B", Minter: s.deployer}))
	s.art = c.(*erc721.Erc721)
	s.multiA, c = s.ledger.Deploy(s.deployer, erc1155.NewErc1155(&erc1155.Erc1155Cfg{Uri: "ipfs://multi/{id}", Minter: s.deployer}))
	s.multi = c.(*erc1155.Erc1155)
	s.plainA, _ = s.ledger.Deploy(s.deployer, func(self domain.Address) interface{} {
		return &plain{}
	})

	for _, a := range []domain.Address{s.writer, s.bob, s.carol} {
		account := a
		s.exec(s.deployer, s.coinA, func(tx *ledger.Tx) error {
			return s.coin.Mint(tx, account, big.NewInt(100))
		})
		s.exec(account, s.coinA, func(tx *ledger.Tx) error {
			return s.coin.Approve(tx, s.engineA, big.NewInt(100))
		})
		s.exec(account, s.artA, func(tx *ledger.Tx) error {
			return s.art.SetApprovalForAll(tx, s.engineA, true)
		})
		s.exec(account, s.multiA, func(tx *ledger.Tx) error {
			return s.multi.SetApprovalForAll(tx, s.engineA, true)
		})
	}
	s.exec(s.deployer, s.artA, func(tx *ledger.Tx) error {
		return s.art.Mint(tx, s.bob, big.NewInt(7))
	})
	s.exec(s.deployer, s.multiA, func(tx *ledger.Tx) error {
		return s.multi.Mint(tx, s.writer, big.NewInt(3), big.NewInt(50))
	})
}

func (s *engineSuite) exec(from, to domain.Address, fn func(tx *ledger.Tx) error) {
	_, err := s.ledger.Execute(s.ctx, from, to, fn)
	s.Require().NoError(err)
}

func (s *engineSuite) coinParams() option.MintParams {
	return option.MintParams{
		Category:    option.CategoryCall,
		WriterAsset: asset.Asset{Contract: s.coinA, Amount: big.NewInt(10)},
		OwnerAsset:  asset.Asset{Contract: s.artA, ItemId: big.NewInt(7)},
		Expiry:      expiry,
	}
}

func (s *engineSuite) mint(p option.MintParams) *option.View {
	v, err := s.im.Mint(s.ctx, s.writer, p)
	s.Require().NoError(err)
	return v
}

func (s *engineSuite) give(id uint64, from, to domain.Address) {
	s.exec(from, s.registryA, func(tx *ledger.Tx) error {
		return s.registry.TransferFrom(tx, from, to, new(big.Int).SetUint64(id))
	})
}

func (s *engineSuite) coinOf(owner domain.Address) int64 {
	var bal *big.Int
	s.Require().NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		bal = s.coin.BalanceOf(tx, owner)
		return nil
	}))
	return bal.Int64()
}

func (s *engineSuite) multiOf(owner domain.Address) int64 {
	var bal *big.Int
	s.Require().NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		bal = s.multi.BalanceOf(tx, owner, big.NewInt(3))
		return nil
	}))
	return bal.Int64()
}

func (s *engineSuite) artOwner(id int64) domain.Address {
	var owner domain.Address
	s.Require().NoError(s.ledger.View(s.ctx, func(tx *ledger.Tx) error {
		var err error
		owner, err = s.art.OwnerOf(tx, big.NewInt(id))
		return err
	}))
	return owner
}

func (s *engineSuite) TestExerciseAfterTransfer() {
	v := s.mint(s.coinParams())
	s.Equal(uint64(1), v.Id)
	s.Equal(option.StateActive, v.State)
	s.Equal(s.writer, v.Owner)
	s.Equal(s.writer, v.Writer)
	s.Equal(asset.ClassFungible, v.WriterAsset.Class)
	s.Equal(asset.ClassUnique, v.OwnerAsset.Class)
	s.Equal(int64(10), s.coinOf(s.engineA))
	s.Equal(int64(90), s.coinOf(s.writer))

	s.give(v.Id, s.writer, s.bob)
	_, err := s.im.Burn(s.ctx, s.writer, v.Id)
	s.ErrorIs(err, domain.ErrNotAllowed)

	s.clock.Set(expiry)
	done, err := s.im.Exercise(s.ctx, s.bob, v.Id)
	s.Require().NoError(err)
	s.Equal(option.StateBurned, done.State)
	s.Empty(done.Owner)
	s.Equal(s.writer, s.artOwner(7))
	s.Equal(int64(110), s.coinOf(s.bob))
	s.Equal(int64(0), s.coinOf(s.engineA))

	_, err = s.im.Exercise(s.ctx, s.bob, v.Id)
	s.ErrorIs(err, domain.ErrNotAllowed)
	_, err = s.im.Burn(s.ctx, s.bob, v.Id)
	s.ErrorIs(err, domain.ErrNotAllowed)
}

func (s *engineSuite) TestSequentialIds() {
	for i := uint64(1); i <= 3; i++ {
		p := s.coinParams()
		p.WriterAsset.Amount = big.NewInt(1)
		v := s.mint(p)
		s.Equal(i, v.Id)
		s.Equal(s.writer, v.Owner)
	}
	s.Equal(int64(97), s.coinOf(s.writer))
}

func (s *engineSuite) TestMintRejections() {
	p := s.coinParams()
	p.WriterAsset.Contract = s.plainA
	_, err := s.im.Mint(s.ctx, s.writer, p)
	s.ErrorIs(err, domain.ErrUnsupportedAssetClass)

	p = s.coinParams()
	p.OwnerAsset.Contract = s.plainA
	_, err = s.im.Mint(s.ctx, s.writer, p)
	s.ErrorIs(err, domain.ErrUnsupportedAssetClass)

	p = s.coinParams()
	p.WriterAsset.Amount = big.NewInt(101)
	_, err = s.im.Mint(s.ctx, s.writer, p)
	s.ErrorIs(err, domain.ErrInsufficientAllowance)

	s.clock.Set(expiry + 1)
	_, err = s.im.Mint(s.ctx, s.writer, s.coinParams())
	s.ErrorIs(err, domain.ErrExpired)

	// nothing was minted, escrowed or counted
	s.clock.Set(1000)
	v := s.mint(s.coinParams())
	s.Equal(uint64(1), v.Id)
	s.Equal(int64(10), s.coinOf(s.engineA))
}

func (s *engineSuite) TestExerciseExpired() {
	v := s.mint(s.coinParams())
	s.give(v.Id, s.writer, s.bob)

	s.clock.Set(expiry + 1)
	_, err := s.im.Exercise(s.ctx, s.bob, v.Id)
	s.ErrorIs(err, domain.ErrExpired)
	_, err = s.im.Exercise(s.ctx, s.carol, v.Id)
	s.ErrorIs(err, domain.ErrNotAllowed)
}

func (s *engineSuite) TestExerciseIsAtomic() {
	p := s.coinParams()
	p.OwnerAsset = asset.Asset{Contract: s.artA, ItemId: big.NewInt(8)}
	v := s.mint(p)
	s.give(v.Id, s.writer, s.bob)

	// bob does not own art #8, the owner leg fails
	_, err := s.im.Exercise(s.ctx, s.bob, v.Id)
	s.ErrorIs(err, domain.ErrTokenNotExist)

	got, err := s.im.FindOne(s.ctx, v.Id)
	s.Require().NoError(err)
	s.Equal(option.StateActive, got.State)
	s.Equal(s.bob, got.Owner)
	s.Equal(int64(10), s.coinOf(s.engineA))
	s.Equal(int64(100), s.coinOf(s.bob))
}

func (s *engineSuite) TestWriterBurnsEarly() {
	v := s.mint(s.coinParams())
	s.clock.Set(expiry)
	done, err := s.im.Burn(s.ctx, s.writer, v.Id)
	s.Require().NoError(err)
	s.Equal(option.StateBurned, done.State)
	s.Equal(int64(100), s.coinOf(s.writer))
	s.Equal(int64(0), s.coinOf(s.engineA))
}

func (s *engineSuite) TestOwnerBurnsAfterExpiry() {
	v := s.mint(s.coinParams())
	s.give(v.Id, s.writer, s.bob)

	s.clock.Set(expiry)
	_, err := s.im.Burn(s.ctx, s.bob, v.Id)
	s.ErrorIs(err, domain.ErrNotAllowed)

	s.clock.Set(expiry + 1)
	_, err = s.im.Burn(s.ctx, s.writer, v.Id)
	s.ErrorIs(err, domain.ErrNotAllowed)
	_, err = s.im.Burn(s.ctx, s.bob, v.Id)
	s.Require().NoError(err)

	// collateral always goes back to the writer
	s.Equal(int64(100), s.coinOf(s.writer))
	s.Equal(int64(100), s.coinOf(s.bob))
}

func (s *engineSuite) TestWriterRegainsEarlyBurn() {
	v := s.mint(s.coinParams())
	s.give(v.Id, s.writer, s.bob)
	s.give(v.Id, s.bob, s.writer)
	_, err := s.im.Burn(s.ctx, s.writer, v.Id)
	s.NoError(err)
}

func (s *engineSuite) TestCountedCollateral() {
	p := option.MintParams{
		Category:    option.CategoryPut,
		WriterAsset: asset.Asset{Contract: s.multiA, ItemId: big.NewInt(3), Amount: big.NewInt(20)},
		OwnerAsset:  asset.Asset{Contract: s.coinA, Amount: big.NewInt(25)},
		Expiry:      expiry,
	}
	v := s.mint(p)
	s.Equal(asset.ClassCountedIdentified, v.WriterAsset.Class)
	s.Equal(int64(20), s.multiOf(s.engineA))
	s.Equal(int64(30), s.multiOf(s.writer))

	s.give(v.Id, s.writer, s.carol)
	_, err := s.im.Exercise(s.ctx, s.carol, v.Id)
	s.Require().NoError(err)
	s.Equal(int64(20), s.multiOf(s.carol))
	s.Equal(int64(0), s.multiOf(s.engineA))
	s.Equal(int64(75), s.coinOf(s.carol))
	s.Equal(int64(125), s.coinOf(s.writer))
}

func (s *engineSuite) TestUniqueCollateral() {
	p := option.MintParams{
		WriterAsset: asset.Asset{Contract: s.artA, ItemId: big.NewInt(7)},
		OwnerAsset:  asset.Asset{Contract: s.coinA, Amount: big.NewInt(40)},
		Expiry:      expiry,
	}
	v, err := s.im.Mint(s.ctx, s.bob, p)
	s.Require().NoError(err)
	s.Equal(int64(1), v.WriterAsset.Amount.Int64())
	s.Equal(s.engineA, s.artOwner(7))

	s.clock.Set(expiry + 1)
	_, err = s.im.Burn(s.ctx, s.bob, v.Id)
	s.Require().NoError(err)
	s.Equal(s.bob, s.artOwner(7))
}

func (s *engineSuite) TestRejectsUnsolicitedCollateral() {
	_, err := s.ledger.Execute(s.ctx, s.bob, s.artA, func(tx *ledger.Tx) error {
		return s.art.SafeTransferFrom(tx, s.bob, s.engineA, big.NewInt(7))
	})
	s.ErrorIs(err, domain.ErrReceiverRejected)
	s.Equal(s.bob, s.artOwner(7))
}

func (s *engineSuite) TestUnknownOption() {
	_, err := s.im.Exercise(s.ctx, s.bob, 42)
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.im.Burn(s.ctx, s.bob, 42)
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.im.FindOne(s.ctx, 42)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *engineSuite) TestSetRegistryOnce() {
	eng := s.im.(*optionUseCase).engine
	_, err := s.ledger.Execute(s.ctx, s.deployer, s.engineA, func(tx *ledger.Tx) error {
		return eng.SetRegistry(tx, s.artA)
	})
	s.ErrorIs(err, domain.ErrNotAllowed)

	registry, err := s.im.Registry(s.ctx)
	s.NoError(err)
	s.Equal(s.registryA, registry)
}

func (s *engineSuite) TestFindAll() {
	s.mint(s.coinParams())
	p := s.coinParams()
	p.Category = option.CategoryPut
	second := s.mint(p)
	s.give(second.Id, s.writer, s.bob)
	third := s.mint(s.coinParams())
	_, err := s.im.Burn(s.ctx, s.writer, third.Id)
	s.Require().NoError(err)

	all, err := s.im.FindAll(s.ctx, option.WithSort("-id"))
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal(uint64(3), all[0].Id)

	active, err := s.im.FindAll(s.ctx, option.WithState(option.StateActive))
	s.Require().NoError(err)
	s.Len(active, 2)

	owned, err := s.im.FindAll(s.ctx, option.WithOwner(s.bob))
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.Equal(second.Id, owned[0].Id)

	puts, err := s.im.FindAll(s.ctx, option.WithCategory(option.CategoryPut))
	s.Require().NoError(err)
	s.Len(puts, 1)
}

// option tokens trade on the marketplace like any unique asset
func (s *engineSuite) TestListedOption() {
	v := s.mint(s.coinParams())

	marketA, c := s.ledger.Deploy(s.deployer, listingUsecase.NewMarketplace(&listingUsecase.MarketplaceCfg{
		Repo:       listingRepository.NewListingRepo(),
		Dispatcher: assetUsecase.NewDispatcher(),
	}))
	market := listingUsecase.NewListingUseCase(&listingUsecase.ListingUseCaseCfg{
		Ledger:      s.ledger,
		Address:     marketA,
		Marketplace: c.(listing.Marketplace),
	})
	s.exec(s.writer, s.registryA, func(tx *ledger.Tx) error {
		return s.registry.SetApprovalForAll(tx, marketA, true)
	})
	s.exec(s.carol, s.coinA, func(tx *ledger.Tx) error {
		return s.coin.Approve(tx, marketA, big.NewInt(100))
	})

	l, err := market.Create(s.ctx, s.writer, listing.CreateParams{
		Contract:      s.registryA,
		ItemId:        new(big.Int).SetUint64(v.Id),
		Deadline:      1500,
		WantAsset:     s.coinA,
		InstaBuyPrice: big.NewInt(50),
		BaseBid:       big.NewInt(5),
	})
	s.Require().NoError(err)
	_, err = market.Bid(s.ctx, s.carol, l.Id, big.NewInt(8))
	s.Require().NoError(err)
	s.clock.Set(1500)
	_, err = market.Claim(s.ctx, s.carol, l.Id)
	s.Require().NoError(err)

	got, err := s.im.FindOne(s.ctx, v.Id)
	s.Require().NoError(err)
	s.Equal(s.carol, got.Owner)

	// the writer sold the token and lost its early burn
	_, err = s.im.Burn(s.ctx, s.writer, v.Id)
	s.ErrorIs(err, domain.ErrNotAllowed)
	s.Equal(int64(98), s.coinOf(s.writer))
}
