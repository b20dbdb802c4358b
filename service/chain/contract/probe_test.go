package contract

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	baseabi "github.com/x-xyz/gomarket/base/abi"
	bCtx "github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/service/cache"
	"github.com/x-xyz/gomarket/service/cache/provider/primitive"
	"github.com/x-xyz/gomarket/service/chain"
)

var errReverted = errors.New("execution reverted")

// fakeNode answers eth_call for a handful of contracts
type fakeNode struct {
	interfaces map[common.Address][]asset.InterfaceId
	decimals   map[common.Address]bool
	royalty    *big.Int
	calls      int
}

func (n *fakeNode) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	n.calls++
	method, err := baseabi.ERC165ABI.MethodById(msg.Data[:4])
	if err != nil {
		if bytes.Equal(msg.Data[:4], baseabi.ERC20ABI.Methods["decimals"].ID) && n.decimals[*msg.To] {
			return baseabi.ERC20ABI.Methods["decimals"].Outputs.Pack(uint8(18))
		}
		return nil, errReverted
	}

	switch method.Name {
	case "supportsInterface":
		args, err := method.Inputs.Unpack(msg.Data[4:])
		if err != nil {
			return nil, err
		}
		want := asset.InterfaceId(args[0].([4]byte))
		for _, id := range n.interfaces[*msg.To] {
			if id == want {
				return method.Outputs.Pack(true)
			}
		}
		return method.Outputs.Pack(false)
	case "royaltyInfo":
		return method.Outputs.Pack(common.HexToAddress("0xbeef"), n.royalty)
	}
	return nil, errReverted
}

var (
	artAddr   = common.HexToAddress("0x01")
	multiAddr = common.HexToAddress("0x02")
	coinAddr  = common.HexToAddress("0x03")
	eoaAddr   = common.HexToAddress("0x04")
)

type probeSuite struct {
	suite.Suite

	ctx    bCtx.Ctx
	node   *fakeNode
	prober Prober
}

func TestProbeSuite(t *testing.T) {
	suite.Run(t, new(probeSuite))
}

func (s *probeSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.node = &fakeNode{
		interfaces: map[common.Address][]asset.InterfaceId{
			artAddr:   {asset.InterfaceIdERC165, asset.InterfaceIdERC721, asset.InterfaceIdERC2981},
			multiAddr: {asset.InterfaceIdERC165, asset.InterfaceIdERC1155},
		},
		decimals: map[common.Address]bool{coinAddr: true},
		royalty:  big.NewInt(25),
	}
	client := chain.NewClientWith(map[int32]chain.ContractCaller{1: s.node})
	s.prober = NewProber(client, cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   keys.PfxProbe,
		Cache: primitive.NewPrimitive("probe", 1),
	}))
}

func addrOf(a common.Address) domain.Address {
	return domain.Address(a.Hex())
}

func (s *probeSuite) TestProbe() {
	tests := []struct {
		addr    common.Address
		class   asset.Class
		royalty bool
	}{
		{artAddr, asset.ClassUnique, true},
		{multiAddr, asset.ClassCountedIdentified, false},
		{coinAddr, asset.ClassFungible, false},
	}
	for _, tt := range tests {
		res, err := s.prober.Probe(s.ctx, 1, addrOf(tt.addr))
		s.Require().NoError(err, tt.addr.Hex())
		s.Equal(tt.class, res.Class, tt.addr.Hex())
		s.Equal(tt.royalty, res.Royalty, tt.addr.Hex())
	}

	_, err := s.prober.Probe(s.ctx, 1, addrOf(eoaAddr))
	s.ErrorIs(err, domain.ErrUnsupportedAssetClass)

	_, err = s.prober.Probe(s.ctx, 5, addrOf(artAddr))
	s.Error(err)
}

func (s *probeSuite) TestProbeIsCached() {
	_, err := s.prober.Probe(s.ctx, 1, addrOf(artAddr))
	s.Require().NoError(err)
	calls := s.node.calls

	res, err := s.prober.Probe(s.ctx, 1, addrOf(artAddr))
	s.Require().NoError(err)
	s.Equal(asset.ClassUnique, res.Class)
	s.Equal(calls, s.node.calls)
}

func (s *probeSuite) TestRoyaltyInfo() {
	receiver, amount, err := s.prober.RoyaltyInfo(s.ctx, 1, addrOf(artAddr), big.NewInt(7), big.NewInt(1000))
	s.Require().NoError(err)
	s.Equal(domain.Address("0x000000000000000000000000000000000000beef"), receiver)
	s.Equal(0, amount.Cmp(big.NewInt(25)))

	receiver, amount, err = s.prober.RoyaltyInfo(s.ctx, 1, addrOf(multiAddr), big.NewInt(7), big.NewInt(1000))
	s.Require().NoError(err)
	s.Empty(receiver)
	s.Equal(0, amount.Sign())

	s.node.royalty = big.NewInt(2000)
	_, _, err = s.prober.RoyaltyInfo(s.ctx, 1, addrOf(artAddr), big.NewInt(7), big.NewInt(1000))
	s.ErrorIs(err, domain.ErrInvalidRoyalty)
}
