package contract

import (
	"math/big"
	"strconv"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/gomarket/base/abi"
	bCtx "github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/service/cache"
	"github.com/x-xyz/gomarket/service/chain"
)

// Probe is the asset class of a deployed contract and whether it reports
// royalties
type Probe struct {
	Class   asset.Class `json:"class"`
	Royalty bool        `json:"royalty"`
}

type Prober interface {
	Probe(ctx bCtx.Ctx, chainId int32, addr domain.Address) (*Probe, error)
	RoyaltyInfo(ctx bCtx.Ctx, chainId int32, addr domain.Address, tokenId, salePrice *big.Int) (domain.Address, *big.Int, error)
}

type prober struct {
	chainService chain.Client
	cache        cache.Service
	erc165       ethabi.ABI
	erc20        ethabi.ABI
}

// NewProber resolves contracts with the same interface priority as the
// in-process dispatcher. Probes are kept in cache when it is not nil.
func NewProber(chainService chain.Client, cache cache.Service) Prober {
	return &prober{
		chainService: chainService,
		cache:        cache,
		erc165:       baseabi.ERC165ABI,
		erc20:        baseabi.ERC20ABI,
	}
}

func (p *prober) Probe(ctx bCtx.Ctx, chainId int32, addr domain.Address) (*Probe, error) {
	if p.cache == nil {
		return p.probe(ctx, chainId, addr)
	}
	res := &Probe{}
	key := keys.RedisKey(strconv.Itoa(int(chainId)), addr.ToLowerStr())
	if err := p.cache.GetByFunc(ctx, key, res, func() (interface{}, error) {
		return p.probe(ctx, chainId, addr)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *prober) probe(ctx bCtx.Ctx, chainId int32, addr domain.Address) (*Probe, error) {
	supports := func(id asset.InterfaceId) (bool, error) {
		return p.supportsInterface(ctx, chainId, addr, id)
	}

	class, err := asset.ResolveClass(supports)
	if err == domain.ErrUnsupportedAssetClass && p.hasDecimals(ctx, chainId, addr) {
		// most fungible tokens predate ERC-165
		class, err = asset.ClassFungible, nil
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId": chainId,
			"addr":    addr,
		}).Info("contract class unresolved")
		return nil, err
	}

	royalty, _ := supports(asset.InterfaceIdERC2981)
	return &Probe{Class: class, Royalty: royalty}, nil
}

func (p *prober) RoyaltyInfo(ctx bCtx.Ctx, chainId int32, addr domain.Address, tokenId, salePrice *big.Int) (domain.Address, *big.Int, error) {
	probe, err := p.Probe(ctx, chainId, addr)
	if err != nil {
		return "", nil, err
	}
	if !probe.Royalty {
		return "", new(big.Int), nil
	}

	unpacked, err := p.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, p.erc165, "royaltyInfo", tokenId, salePrice)
	if err != nil {
		return "", nil, err
	}
	receiver := domain.Address(unpacked[0].(common.Address).Hex()).ToLower()
	amount := unpacked[1].(*big.Int)
	if amount.Sign() < 0 || amount.Cmp(salePrice) > 0 {
		return "", nil, domain.ErrInvalidRoyalty
	}
	return receiver, amount, nil
}

func (p *prober) supportsInterface(ctx bCtx.Ctx, chainId int32, addr domain.Address, id asset.InterfaceId) (bool, error) {
	unpacked, err := p.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, p.erc165, "supportsInterface", [4]byte(id))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (p *prober) hasDecimals(ctx bCtx.Ctx, chainId int32, addr domain.Address) bool {
	_, err := p.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, p.erc20, "decimals")
	return err == nil
}
