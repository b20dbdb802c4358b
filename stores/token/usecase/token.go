package usecase

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
	"github.com/x-xyz/gomarket/domain/token"
)

type metadata interface {
	Name() string
	Symbol() string
}

type decimals interface {
	Decimals() uint8
}

type allowance interface {
	Approve(tx *ledger.Tx, spender domain.Address, amount *big.Int) error
}

type operator interface {
	SetApprovalForAll(tx *ledger.Tx, operator domain.Address, approved bool) error
}

type fungibleMinter interface {
	Mint(tx *ledger.Tx, to domain.Address, amount *big.Int) error
}

type uniqueMinter interface {
	Mint(tx *ledger.Tx, to domain.Address, id *big.Int) error
}

type countedMinter interface {
	Mint(tx *ledger.Tx, to domain.Address, id, amount *big.Int) error
}

type TokenUseCaseCfg struct {
	Ledger     *ledger.Ledger
	Dispatcher asset.Dispatcher
	// Faucet is the minter of every token in Tokens
	Faucet domain.Address
	Tokens []domain.Address
}

type impl struct {
	ledger     *ledger.Ledger
	dispatcher asset.Dispatcher
	faucet     domain.Address
	tokens     []domain.Address
}

func NewTokenUseCase(cfg *TokenUseCaseCfg) token.UseCase {
	return &impl{
		ledger:     cfg.Ledger,
		dispatcher: cfg.Dispatcher,
		faucet:     cfg.Faucet.ToLower(),
		tokens:     cfg.Tokens,
	}
}

func (im *impl) FindAll(c ctx.Ctx) ([]*token.Info, error) {
	res := make([]*token.Info, 0, len(im.tokens))
	err := im.ledger.View(c, func(tx *ledger.Tx) error {
		for _, addr := range im.tokens {
			info, err := im.info(tx, addr)
			if err != nil {
				return err
			}
			res = append(res, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) info(tx *ledger.Tx, addr domain.Address) (*token.Info, error) {
	class, err := im.dispatcher.Resolve(tx, addr)
	if err != nil {
		return nil, err
	}
	c, _ := tx.Contract(addr)
	info := &token.Info{Address: addr.ToLower(), Class: class}
	if m, ok := c.(metadata); ok {
		info.Name, info.Symbol = m.Name(), m.Symbol()
	}
	if d, ok := c.(decimals); ok {
		info.Decimals = d.Decimals()
	}
	return info, nil
}

func (im *impl) Balance(c ctx.Ctx, tokenAddr, owner domain.Address, itemId *big.Int) (*token.Balance, error) {
	res := &token.Balance{Token: tokenAddr.ToLower(), Owner: owner.ToLower()}
	err := im.ledger.View(c, func(tx *ledger.Tx) error {
		info, err := im.info(tx, tokenAddr)
		if err != nil {
			return err
		}
		contract, _ := tx.Contract(tokenAddr)

		switch info.Class {
		case asset.ClassFungible:
			res.Amount = contract.(asset.Fungible).BalanceOf(tx, res.Owner)
		case asset.ClassUnique:
			if itemId == nil {
				return domain.ErrBadParamInput
			}
			res.ItemId, res.Amount = itemId, new(big.Int)
			if holder, err := contract.(asset.Unique).OwnerOf(tx, itemId); err == nil && holder == res.Owner {
				res.Amount.SetInt64(1)
			}
		case asset.ClassCountedIdentified:
			if itemId == nil {
				return domain.ErrBadParamInput
			}
			res.ItemId = itemId
			res.Amount = contract.(asset.CountedIdentified).BalanceOf(tx, res.Owner, itemId)
		}
		res.Amount = domain.CopyBig(res.Amount)
		res.Display = decimal.NewFromBigInt(res.Amount, -int32(info.Decimals)).String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Approve(c ctx.Ctx, caller, tokenAddr domain.Address, p token.ApproveParams) error {
	_, err := im.ledger.Execute(c, caller, tokenAddr, func(tx *ledger.Tx) error {
		class, err := im.dispatcher.Resolve(tx, tokenAddr)
		if err != nil {
			return err
		}
		contract, _ := tx.Contract(tokenAddr)

		// erc721 Approve matches allowance as well
		if t, ok := contract.(allowance); ok && class == asset.ClassFungible {
			if p.Amount == nil {
				return domain.ErrInvalidAmount
			}
			return t.Approve(tx, p.Spender.ToLower(), p.Amount)
		}
		if t, ok := contract.(operator); ok && class != asset.ClassFungible {
			return t.SetApprovalForAll(tx, p.Spender.ToLower(), p.Approved)
		}
		return domain.ErrUnsupportedAssetClass
	})
	if err != nil {
		c.WithFields(log.Fields{
			"token":  tokenAddr,
			"caller": caller,
			"err":    err,
		}).Warn("approve rejected")
	}
	return err
}

func (im *impl) Mint(c ctx.Ctx, tokenAddr domain.Address, p token.MintParams) error {
	_, err := im.ledger.Execute(c, im.faucet, tokenAddr, func(tx *ledger.Tx) error {
		class, err := im.dispatcher.Resolve(tx, tokenAddr)
		if err != nil {
			return err
		}
		contract, _ := tx.Contract(tokenAddr)
		to := p.To.ToLower()

		switch class {
		case asset.ClassFungible:
			if m, ok := contract.(fungibleMinter); ok {
				return m.Mint(tx, to, p.Amount)
			}
		case asset.ClassUnique:
			if m, ok := contract.(uniqueMinter); ok {
				return m.Mint(tx, to, p.ItemId)
			}
		case asset.ClassCountedIdentified:
			if m, ok := contract.(countedMinter); ok {
				return m.Mint(tx, to, p.ItemId, p.Amount)
			}
		}
		return domain.ErrNotAllowed
	})
	if err != nil {
		c.WithFields(log.Fields{
			"token": tokenAddr,
			"to":    p.To,
			"err":   err,
		}).Warn("mint rejected")
	}
	return err
}
