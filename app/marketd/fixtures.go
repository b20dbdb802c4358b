package main

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	erc1155 "github.com/x-xyz/gomarket/stores/erc1155/contract"
	erc20 "github.com/x-xyz/gomarket/stores/erc20/contract"
	erc721 "github.com/x-xyz/gomarket/stores/erc721/contract"
)

// mintFixture amounts are decimal strings scaled by the token decimals
type mintFixture struct {
	To     string `mapstructure:"to"`
	ItemId string `mapstructure:"itemId"`
	Amount string `mapstructure:"amount"`
}

type tokenFixture struct {
	Standard        string        `mapstructure:"standard"`
	Name            string        `mapstructure:"name"`
	Symbol          string        `mapstructure:"symbol"`
	Decimals        uint8         `mapstructure:"decimals"`
	Uri             string        `mapstructure:"uri"`
	RoyaltyReceiver string        `mapstructure:"royaltyReceiver"`
	RoyaltyBps      uint16        `mapstructure:"royaltyBps"`
	Mints           []mintFixture `mapstructure:"mints"`
}

type minter interface {
	mint(tx *ledger.Tx, to domain.Address, itemId, amount *big.Int) error
}

type erc20Minter struct{ *erc20.Erc20 }

func (m erc20Minter) mint(tx *ledger.Tx, to domain.Address, _, amount *big.Int) error {
	return m.Mint(tx, to, amount)
}

type erc721Minter struct{ *erc721.Erc721 }

func (m erc721Minter) mint(tx *ledger.Tx, to domain.Address, itemId, _ *big.Int) error {
	return m.Mint(tx, to, itemId)
}

type erc1155Minter struct{ *erc1155.Erc1155 }

func (m erc1155Minter) mint(tx *ledger.Tx, to domain.Address, itemId, amount *big.Int) error {
	return m.Mint(tx, to, itemId, amount)
}

// parseAccount accepts a hex address or a devnet account label
func parseAccount(s string) domain.Address {
	if addr, err := ledger.ParseAddress(s); err == nil {
		return addr
	}
	return ledger.AccountAddress(s)
}

func (f *tokenFixture) deploy(l *ledger.Ledger, operator domain.Address) (domain.Address, minter, error) {
	switch strings.ToLower(f.Standard) {
	case "erc20":
		addr, c := l.Deploy(operator, erc20.NewErc20(&erc20.Erc20Cfg{
			Name:     f.Name,
			Symbol:   f.Symbol,
			Decimals: f.Decimals,
			Minter:   operator,
		}))
		return addr, erc20Minter{c.(*erc20.Erc20)}, nil
	case "erc721":
		cfg := &erc721.Erc721Cfg{
			Name:   f.Name,
			Symbol: f.Symbol,
			Minter: operator,
		}
		if f.RoyaltyReceiver != "" {
			cfg.RoyaltyReceiver = parseAccount(f.RoyaltyReceiver)
			cfg.RoyaltyBps = f.RoyaltyBps
		}
		addr, c := l.Deploy(operator, erc721.NewErc721(cfg))
		return addr, erc721Minter{c.(*erc721.Erc721)}, nil
	case "erc1155":
		addr, c := l.Deploy(operator, erc1155.NewErc1155(&erc1155.Erc1155Cfg{
			Uri:    f.Uri,
			Minter: operator,
		}))
		return addr, erc1155Minter{c.(*erc1155.Erc1155)}, nil
	}
	return "", nil, xerrors.Errorf("token standard %q: %w", f.Standard, domain.ErrUnsupportedAssetClass)
}

func (m *mintFixture) parse(decimals uint8) (domain.Address, *big.Int, *big.Int, error) {
	var itemId, amount *big.Int
	if m.ItemId != "" {
		v, ok := new(big.Int).SetString(m.ItemId, 10)
		if !ok {
			return "", nil, nil, xerrors.Errorf("itemId %q: %w", m.ItemId, domain.ErrInvalidNumberFormat)
		}
		itemId = v
	}
	if m.Amount != "" {
		d, err := decimal.NewFromString(m.Amount)
		if err != nil {
			return "", nil, nil, xerrors.Errorf("amount %q: %w", m.Amount, domain.ErrInvalidNumberFormat)
		}
		amount = d.Shift(int32(decimals)).BigInt()
	}
	return parseAccount(m.To), itemId, amount, nil
}

// deployFixtures deploys every fixture as operator and runs its mints, it
// returns the token addresses in fixture order
func deployFixtures(c ctx.Ctx, l *ledger.Ledger, operator domain.Address, fixtures []tokenFixture) ([]domain.Address, error) {
	res := make([]domain.Address, 0, len(fixtures))
	for i := range fixtures {
		f := &fixtures[i]
		addr, m, err := f.deploy(l, operator)
		if err != nil {
			return nil, err
		}
		for j := range f.Mints {
			to, itemId, amount, err := f.Mints[j].parse(f.Decimals)
			if err != nil {
				return nil, err
			}
			if _, err := l.Execute(c, operator, addr, func(tx *ledger.Tx) error {
				return m.mint(tx, to, itemId, amount)
			}); err != nil {
				return nil, xerrors.Errorf("mint %s to %s: %w", f.Symbol, to, err)
			}
		}
		c.WithFields(log.Fields{
			"standard": f.Standard,
			"symbol":   f.Symbol,
			"address":  addr,
			"mints":    len(f.Mints),
		}).Info("token fixture deployed")
		res = append(res, addr)
	}
	return res, nil
}
