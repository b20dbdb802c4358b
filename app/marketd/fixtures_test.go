package main

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	erc1155 "github.com/x-xyz/gomarket/stores/erc1155/contract"
	erc20 "github.com/x-xyz/gomarket/stores/erc20/contract"
	erc721 "github.com/x-xyz/gomarket/stores/erc721/contract"
)

func TestDeployFixtures(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	l := ledger.New(ledger.NewManualClock(100))
	operator := ledger.AccountAddress("operator")
	alice := ledger.AccountAddress("alice")
	bob := ledger.AccountAddress("bob")

	addrs, err := deployFixtures(c, l, operator, []tokenFixture{
		{
			Standard: "erc20",
			Name:     "Wrapped Ether",
			Symbol:   "WETH",
			Decimals: 18,
			Mints:    []mintFixture{{To: "alice", Amount: "1.5"}},
		},
		{
			Standard:        "ERC721",
			Name:            "Devnet Punks",
			Symbol:          "DPUNK",
			RoyaltyReceiver: "carol",
			RoyaltyBps:      500,
			Mints:           []mintFixture{{To: string(bob), ItemId: "3"}},
		},
		{
			Standard: "erc1155",
			Uri:      "https://devnet.local/{id}.json",
			Mints:    []mintFixture{{To: "alice", ItemId: "7", Amount: "10"}},
		},
	})
	req.NoError(err)
	req.Len(addrs, 3)

	req.NoError(l.View(c, func(tx *ledger.Tx) error {
		v, err := tx.Contract(addrs[0])
		req.NoError(err)
		want, _ := new(big.Int).SetString("1500000000000000000", 10)
		req.Equal(want, v.(*erc20.Erc20).BalanceOf(tx, alice))

		v, err = tx.Contract(addrs[1])
		req.NoError(err)
		owner, err := v.(*erc721.Erc721).OwnerOf(tx, big.NewInt(3))
		req.NoError(err)
		req.Equal(bob, owner)

		v, err = tx.Contract(addrs[2])
		req.NoError(err)
		req.Equal(big.NewInt(10), v.(*erc1155.Erc1155).BalanceOf(tx, alice, big.NewInt(7)))
		return nil
	}))
}

func TestDeployFixturesErrors(t *testing.T) {
	operator := ledger.AccountAddress("operator")
	tests := []struct {
		name     string
		fixtures []tokenFixture
		err      error
	}{
		{
			name:     "unknown standard",
			fixtures: []tokenFixture{{Standard: "erc777"}},
			err:      domain.ErrUnsupportedAssetClass,
		},
		{
			name:     "bad amount",
			fixtures: []tokenFixture{{Standard: "erc20", Mints: []mintFixture{{To: "alice", Amount: "ten"}}}},
			err:      domain.ErrInvalidNumberFormat,
		},
		{
			name:     "bad item id",
			fixtures: []tokenFixture{{Standard: "erc721", Mints: []mintFixture{{To: "alice", ItemId: "0x"}}}},
			err:      domain.ErrInvalidNumberFormat,
		},
		{
			name:     "minted twice",
			fixtures: []tokenFixture{{Standard: "erc721", Mints: []mintFixture{{To: "alice", ItemId: "1"}, {To: "bob", ItemId: "1"}}}},
			err:      domain.ErrBadParamInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New(ledger.NewManualClock(100))
			_, err := deployFixtures(ctx.Background(), l, operator, tt.fixtures)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseAccount(t *testing.T) {
	req := require.New(t)
	req.Equal(ledger.AccountAddress("alice"), parseAccount("alice"))
	addr := ledger.AccountAddress("bob")
	req.Equal(addr, parseAccount(string(addr)))
}
