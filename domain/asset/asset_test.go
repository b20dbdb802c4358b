package asset

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/gomarket/domain"
)

func TestInterfaceIds(t *testing.T) {
	req := require.New(t)
	cases := []struct {
		id   InterfaceId
		want string
	}{
		{InterfaceIdERC165, "01ffc9a7"},
		{InterfaceIdERC20, "36372b07"},
		{InterfaceIdERC721, "80ac58cd"},
		{InterfaceIdERC1155, "d9b67a26"},
		{InterfaceIdERC2981, "2a55205a"},
	}
	for _, c := range cases {
		req.Equal(c.want, hex.EncodeToString(c.id[:]))
	}
}

func TestResolveClass(t *testing.T) {
	req := require.New(t)
	supportsOnly := func(ids ...InterfaceId) func(InterfaceId) (bool, error) {
		return func(id InterfaceId) (bool, error) {
			for _, v := range ids {
				if v == id {
					return true, nil
				}
			}
			return false, nil
		}
	}

	class, err := ResolveClass(supportsOnly(InterfaceIdERC1155))
	req.NoError(err)
	req.Equal(ClassCountedIdentified, class)

	// fixed priority, fungible beats unique beats counted
	class, err = ResolveClass(supportsOnly(InterfaceIdERC1155, InterfaceIdERC721, InterfaceIdERC20))
	req.NoError(err)
	req.Equal(ClassFungible, class)

	class, err = ResolveClass(supportsOnly(InterfaceIdERC1155, InterfaceIdERC721))
	req.NoError(err)
	req.Equal(ClassUnique, class)

	_, err = ResolveClass(supportsOnly(InterfaceIdERC2981))
	req.ErrorIs(err, domain.ErrUnsupportedAssetClass)

	calls := 0
	_, err = ResolveClass(func(InterfaceId) (bool, error) {
		calls++
		return false, errors.New("revert")
	})
	req.ErrorIs(err, domain.ErrUnsupportedAssetClass)
	req.Equal(len(ProbeOrder), calls)
}

func TestClassText(t *testing.T) {
	req := require.New(t)
	for _, c := range []Class{ClassFungible, ClassUnique, ClassCountedIdentified} {
		text, err := c.MarshalText()
		req.NoError(err)
		var back Class
		req.NoError(back.UnmarshalText(text))
		req.Equal(c, back)
	}
	var c Class
	req.ErrorIs(c.UnmarshalText([]byte("erc777")), domain.ErrBadParamInput)
}

func TestKey(t *testing.T) {
	req := require.New(t)
	a := Asset{Contract: "0xABC", ItemId: big.NewInt(7)}
	req.Equal("0xabc/7", a.Key())
	req.Equal("0xabc/0", Asset{Contract: "0xabc"}.Key())
}

func TestResolved(t *testing.T) {
	req := require.New(t)
	a := Asset{Contract: "0xABC", ItemId: big.NewInt(3), Amount: big.NewInt(5)}

	unique := a.Resolved(ClassUnique)
	req.Equal(ClassUnique, unique.Class)
	req.Equal(int64(1), unique.Amount.Int64())
	req.Equal(int64(3), unique.ItemId.Int64())
	req.Equal(domain.Address("0xabc"), unique.Contract)

	fungible := a.Resolved(ClassFungible)
	req.Equal(int64(5), fungible.Amount.Int64())
	req.Equal(int64(0), fungible.ItemId.Int64())

	counted := a.Resolved(ClassCountedIdentified)
	req.Equal(int64(5), counted.Amount.Int64())
	req.Equal(int64(3), counted.ItemId.Int64())

	req.Equal(int64(5), a.Amount.Int64())
}
