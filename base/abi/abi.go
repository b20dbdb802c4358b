package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	// ERC165ABI also carries royaltyInfo of ERC-2981, which is only called
	// after supportsInterface confirmed it
	ERC165ABI abi.ABI
	ERC20ABI  abi.ABI
)

var erc165ABIJson = `[
{"type":"function","name":"supportsInterface","stateMutability":"view","inputs":[{"type":"bytes4","name":"interfaceId"}],"outputs":[{"type":"bool"}]},
{"type":"function","name":"royaltyInfo","stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"},{"type":"uint256","name":"salePrice"}],"outputs":[{"type":"address","name":"receiver"},{"type":"uint256","name":"royaltyAmount"}]}
]`

var erc20ABIJson = `[
{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"type":"uint8"}]},
{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},
{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"type":"address","name":"owner"}],"outputs":[{"type":"uint256"}]}
]`

func init() {
	ERC165ABI = mustParse("erc165", erc165ABIJson)
	ERC20ABI = mustParse("erc20", erc20ABIJson)
}

func mustParse(name, raw string) abi.ABI {
	_abi, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("Failed to parse " + name + " abi")
	}
	return _abi
}
