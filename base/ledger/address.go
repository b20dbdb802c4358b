package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/gomarket/domain"
)

// AccountAddress derives a stable externally owned address from a label,
// used for devnet fixtures and tests.
func AccountAddress(label string) domain.Address {
	return domain.Address(common.BytesToAddress(crypto.Keccak256([]byte(label))[12:]).Hex()).ToLower()
}

// ParseAddress validates a hex address and returns its lower case form
func ParseAddress(s string) (domain.Address, error) {
	if !common.IsHexAddress(s) {
		return "", domain.ErrInvalidAddress
	}
	return domain.Address(common.HexToAddress(s).Hex()).ToLower(), nil
}
