package ownership

import (
	"math/big"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
)

// Registry is a transferable token ledger. Only its minter may Mint and Burn,
// everything else is the standard unique asset protocol.
type Registry interface {
	OwnerOf(tx *ledger.Tx, id *big.Int) (domain.Address, error)
	Exists(tx *ledger.Tx, id *big.Int) bool
	Mint(tx *ledger.Tx, to domain.Address, id *big.Int) error
	Burn(tx *ledger.Tx, id *big.Int) error
}
