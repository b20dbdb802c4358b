package asset

import (
	"math/big"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
)

// Introspector answers ERC-165 capability probes
type Introspector interface {
	SupportsInterface(tx *ledger.Tx, id InterfaceId) bool
}

// Fungible is the amount denominated transfer protocol
type Fungible interface {
	BalanceOf(tx *ledger.Tx, owner domain.Address) *big.Int
	Transfer(tx *ledger.Tx, to domain.Address, amount *big.Int) error
	TransferFrom(tx *ledger.Tx, from, to domain.Address, amount *big.Int) error
}

// Unique is the single identified item transfer protocol
type Unique interface {
	OwnerOf(tx *ledger.Tx, id *big.Int) (domain.Address, error)
	SafeTransferFrom(tx *ledger.Tx, from, to domain.Address, id *big.Int) error
}

// CountedIdentified is the identified item with quantity transfer protocol
type CountedIdentified interface {
	BalanceOf(tx *ledger.Tx, owner domain.Address, id *big.Int) *big.Int
	SafeTransferFrom(tx *ledger.Tx, from, to domain.Address, id, amount *big.Int) error
}

// Royalty is the ERC-2981 royalty query
type Royalty interface {
	RoyaltyInfo(tx *ledger.Tx, id, salePrice *big.Int) (domain.Address, *big.Int, error)
}

// UniqueReceiver must be implemented by a contract receiving a unique item.
// Returning an error rejects the transfer.
type UniqueReceiver interface {
	OnERC721Received(tx *ledger.Tx, operator, from domain.Address, id *big.Int) error
}

// CountedReceiver must be implemented by a contract receiving counted items
type CountedReceiver interface {
	OnERC1155Received(tx *ledger.Tx, operator, from domain.Address, id, amount *big.Int) error
}

// Dispatcher resolves asset classes and routes transfers to the matching protocol
type Dispatcher interface {
	// Resolve probes contract in ProbeOrder, fails with ErrUnsupportedAssetClass
	Resolve(tx *ledger.Tx, contract domain.Address) (Class, error)
	// Transfer moves a from src to dst on behalf of the calling contract
	Transfer(tx *ledger.Tx, src, dst domain.Address, a Asset) error
	// RoyaltyInfo reports supported=false when contract has no royalty capability
	RoyaltyInfo(tx *ledger.Tx, contract domain.Address, itemId, salePrice *big.Int) (receiver domain.Address, amount *big.Int, supported bool, err error)
}
