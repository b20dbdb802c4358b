package asset

import (
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/gomarket/domain"
)

// InterfaceId is an ERC-165 interface identifier
type InterfaceId [4]byte

var (
	InterfaceIdERC165  = interfaceId("supportsInterface(bytes4)")
	InterfaceIdERC20   = interfaceId("totalSupply()", "balanceOf(address)", "transfer(address,uint256)", "transferFrom(address,address,uint256)", "approve(address,uint256)", "allowance(address,address)")
	InterfaceIdERC721  = interfaceId("balanceOf(address)", "ownerOf(uint256)", "safeTransferFrom(address,address,uint256,bytes)", "safeTransferFrom(address,address,uint256)", "transferFrom(address,address,uint256)", "approve(address,uint256)", "setApprovalForAll(address,bool)", "getApproved(uint256)", "isApprovedForAll(address,address)")
	InterfaceIdERC1155 = interfaceId("safeTransferFrom(address,address,uint256,uint256,bytes)", "safeBatchTransferFrom(address,address,uint256[],uint256[],bytes)", "balanceOf(address,uint256)", "balanceOfBatch(address[],uint256[])", "setApprovalForAll(address,bool)", "isApprovedForAll(address,address)")
	InterfaceIdERC2981 = interfaceId("royaltyInfo(uint256,uint256)")
)

// interfaceId xors the selectors of the given method signatures
func interfaceId(signatures ...string) InterfaceId {
	var id InterfaceId
	for _, sig := range signatures {
		selector := crypto.Keccak256([]byte(sig))[:4]
		for i := range id {
			id[i] ^= selector[i]
		}
	}
	return id
}

// Probe pairs a class with the interface that proves it
type Probe struct {
	Class       Class
	InterfaceId InterfaceId
}

// ProbeOrder is the fixed resolution priority, first supported interface wins
var ProbeOrder = []Probe{
	{Class: ClassFungible, InterfaceId: InterfaceIdERC20},
	{Class: ClassUnique, InterfaceId: InterfaceIdERC721},
	{Class: ClassCountedIdentified, InterfaceId: InterfaceIdERC1155},
}

// ResolveClass walks ProbeOrder with supports. A probe that errors counts as
// unsupported.
func ResolveClass(supports func(InterfaceId) (bool, error)) (Class, error) {
	for _, p := range ProbeOrder {
		ok, err := supports(p.InterfaceId)
		if err != nil || !ok {
			continue
		}
		return p.Class, nil
	}
	return ClassUnresolved, domain.ErrUnsupportedAssetClass
}
