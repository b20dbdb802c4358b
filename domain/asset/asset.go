package asset

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/x-xyz/gomarket/domain"
)

// Class is the transfer protocol an asset contract implements
type Class int

const (
	ClassUnresolved Class = iota
	ClassFungible
	ClassUnique
	ClassCountedIdentified
)

var classNames = map[Class]string{
	ClassUnresolved:        "unresolved",
	ClassFungible:          "fungible",
	ClassUnique:            "unique",
	ClassCountedIdentified: "counted",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", int(c))
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(text []byte) error {
	for k, v := range classNames {
		if v == strings.ToLower(string(text)) {
			*c = k
			return nil
		}
	}
	return domain.ErrBadParamInput
}

// Asset references an amount of an item held by some asset contract.
// ItemId is ignored for fungible assets, Amount is 1 for unique ones.
type Asset struct {
	Class    Class          `json:"class"`
	Contract domain.Address `json:"contract"`
	ItemId   *big.Int       `json:"itemId"`
	Amount   *big.Int       `json:"amount"`
}

func (a Asset) Copy() Asset {
	return Asset{
		Class:    a.Class,
		Contract: a.Contract.ToLower(),
		ItemId:   domain.CopyBig(a.ItemId),
		Amount:   domain.CopyBig(a.Amount),
	}
}

// Key identifies the item regardless of amount
func (a Asset) Key() string {
	return fmt.Sprintf("%s/%s", a.Contract.ToLowerStr(), domain.CopyBig(a.ItemId).String())
}

// Resolved returns a copy tagged with class. Unique assets always move exactly
// one item and fungible assets carry no item id.
func (a Asset) Resolved(class Class) Asset {
	res := a.Copy()
	res.Class = class
	switch class {
	case ClassUnique:
		res.Amount = big.NewInt(1)
	case ClassFungible:
		res.ItemId = new(big.Int)
	}
	return res
}
