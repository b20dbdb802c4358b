package option

import (
	"strings"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

// Category is informational, calls and puts settle the same way
type Category int8

const (
	CategoryCall Category = iota
	CategoryPut
)

var categoryNames = map[Category]string{
	CategoryCall: "call",
	CategoryPut:  "put",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for k, v := range categoryNames {
		if v == strings.ToLower(string(text)) {
			*c = k
			return nil
		}
	}
	return domain.ErrBadParamInput
}

// State is derived from the ownership registry, an option is active while
// its token exists
type State int8

const (
	StateActive State = iota
	StateBurned
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "burned"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "active":
		*s = StateActive
	case "burned":
		*s = StateBurned
	default:
		return domain.ErrBadParamInput
	}
	return nil
}

// Option lets the holder of token Id swap OwnerAsset for the escrowed
// WriterAsset until Expiry
type Option struct {
	Id          uint64         `json:"id"`
	Category    Category       `json:"category"`
	Writer      domain.Address `json:"writer"`
	WriterAsset asset.Asset    `json:"writerAsset"`
	OwnerAsset  asset.Asset    `json:"ownerAsset"`
	Expiry      uint64         `json:"expiry"`
}

func (o *Option) Copy() *Option {
	res := *o
	res.WriterAsset = o.WriterAsset.Copy()
	res.OwnerAsset = o.OwnerAsset.Copy()
	return &res
}

// MintParams proposes an option, asset classes are resolved at mint
type MintParams struct {
	Category    Category    `json:"category"`
	WriterAsset asset.Asset `json:"writerAsset"`
	OwnerAsset  asset.Asset `json:"ownerAsset"`
	Expiry      uint64      `json:"expiry" validate:"required"`
}

// Repo is the journaled option engine state
type Repo interface {
	NextId(tx *ledger.Tx) uint64
	FindOne(tx *ledger.Tx, id uint64) (*Option, error)
	FindAll(tx *ledger.Tx, optFns ...FindAllOptions) ([]*Option, error)
	Store(tx *ledger.Tx, o *Option)
}

// Engine is the contract escrowing writer assets. Each option is a token of
// the registry the engine mints into.
type Engine interface {
	asset.UniqueReceiver
	asset.CountedReceiver

	SetRegistry(tx *ledger.Tx, registry domain.Address) error
	Registry(tx *ledger.Tx) domain.Address

	Mint(tx *ledger.Tx, p MintParams) (uint64, error)
	Exercise(tx *ledger.Tx, id uint64) error
	Burn(tx *ledger.Tx, id uint64) error

	State(tx *ledger.Tx, id uint64) (State, error)
	OwnerOf(tx *ledger.Tx, id uint64) (domain.Address, error)
	FindOne(tx *ledger.Tx, id uint64) (*Option, error)
	FindAll(tx *ledger.Tx, optFns ...FindAllOptions) ([]*Option, error)
}

// View is an option together with its registry status
type View struct {
	*Option
	State State          `json:"state"`
	Owner domain.Address `json:"owner,omitempty"`
}

type UseCase interface {
	Address() domain.Address
	Registry(c ctx.Ctx) (domain.Address, error)

	Mint(c ctx.Ctx, caller domain.Address, p MintParams) (*View, error)
	Exercise(c ctx.Ctx, caller domain.Address, id uint64) (*View, error)
	Burn(c ctx.Ctx, caller domain.Address, id uint64) (*View, error)

	FindOne(c ctx.Ctx, id uint64) (*View, error)
	FindAll(c ctx.Ctx, optFns ...FindAllOptions) ([]*View, error)
}
