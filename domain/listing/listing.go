package listing

import (
	"math/big"
	"strings"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

type Status int8

const (
	StatusOpen Status = iota
	StatusSold
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusOpen:      "open",
	StatusSold:      "sold",
	StatusCancelled: "cancelled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for k, v := range statusNames {
		if v == strings.ToLower(string(text)) {
			*s = k
			return nil
		}
	}
	return domain.ErrBadParamInput
}

// Listing is an english auction of one unique asset paid in WantAsset
type Listing struct {
	Id            uint64         `json:"id"`
	Creator       domain.Address `json:"creator"`
	Asset         asset.Asset    `json:"asset"`
	Deadline      uint64         `json:"deadline"`
	WantAsset     domain.Address `json:"wantAsset"`
	InstaBuyPrice *big.Int       `json:"instaBuyPrice"`
	BaseBid       *big.Int       `json:"baseBid"`
	CurrentBid    *big.Int       `json:"currentBid"`
	CurrentBidder domain.Address `json:"currentBidder"`
	Status        Status         `json:"status"`

	// set once the listing is sold
	Buyer     domain.Address `json:"buyer,omitempty"`
	SalePrice *big.Int       `json:"salePrice,omitempty"`
}

func (l *Listing) Copy() *Listing {
	res := *l
	res.Asset = l.Asset.Copy()
	res.InstaBuyPrice = domain.CopyBig(l.InstaBuyPrice)
	res.BaseBid = domain.CopyBig(l.BaseBid)
	res.CurrentBid = domain.CopyBig(l.CurrentBid)
	if l.SalePrice != nil {
		res.SalePrice = domain.CopyBig(l.SalePrice)
	}
	return &res
}

// HasBid reports whether a bid is held in escrow
func (l *Listing) HasBid() bool {
	return l.CurrentBid != nil && l.CurrentBid.Sign() > 0 && !l.CurrentBidder.IsEmpty()
}

// CreateParams proposes a listing, the caller becomes its creator
type CreateParams struct {
	Contract      domain.Address `json:"contract" validate:"required,eth_addr"`
	ItemId        *big.Int       `json:"itemId" validate:"required,nonneg"`
	Deadline      uint64         `json:"deadline" validate:"required"`
	WantAsset     domain.Address `json:"wantAsset" validate:"required,eth_addr"`
	InstaBuyPrice *big.Int       `json:"instaBuyPrice" validate:"required,nonneg"`
	BaseBid       *big.Int       `json:"baseBid" validate:"required,nonneg"`
}

// Repo is the journaled marketplace state, every write must run inside a
// ledger transaction
type Repo interface {
	NextId(tx *ledger.Tx) uint64
	FindOne(tx *ledger.Tx, id uint64) (*Listing, error)
	FindAll(tx *ledger.Tx, optFns ...FindAllOptions) ([]*Listing, error)
	Store(tx *ledger.Tx, l *Listing)

	// ListedBy returns the open listing holding the item identified by key
	ListedBy(tx *ledger.Tx, key string) (uint64, bool)
	SetListed(tx *ledger.Tx, key string, id uint64)
	Unlist(tx *ledger.Tx, key string)
}

// Marketplace is the contract holding custody of listed items and bids
type Marketplace interface {
	asset.UniqueReceiver

	Create(tx *ledger.Tx, p CreateParams) (uint64, error)
	Cancel(tx *ledger.Tx, id uint64) error
	Bid(tx *ledger.Tx, id uint64, amount *big.Int) error
	Claim(tx *ledger.Tx, id uint64) error
	InstaBuy(tx *ledger.Tx, id uint64) error

	FindOne(tx *ledger.Tx, id uint64) (*Listing, error)
	FindAll(tx *ledger.Tx, optFns ...FindAllOptions) ([]*Listing, error)
}

// UseCase submits marketplace operations to the ledger on behalf of caller
type UseCase interface {
	Address() domain.Address

	Create(c ctx.Ctx, caller domain.Address, p CreateParams) (*Listing, error)
	Cancel(c ctx.Ctx, caller domain.Address, id uint64) (*Listing, error)
	Bid(c ctx.Ctx, caller domain.Address, id uint64, amount *big.Int) (*Listing, error)
	Claim(c ctx.Ctx, caller domain.Address, id uint64) (*Listing, error)
	InstaBuy(c ctx.Ctx, caller domain.Address, id uint64) (*Listing, error)

	FindOne(c ctx.Ctx, id uint64) (*Listing, error)
	FindAll(c ctx.Ctx, optFns ...FindAllOptions) ([]*Listing, error)
}
