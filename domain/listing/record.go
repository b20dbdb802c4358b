package listing

import (
	"math/big"
	"time"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

// Record is the mongo mirror of a committed listing, amounts are decimal strings
type Record struct {
	Id            uint64         `bson:"_id"`
	Creator       domain.Address `bson:"creator"`
	Contract      domain.Address `bson:"contract"`
	ItemId        string         `bson:"itemId"`
	Deadline      uint64         `bson:"deadline"`
	WantAsset     domain.Address `bson:"wantAsset"`
	InstaBuyPrice string         `bson:"instaBuyPrice"`
	BaseBid       string         `bson:"baseBid"`
	CurrentBid    string         `bson:"currentBid"`
	CurrentBidder domain.Address `bson:"currentBidder"`
	Status        Status         `bson:"status"`
	Buyer         domain.Address `bson:"buyer,omitempty"`
	SalePrice     string         `bson:"salePrice,omitempty"`
	Height        uint64         `bson:"height"`
	UpdatedAt     time.Time      `bson:"updatedAt"`
}

func ToRecord(l *Listing, meta *domain.LogMeta) *Record {
	r := &Record{
		Id:            l.Id,
		Creator:       l.Creator,
		Contract:      l.Asset.Contract,
		ItemId:        domain.CopyBig(l.Asset.ItemId).String(),
		Deadline:      l.Deadline,
		WantAsset:     l.WantAsset,
		InstaBuyPrice: domain.CopyBig(l.InstaBuyPrice).String(),
		BaseBid:       domain.CopyBig(l.BaseBid).String(),
		CurrentBid:    domain.CopyBig(l.CurrentBid).String(),
		CurrentBidder: l.CurrentBidder,
		Status:        l.Status,
		Buyer:         l.Buyer,
	}
	if l.SalePrice != nil {
		r.SalePrice = l.SalePrice.String()
	}
	if meta != nil {
		r.Height = meta.Height
		r.UpdatedAt = meta.Time
	}
	return r
}

func (r *Record) ToListing() (*Listing, error) {
	l := &Listing{
		Id:            r.Id,
		Creator:       r.Creator,
		Deadline:      r.Deadline,
		WantAsset:     r.WantAsset,
		CurrentBidder: r.CurrentBidder,
		Status:        r.Status,
		Buyer:         r.Buyer,
	}
	var ok bool
	var itemId *big.Int
	if itemId, ok = new(big.Int).SetString(r.ItemId, 10); !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	if l.InstaBuyPrice, ok = new(big.Int).SetString(r.InstaBuyPrice, 10); !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	if l.BaseBid, ok = new(big.Int).SetString(r.BaseBid, 10); !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	if l.CurrentBid, ok = new(big.Int).SetString(r.CurrentBid, 10); !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	if r.SalePrice != "" {
		if l.SalePrice, ok = new(big.Int).SetString(r.SalePrice, 10); !ok {
			return nil, domain.ErrInvalidNumberFormat
		}
	}
	l.Asset = asset.Asset{Contract: r.Contract, ItemId: itemId}.Resolved(asset.ClassUnique)
	return l, nil
}

// RecordRepo stores committed listings for external readers
type RecordRepo interface {
	Upsert(c ctx.Ctx, r *Record) error
	FindOne(c ctx.Ctx, id uint64) (*Record, error)
	FindAll(c ctx.Ctx, optFns ...FindAllOptions) ([]*Record, error)
}
