package option

import (
	"math/big"
	"time"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

type AssetRecord struct {
	Class    asset.Class    `bson:"class"`
	Contract domain.Address `bson:"contract"`
	ItemId   string         `bson:"itemId"`
	Amount   string         `bson:"amount"`
}

// Record is the mongo mirror of an option, Owner is empty once burned
type Record struct {
	Id          uint64         `bson:"_id"`
	Category    Category       `bson:"category"`
	Writer      domain.Address `bson:"writer"`
	WriterAsset AssetRecord    `bson:"writerAsset"`
	OwnerAsset  AssetRecord    `bson:"ownerAsset"`
	Expiry      uint64         `bson:"expiry"`
	State       State          `bson:"state"`
	Owner       domain.Address `bson:"owner"`
	Height      uint64         `bson:"height"`
	UpdatedAt   time.Time      `bson:"updatedAt"`
}

func toAssetRecord(a asset.Asset) AssetRecord {
	return AssetRecord{
		Class:    a.Class,
		Contract: a.Contract.ToLower(),
		ItemId:   domain.CopyBig(a.ItemId).String(),
		Amount:   domain.CopyBig(a.Amount).String(),
	}
}

func (r AssetRecord) toAsset() (asset.Asset, error) {
	itemId, ok := new(big.Int).SetString(r.ItemId, 10)
	if !ok {
		return asset.Asset{}, domain.ErrInvalidNumberFormat
	}
	amount, ok := new(big.Int).SetString(r.Amount, 10)
	if !ok {
		return asset.Asset{}, domain.ErrInvalidNumberFormat
	}
	return asset.Asset{Class: r.Class, Contract: r.Contract, ItemId: itemId, Amount: amount}, nil
}

func ToRecord(v *View, meta *domain.LogMeta) *Record {
	r := &Record{
		Id:          v.Id,
		Category:    v.Category,
		Writer:      v.Writer,
		WriterAsset: toAssetRecord(v.WriterAsset),
		OwnerAsset:  toAssetRecord(v.OwnerAsset),
		Expiry:      v.Expiry,
		State:       v.State,
		Owner:       v.Owner.ToLower(),
	}
	if meta != nil {
		r.Height = meta.Height
		r.UpdatedAt = meta.Time
	}
	return r
}

func (r *Record) ToView() (*View, error) {
	writerAsset, err := r.WriterAsset.toAsset()
	if err != nil {
		return nil, err
	}
	ownerAsset, err := r.OwnerAsset.toAsset()
	if err != nil {
		return nil, err
	}
	return &View{
		Option: &Option{
			Id:          r.Id,
			Category:    r.Category,
			Writer:      r.Writer,
			WriterAsset: writerAsset,
			OwnerAsset:  ownerAsset,
			Expiry:      r.Expiry,
		},
		State: r.State,
		Owner: r.Owner,
	}, nil
}

// RecordRepo stores committed options for external readers
type RecordRepo interface {
	Upsert(c ctx.Ctx, r *Record) error
	FindOne(c ctx.Ctx, id uint64) (*Record, error)
	FindAll(c ctx.Ctx, optFns ...FindAllOptions) ([]*Record, error)
}
