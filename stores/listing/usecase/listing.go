package usecase

import (
	"math/big"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/listing"
)

type ListingUseCaseCfg struct {
	Ledger      *ledger.Ledger
	Address     domain.Address
	Marketplace listing.Marketplace
	// RecordRepo serves FindAll when set, the ledger state is scanned otherwise
	RecordRepo listing.RecordRepo
}

type listingUseCase struct {
	ledger     *ledger.Ledger
	address    domain.Address
	market     listing.Marketplace
	recordRepo listing.RecordRepo
}

func NewListingUseCase(cfg *ListingUseCaseCfg) listing.UseCase {
	return &listingUseCase{
		ledger:     cfg.Ledger,
		address:    cfg.Address.ToLower(),
		market:     cfg.Marketplace,
		recordRepo: cfg.RecordRepo,
	}
}

func (im *listingUseCase) Address() domain.Address {
	return im.address
}

func (im *listingUseCase) Create(c ctx.Ctx, caller domain.Address, p listing.CreateParams) (*listing.Listing, error) {
	return im.execute(c, caller, "create", func(tx *ledger.Tx) (uint64, error) {
		return im.market.Create(tx, p)
	})
}

func (im *listingUseCase) Cancel(c ctx.Ctx, caller domain.Address, id uint64) (*listing.Listing, error) {
	return im.execute(c, caller, "cancel", func(tx *ledger.Tx) (uint64, error) {
		return id, im.market.Cancel(tx, id)
	})
}

func (im *listingUseCase) Bid(c ctx.Ctx, caller domain.Address, id uint64, amount *big.Int) (*listing.Listing, error) {
	return im.execute(c, caller, "bid", func(tx *ledger.Tx) (uint64, error) {
		return id, im.market.Bid(tx, id, amount)
	})
}

func (im *listingUseCase) Claim(c ctx.Ctx, caller domain.Address, id uint64) (*listing.Listing, error) {
	return im.execute(c, caller, "claim", func(tx *ledger.Tx) (uint64, error) {
		return id, im.market.Claim(tx, id)
	})
}

func (im *listingUseCase) InstaBuy(c ctx.Ctx, caller domain.Address, id uint64) (*listing.Listing, error) {
	return im.execute(c, caller, "instaBuy", func(tx *ledger.Tx) (uint64, error) {
		return id, im.market.InstaBuy(tx, id)
	})
}

func (im *listingUseCase) FindOne(c ctx.Ctx, id uint64) (*listing.Listing, error) {
	var res *listing.Listing
	if err := im.ledger.View(c, func(tx *ledger.Tx) error {
		var err error
		res, err = im.market.FindOne(tx, id)
		return err
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *listingUseCase) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptions) ([]*listing.Listing, error) {
	if im.recordRepo == nil {
		var res []*listing.Listing
		if err := im.ledger.View(c, func(tx *ledger.Tx) error {
			var err error
			res, err = im.market.FindAll(tx, optFns...)
			return err
		}); err != nil {
			c.WithField("err", err).Error("market.FindAll failed")
			return nil, err
		}
		return res, nil
	}

	records, err := im.recordRepo.FindAll(c, optFns...)
	if err != nil {
		c.WithField("err", err).Error("recordRepo.FindAll failed")
		return nil, err
	}
	res := make([]*listing.Listing, 0, len(records))
	for _, r := range records {
		l, err := r.ToListing()
		if err != nil {
			c.WithFields(log.Fields{
				"id":  r.Id,
				"err": err,
			}).Error("record.ToListing failed")
			return nil, err
		}
		res = append(res, l)
	}
	return res, nil
}

// execute runs op as one transaction and returns the listing it touched as
// committed by that transaction
func (im *listingUseCase) execute(c ctx.Ctx, caller domain.Address, op string, fn func(tx *ledger.Tx) (uint64, error)) (*listing.Listing, error) {
	var res *listing.Listing
	receipt, err := im.ledger.Execute(c, caller, im.address, func(tx *ledger.Tx) error {
		id, err := fn(tx)
		if err != nil {
			return err
		}
		res, err = im.market.FindOne(tx, id)
		return err
	})
	if err != nil {
		c.WithFields(log.Fields{
			"op":     op,
			"caller": caller,
			"err":    err,
		}).Warn("marketplace operation rejected")
		return nil, err
	}
	c.WithFields(log.Fields{
		"op":        op,
		"listingId": res.Id,
		"height":    receipt.Height,
	}).Info("marketplace operation committed")
	return res, nil
}
