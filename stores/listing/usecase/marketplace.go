package usecase

import (
	"math/big"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
	"github.com/x-xyz/gomarket/domain/listing"
)

type MarketplaceCfg struct {
	Repo       listing.Repo
	Dispatcher asset.Dispatcher
}

// marketplace holds custody of listed items and of the highest bid of each
// open listing. Every operation writes its state before the first transfer.
type marketplace struct {
	self       domain.Address
	repo       listing.Repo
	dispatcher asset.Dispatcher
	met        metrics.Service
}

func NewMarketplace(cfg *MarketplaceCfg) ledger.Factory {
	return func(self domain.Address) interface{} {
		return &marketplace{
			self:       self,
			repo:       cfg.Repo,
			dispatcher: cfg.Dispatcher,
			met:        metrics.New("marketplace"),
		}
	}
}

func (im *marketplace) Create(tx *ledger.Tx, p listing.CreateParams) (uint64, error) {
	if p.ItemId == nil || p.ItemId.Sign() < 0 {
		return 0, domain.ErrBadParamInput
	}
	if !validPrice(p.BaseBid) || !validPrice(p.InstaBuyPrice) {
		return 0, domain.ErrInvalidAmount
	}
	if p.Contract.IsEmpty() || p.WantAsset.IsEmpty() {
		return 0, domain.ErrInvalidAddress
	}
	if p.Deadline < tx.Now() {
		return 0, domain.ErrExpired
	}

	item := asset.Asset{Contract: p.Contract, ItemId: p.ItemId}.Resolved(asset.ClassUnique)
	if id, ok := im.repo.ListedBy(tx, item.Key()); ok {
		tx.WithFields(log.Fields{
			"asset":     item.Key(),
			"listingId": id,
		}).Info("asset already listed")
		return 0, domain.ErrAlreadyListed
	}
	if class, err := im.dispatcher.Resolve(tx, p.WantAsset); err != nil {
		return 0, err
	} else if class != asset.ClassFungible {
		return 0, domain.ErrUnsupportedAssetClass
	}

	l := &listing.Listing{
		Id:            im.repo.NextId(tx),
		Creator:       tx.Caller(),
		Asset:         item,
		Deadline:      p.Deadline,
		WantAsset:     p.WantAsset.ToLower(),
		InstaBuyPrice: domain.CopyBig(p.InstaBuyPrice),
		BaseBid:       domain.CopyBig(p.BaseBid),
		CurrentBid:    new(big.Int),
		CurrentBidder: domain.EmptyAddress,
		Status:        listing.StatusOpen,
	}
	im.repo.SetListed(tx, item.Key(), l.Id)
	im.repo.Store(tx, l)
	tx.Emit(listing.CreatedEvent{Id: l.Id, Creator: l.Creator, Listing: l.Copy()})

	if err := im.dispatcher.Transfer(tx, l.Creator, im.self, l.Asset); err != nil {
		return 0, err
	}
	im.met.BumpSum("create.ok", 1)
	return l.Id, nil
}

func (im *marketplace) Cancel(tx *ledger.Tx, id uint64) error {
	l, err := im.repo.FindOne(tx, id)
	if err != nil {
		return err
	}
	if l.Status != listing.StatusOpen {
		return domain.ErrNotAvailable
	}
	if tx.Now() > l.Deadline {
		return domain.ErrExpired
	}
	if tx.Caller() != l.Creator {
		return domain.ErrNotAllowed
	}

	bidder, bid, hasBid := l.CurrentBidder, l.CurrentBid, l.HasBid()
	l.Status = listing.StatusCancelled
	l.CurrentBid = new(big.Int)
	l.CurrentBidder = domain.EmptyAddress
	im.repo.Store(tx, l)
	im.repo.Unlist(tx, l.Asset.Key())
	tx.Emit(listing.CancelledEvent{Id: l.Id, Creator: l.Creator, Listing: l.Copy()})

	if hasBid {
		if err := im.pay(tx, l.WantAsset, im.self, bidder, bid); err != nil {
			return err
		}
	}
	if err := im.dispatcher.Transfer(tx, im.self, l.Creator, l.Asset); err != nil {
		return err
	}
	im.met.BumpSum("cancel.ok", 1)
	return nil
}

// Bid refunds the outbid party before pulling the new bid. A refund that
// fails fails the bid.
func (im *marketplace) Bid(tx *ledger.Tx, id uint64, amount *big.Int) error {
	l, err := im.repo.FindOne(tx, id)
	if err != nil {
		return err
	}
	if l.Status != listing.StatusOpen {
		return domain.ErrNotAvailable
	}
	if tx.Now() > l.Deadline {
		return domain.ErrExpired
	}
	if amount == nil || amount.Cmp(l.BaseBid) <= 0 || amount.Cmp(l.CurrentBid) <= 0 {
		return domain.ErrBidTooLow
	}

	prevBidder, prevBid, hadBid := l.CurrentBidder, l.CurrentBid, l.HasBid()
	l.CurrentBid = domain.CopyBig(amount)
	l.CurrentBidder = tx.Caller()
	im.repo.Store(tx, l)
	tx.Emit(listing.BidPlacedEvent{Id: l.Id, Bidder: l.CurrentBidder, Amount: domain.CopyBig(amount), Listing: l.Copy()})

	if hadBid {
		if err := im.pay(tx, l.WantAsset, im.self, prevBidder, prevBid); err != nil {
			tx.WithFields(log.Fields{
				"listingId": l.Id,
				"bidder":    prevBidder,
				"err":       err,
			}).Warn("refund outbid bidder failed")
			return err
		}
	}
	if err := im.pay(tx, l.WantAsset, l.CurrentBidder, im.self, amount); err != nil {
		return err
	}
	im.met.BumpSum("bid.ok", 1)
	return nil
}

// Claim settles an auction once its deadline is reached, the highest bidder
// receives the item and the escrowed bid is paid out
func (im *marketplace) Claim(tx *ledger.Tx, id uint64) error {
	l, err := im.repo.FindOne(tx, id)
	if err != nil {
		return err
	}
	if tx.Now() < l.Deadline {
		return domain.ErrNotYetExpired
	}
	if l.Status != listing.StatusOpen {
		return domain.ErrNotAvailable
	}
	if !l.HasBid() || tx.Caller() != l.CurrentBidder {
		return domain.ErrNotAllowed
	}

	price := l.CurrentBid
	im.markSold(tx, l, tx.Caller(), price)

	receiver, royalty, err := im.payout(tx, l, im.self, price)
	if err != nil {
		return err
	}
	tx.Emit(listing.SoldEvent{
		Id:              l.Id,
		Buyer:           l.Buyer,
		Price:           domain.CopyBig(price),
		RoyaltyReceiver: receiver,
		RoyaltyAmount:   royalty,
		Listing:         l.Copy(),
	})
	if err := im.dispatcher.Transfer(tx, im.self, l.Buyer, l.Asset); err != nil {
		return err
	}
	im.met.BumpSum("claim.ok", 1)
	return nil
}

// InstaBuy is only possible once the current bid exceeds the insta buy price.
// The buyer pays the insta buy price and the escrowed bid goes back to its bidder.
func (im *marketplace) InstaBuy(tx *ledger.Tx, id uint64) error {
	l, err := im.repo.FindOne(tx, id)
	if err != nil {
		return err
	}
	if l.Status != listing.StatusOpen {
		return domain.ErrNotAvailable
	}
	if tx.Now() > l.Deadline {
		return domain.ErrExpired
	}
	if l.CurrentBid.Cmp(l.InstaBuyPrice) <= 0 {
		return domain.ErrNotAllowed
	}

	bidder, bid, hasBid := l.CurrentBidder, l.CurrentBid, l.HasBid()
	price := domain.CopyBig(l.InstaBuyPrice)
	im.markSold(tx, l, tx.Caller(), price)

	if hasBid {
		if err := im.pay(tx, l.WantAsset, im.self, bidder, bid); err != nil {
			return err
		}
	}
	receiver, royalty, err := im.payout(tx, l, l.Buyer, price)
	if err != nil {
		return err
	}
	tx.Emit(listing.SoldEvent{
		Id:              l.Id,
		Buyer:           l.Buyer,
		Price:           domain.CopyBig(price),
		RoyaltyReceiver: receiver,
		RoyaltyAmount:   royalty,
		Listing:         l.Copy(),
	})
	if err := im.dispatcher.Transfer(tx, im.self, l.Buyer, l.Asset); err != nil {
		return err
	}
	im.met.BumpSum("instabuy.ok", 1)
	return nil
}

func (im *marketplace) FindOne(tx *ledger.Tx, id uint64) (*listing.Listing, error) {
	return im.repo.FindOne(tx, id)
}

func (im *marketplace) FindAll(tx *ledger.Tx, optFns ...listing.FindAllOptions) ([]*listing.Listing, error) {
	return im.repo.FindAll(tx, optFns...)
}

// OnERC721Received only accepts items the marketplace pulls itself
func (im *marketplace) OnERC721Received(tx *ledger.Tx, operator, from domain.Address, id *big.Int) error {
	if operator != im.self {
		return domain.ErrNotAllowed
	}
	return nil
}

func (im *marketplace) markSold(tx *ledger.Tx, l *listing.Listing, buyer domain.Address, price *big.Int) {
	l.Status = listing.StatusSold
	l.Buyer = buyer
	l.SalePrice = domain.CopyBig(price)
	l.CurrentBid = new(big.Int)
	l.CurrentBidder = domain.EmptyAddress
	im.repo.Store(tx, l)
	im.repo.Unlist(tx, l.Asset.Key())
}

// payout splits sale between the royalty receiver of the listed item, when
// its contract supports royalties, and the creator. The two shares always sum
// up to sale.
func (im *marketplace) payout(tx *ledger.Tx, l *listing.Listing, src domain.Address, sale *big.Int) (domain.Address, *big.Int, error) {
	receiver, royalty, supported, err := im.dispatcher.RoyaltyInfo(tx, l.Asset.Contract, l.Asset.ItemId, sale)
	if err != nil {
		return "", nil, err
	}
	if !supported {
		receiver, royalty = "", new(big.Int)
	}
	if royalty.Sign() < 0 || royalty.Cmp(sale) > 0 {
		tx.WithFields(log.Fields{
			"listingId": l.Id,
			"sale":      sale,
			"royalty":   royalty,
		}).Error("royalty out of range")
		return "", nil, domain.ErrInvalidRoyalty
	}

	if err := im.pay(tx, l.WantAsset, src, receiver, royalty); err != nil {
		return "", nil, err
	}
	if err := im.pay(tx, l.WantAsset, src, l.Creator, new(big.Int).Sub(sale, royalty)); err != nil {
		return "", nil, err
	}
	return receiver, royalty, nil
}

func (im *marketplace) pay(tx *ledger.Tx, token, src, dst domain.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	return im.dispatcher.Transfer(tx, src, dst, asset.Asset{Contract: token, Amount: amount}.Resolved(asset.ClassFungible))
}

func validPrice(v *big.Int) bool {
	return v != nil && v.Sign() >= 0
}
