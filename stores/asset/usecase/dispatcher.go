package usecase

import (
	"math/big"

	"golang.org/x/xerrors"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
)

type dispatcherImpl struct {
	met metrics.Service
}

func NewDispatcher() asset.Dispatcher {
	return &dispatcherImpl{
		met: metrics.New("asset.dispatcher"),
	}
}

func (im *dispatcherImpl) Resolve(tx *ledger.Tx, contract domain.Address) (asset.Class, error) {
	class, err := asset.ResolveClass(func(id asset.InterfaceId) (bool, error) {
		return im.supports(tx, contract, id)
	})
	if err != nil {
		tx.WithField("contract", contract).Warn("asset.ResolveClass failed")
		im.met.BumpSum("resolve.unsupported", 1)
		return asset.ClassUnresolved, err
	}
	im.met.BumpSum("resolve.ok", 1, "class", class.String())
	return class, nil
}

func (im *dispatcherImpl) supports(tx *ledger.Tx, contract domain.Address, id asset.InterfaceId) (bool, error) {
	c, err := tx.Contract(contract)
	if err != nil {
		return false, err
	}
	introspector, ok := c.(asset.Introspector)
	if !ok {
		return false, nil
	}
	supported := false
	err = tx.Call(contract, func(sub *ledger.Tx) error {
		supported = introspector.SupportsInterface(sub, id)
		return nil
	})
	return supported, err
}

func (im *dispatcherImpl) Transfer(tx *ledger.Tx, src, dst domain.Address, a asset.Asset) error {
	c, err := tx.Contract(a.Contract)
	if err != nil {
		return err
	}
	src, dst = src.ToLower(), dst.ToLower()

	switch a.Class {
	case asset.ClassFungible:
		token, ok := c.(asset.Fungible)
		if !ok {
			return domain.ErrUnsupportedAssetClass
		}
		err = tx.Call(a.Contract, func(sub *ledger.Tx) error {
			if src == tx.Self() {
				return token.Transfer(sub, dst, domain.CopyBig(a.Amount))
			}
			return token.TransferFrom(sub, src, dst, domain.CopyBig(a.Amount))
		})
	case asset.ClassUnique:
		token, ok := c.(asset.Unique)
		if !ok {
			return domain.ErrUnsupportedAssetClass
		}
		err = tx.Call(a.Contract, func(sub *ledger.Tx) error {
			return token.SafeTransferFrom(sub, src, dst, domain.CopyBig(a.ItemId))
		})
	case asset.ClassCountedIdentified:
		token, ok := c.(asset.CountedIdentified)
		if !ok {
			return domain.ErrUnsupportedAssetClass
		}
		err = tx.Call(a.Contract, func(sub *ledger.Tx) error {
			return token.SafeTransferFrom(sub, src, dst, domain.CopyBig(a.ItemId), domain.CopyBig(a.Amount))
		})
	default:
		return domain.ErrUnsupportedAssetClass
	}

	if err != nil {
		tx.WithFields(log.Fields{
			"src":   src,
			"dst":   dst,
			"asset": a.Key(),
			"class": a.Class,
			"err":   err,
		}).Warn("asset transfer failed")
		im.met.BumpSum("transfer.failed", 1, "class", a.Class.String())
		return xerrors.Errorf("transfer %s: %w", a.Key(), err)
	}
	return nil
}

func (im *dispatcherImpl) RoyaltyInfo(tx *ledger.Tx, contract domain.Address, itemId, salePrice *big.Int) (domain.Address, *big.Int, bool, error) {
	supported, err := im.supports(tx, contract, asset.InterfaceIdERC2981)
	if err != nil || !supported {
		return domain.EmptyAddress, new(big.Int), false, nil
	}
	c, err := tx.Contract(contract)
	if err != nil {
		return domain.EmptyAddress, new(big.Int), false, nil
	}
	royalty, ok := c.(asset.Royalty)
	if !ok {
		return domain.EmptyAddress, new(big.Int), false, nil
	}

	var (
		receiver domain.Address
		amount   *big.Int
	)
	if err := tx.Call(contract, func(sub *ledger.Tx) error {
		var err error
		receiver, amount, err = royalty.RoyaltyInfo(sub, domain.CopyBig(itemId), domain.CopyBig(salePrice))
		return err
	}); err != nil {
		tx.WithFields(log.Fields{
			"contract": contract,
			"itemId":   itemId,
			"err":      err,
		}).Error("royalty.RoyaltyInfo failed")
		return domain.EmptyAddress, nil, true, err
	}
	return receiver.ToLower(), domain.CopyBig(amount), true, nil
}
