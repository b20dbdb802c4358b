package usecase

import (
	"math/big"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/asset"
	"github.com/x-xyz/gomarket/domain/option"
	"github.com/x-xyz/gomarket/domain/ownership"
)

type EngineCfg struct {
	Repo       option.Repo
	Dispatcher asset.Dispatcher
	// Admin binds the ownership registry once it is deployed
	Admin domain.Address
}

// engine escrows the writer asset of every live option. Holding registry
// token id is the right to exercise option id.
type engine struct {
	self       domain.Address
	admin      domain.Address
	repo       option.Repo
	dispatcher asset.Dispatcher
	registry   ledger.Value[domain.Address]
	met        metrics.Service
}

func NewEngine(cfg *EngineCfg) ledger.Factory {
	return func(self domain.Address) interface{} {
		return &engine{
			self:       self,
			admin:      cfg.Admin.ToLower(),
			repo:       cfg.Repo,
			dispatcher: cfg.Dispatcher,
			met:        metrics.New("option"),
		}
	}
}

func (im *engine) SetRegistry(tx *ledger.Tx, registry domain.Address) error {
	if tx.Caller() != im.admin || !im.registry.Get().IsEmpty() {
		return domain.ErrNotAllowed
	}
	if !tx.IsContract(registry) {
		return domain.ErrNoContract
	}
	im.registry.Set(tx, registry.ToLower())
	return nil
}

func (im *engine) Registry(tx *ledger.Tx) domain.Address {
	return im.registry.Get()
}

func (im *engine) Mint(tx *ledger.Tx, p option.MintParams) (uint64, error) {
	if im.registry.Get().IsEmpty() {
		return 0, domain.ErrNoContract
	}
	if p.Expiry < tx.Now() {
		return 0, domain.ErrExpired
	}
	writerAsset, err := im.resolve(tx, p.WriterAsset)
	if err != nil {
		return 0, err
	}
	ownerAsset, err := im.resolve(tx, p.OwnerAsset)
	if err != nil {
		return 0, err
	}

	o := &option.Option{
		Id:          im.repo.NextId(tx),
		Category:    p.Category,
		Writer:      tx.Caller(),
		WriterAsset: writerAsset,
		OwnerAsset:  ownerAsset,
		Expiry:      p.Expiry,
	}
	im.repo.Store(tx, o)
	tx.Emit(option.MintedEvent{Id: o.Id, Writer: o.Writer, Option: o.Copy()})

	if err := im.dispatcher.Transfer(tx, o.Writer, im.self, o.WriterAsset); err != nil {
		return 0, err
	}
	if err := im.withRegistry(tx, func(sub *ledger.Tx, r ownership.Registry) error {
		return r.Mint(sub, o.Writer, new(big.Int).SetUint64(o.Id))
	}); err != nil {
		return 0, err
	}
	im.met.BumpSum("mint.ok", 1)
	return o.Id, nil
}

// Exercise burns the token, then the owner asset goes from the caller to the
// writer and the escrowed writer asset to the caller
func (im *engine) Exercise(tx *ledger.Tx, id uint64) error {
	o, err := im.repo.FindOne(tx, id)
	if err != nil {
		return err
	}
	owner, err := im.OwnerOf(tx, id)
	if err != nil || owner != tx.Caller() {
		return domain.ErrNotAllowed
	}
	if tx.Now() > o.Expiry {
		return domain.ErrExpired
	}

	if err := im.burnToken(tx, id); err != nil {
		return err
	}
	tx.Emit(option.ExercisedEvent{Id: o.Id, Owner: owner, Option: o.Copy()})

	if err := im.dispatcher.Transfer(tx, owner, o.Writer, o.OwnerAsset); err != nil {
		return err
	}
	if err := im.dispatcher.Transfer(tx, im.self, owner, o.WriterAsset); err != nil {
		return err
	}
	im.met.BumpSum("exercise.ok", 1)
	return nil
}

// Burn returns the collateral to the writer. The owner may burn once the
// option expired, a writer still holding its token may burn at any time.
func (im *engine) Burn(tx *ledger.Tx, id uint64) error {
	o, err := im.repo.FindOne(tx, id)
	if err != nil {
		return err
	}
	owner, err := im.OwnerOf(tx, id)
	if err != nil || owner != tx.Caller() {
		return domain.ErrNotAllowed
	}
	if tx.Now() <= o.Expiry && owner != o.Writer {
		return domain.ErrNotAllowed
	}

	if err := im.burnToken(tx, id); err != nil {
		return err
	}
	tx.Emit(option.BurnedEvent{Id: o.Id, Caller: owner, Option: o.Copy()})

	if err := im.dispatcher.Transfer(tx, im.self, o.Writer, o.WriterAsset); err != nil {
		return err
	}
	im.met.BumpSum("burn.ok", 1)
	return nil
}

func (im *engine) State(tx *ledger.Tx, id uint64) (option.State, error) {
	if _, err := im.repo.FindOne(tx, id); err != nil {
		return option.StateBurned, err
	}
	if _, err := im.OwnerOf(tx, id); err == domain.ErrTokenNotExist {
		return option.StateBurned, nil
	} else if err != nil {
		return option.StateBurned, err
	}
	return option.StateActive, nil
}

func (im *engine) OwnerOf(tx *ledger.Tx, id uint64) (domain.Address, error) {
	var owner domain.Address
	err := im.withRegistry(tx, func(sub *ledger.Tx, r ownership.Registry) error {
		var err error
		owner, err = r.OwnerOf(sub, new(big.Int).SetUint64(id))
		return err
	})
	return owner, err
}

func (im *engine) FindOne(tx *ledger.Tx, id uint64) (*option.Option, error) {
	return im.repo.FindOne(tx, id)
}

func (im *engine) FindAll(tx *ledger.Tx, optFns ...option.FindAllOptions) ([]*option.Option, error) {
	return im.repo.FindAll(tx, optFns...)
}

// OnERC721Received and OnERC1155Received only accept collateral the engine
// pulls itself
func (im *engine) OnERC721Received(tx *ledger.Tx, operator, from domain.Address, id *big.Int) error {
	if operator != im.self {
		return domain.ErrNotAllowed
	}
	return nil
}

func (im *engine) OnERC1155Received(tx *ledger.Tx, operator, from domain.Address, id, amount *big.Int) error {
	if operator != im.self {
		return domain.ErrNotAllowed
	}
	return nil
}

func (im *engine) resolve(tx *ledger.Tx, a asset.Asset) (asset.Asset, error) {
	if a.Contract.IsEmpty() {
		return asset.Asset{}, domain.ErrInvalidAddress
	}
	class, err := im.dispatcher.Resolve(tx, a.Contract)
	if err != nil {
		return asset.Asset{}, err
	}
	if class != asset.ClassFungible && (a.ItemId == nil || a.ItemId.Sign() < 0) {
		return asset.Asset{}, domain.ErrBadParamInput
	}
	if class != asset.ClassUnique && (a.Amount == nil || a.Amount.Sign() < 0) {
		return asset.Asset{}, domain.ErrInvalidAmount
	}
	return a.Resolved(class), nil
}

func (im *engine) burnToken(tx *ledger.Tx, id uint64) error {
	return im.withRegistry(tx, func(sub *ledger.Tx, r ownership.Registry) error {
		return r.Burn(sub, new(big.Int).SetUint64(id))
	})
}

func (im *engine) withRegistry(tx *ledger.Tx, fn func(sub *ledger.Tx, r ownership.Registry) error) error {
	addr := im.registry.Get()
	c, err := tx.Contract(addr)
	if err != nil {
		return err
	}
	r, ok := c.(ownership.Registry)
	if !ok {
		tx.WithFields(log.Fields{
			"registry": addr,
		}).Error("registry does not implement ownership.Registry")
		return domain.ErrNoContract
	}
	return tx.Call(addr, func(sub *ledger.Tx) error {
		return fn(sub, r)
	})
}
