package usecase

import (
	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/option"
)

type OptionUseCaseCfg struct {
	Ledger  *ledger.Ledger
	Address domain.Address
	Engine  option.Engine
	// RecordRepo serves FindAll when set, the ledger state is scanned otherwise
	RecordRepo option.RecordRepo
}

type optionUseCase struct {
	ledger     *ledger.Ledger
	address    domain.Address
	engine     option.Engine
	recordRepo option.RecordRepo
}

func NewOptionUseCase(cfg *OptionUseCaseCfg) option.UseCase {
	return &optionUseCase{
		ledger:     cfg.Ledger,
		address:    cfg.Address.ToLower(),
		engine:     cfg.Engine,
		recordRepo: cfg.RecordRepo,
	}
}

func (im *optionUseCase) Address() domain.Address {
	return im.address
}

func (im *optionUseCase) Registry(c ctx.Ctx) (domain.Address, error) {
	var res domain.Address
	err := im.ledger.View(c, func(tx *ledger.Tx) error {
		res = im.engine.Registry(tx)
		return nil
	})
	return res, err
}

func (im *optionUseCase) Mint(c ctx.Ctx, caller domain.Address, p option.MintParams) (*option.View, error) {
	return im.execute(c, caller, "mint", func(tx *ledger.Tx) (uint64, error) {
		return im.engine.Mint(tx, p)
	})
}

func (im *optionUseCase) Exercise(c ctx.Ctx, caller domain.Address, id uint64) (*option.View, error) {
	return im.execute(c, caller, "exercise", func(tx *ledger.Tx) (uint64, error) {
		return id, im.engine.Exercise(tx, id)
	})
}

func (im *optionUseCase) Burn(c ctx.Ctx, caller domain.Address, id uint64) (*option.View, error) {
	return im.execute(c, caller, "burn", func(tx *ledger.Tx) (uint64, error) {
		return id, im.engine.Burn(tx, id)
	})
}

func (im *optionUseCase) FindOne(c ctx.Ctx, id uint64) (*option.View, error) {
	var res *option.View
	if err := im.ledger.View(c, func(tx *ledger.Tx) error {
		var err error
		res, err = im.view(tx, id)
		return err
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *optionUseCase) FindAll(c ctx.Ctx, optFns ...option.FindAllOptions) ([]*option.View, error) {
	if im.recordRepo != nil {
		return im.findRecords(c, optFns...)
	}

	opts, err := option.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}
	var res []*option.View
	if err := im.ledger.View(c, func(tx *ledger.Tx) error {
		options, err := im.engine.FindAll(tx, optFns...)
		if err != nil {
			return err
		}
		res = make([]*option.View, 0, len(options))
		for _, o := range options {
			v, err := im.view(tx, o.Id)
			if err != nil {
				return err
			}
			if opts.State != nil && v.State != *opts.State {
				continue
			}
			if opts.Owner != nil && !v.Owner.Equals(*opts.Owner) {
				continue
			}
			res = append(res, v)
		}
		return nil
	}); err != nil {
		c.WithField("err", err).Error("engine.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *optionUseCase) findRecords(c ctx.Ctx, optFns ...option.FindAllOptions) ([]*option.View, error) {
	records, err := im.recordRepo.FindAll(c, optFns...)
	if err != nil {
		c.WithField("err", err).Error("recordRepo.FindAll failed")
		return nil, err
	}
	res := make([]*option.View, 0, len(records))
	for _, r := range records {
		v, err := r.ToView()
		if err != nil {
			c.WithFields(log.Fields{
				"id":  r.Id,
				"err": err,
			}).Error("record.ToView failed")
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (im *optionUseCase) view(tx *ledger.Tx, id uint64) (*option.View, error) {
	o, err := im.engine.FindOne(tx, id)
	if err != nil {
		return nil, err
	}
	state, err := im.engine.State(tx, id)
	if err != nil {
		return nil, err
	}
	v := &option.View{Option: o, State: state}
	if state == option.StateActive {
		if v.Owner, err = im.engine.OwnerOf(tx, id); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (im *optionUseCase) execute(c ctx.Ctx, caller domain.Address, op string, fn func(tx *ledger.Tx) (uint64, error)) (*option.View, error) {
	var res *option.View
	receipt, err := im.ledger.Execute(c, caller, im.address, func(tx *ledger.Tx) error {
		id, err := fn(tx)
		if err != nil {
			return err
		}
		res, err = im.view(tx, id)
		return err
	})
	if err != nil {
		c.WithFields(log.Fields{
			"op":     op,
			"caller": caller,
			"err":    err,
		}).Warn("option operation rejected")
		return nil, err
	}
	c.WithFields(log.Fields{
		"op":       op,
		"optionId": res.Id,
		"height":   receipt.Height,
	}).Info("option operation committed")
	return res, nil
}
