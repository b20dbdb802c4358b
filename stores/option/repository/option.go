package repository

import (
	"sort"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/option"
)

type optionRepo struct {
	lastId  ledger.Value[uint64]
	options *ledger.Map[uint64, *option.Option]
}

// NewOptionRepo returns option engine state kept in the ledger journal.
// Options are never removed, burning only destroys the registry token.
func NewOptionRepo() option.Repo {
	return &optionRepo{
		options: ledger.NewMap[uint64, *option.Option](),
	}
}

func (r *optionRepo) NextId(tx *ledger.Tx) uint64 {
	id := r.lastId.Get() + 1
	r.lastId.Set(tx, id)
	return id
}

func (r *optionRepo) FindOne(tx *ledger.Tx, id uint64) (*option.Option, error) {
	o, ok := r.options.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Copy(), nil
}

func (r *optionRepo) FindAll(tx *ledger.Tx, optFns ...option.FindAllOptions) ([]*option.Option, error) {
	opts, err := option.GetFindAllOptions(optFns...)
	if err != nil {
		tx.WithField("err", err).Error("option.GetFindAllOptions failed")
		return nil, err
	}

	res := []*option.Option{}
	r.options.Range(func(id uint64, o *option.Option) bool {
		if opts.Match(o) {
			res = append(res, o.Copy())
		}
		return true
	})
	sort.Slice(res, func(i, j int) bool {
		if opts.SortBy == "-id" {
			return res[i].Id > res[j].Id
		}
		return res[i].Id < res[j].Id
	})

	if opts.Offset >= len(res) {
		return []*option.Option{}, nil
	}
	res = res[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(res) {
		res = res[:opts.Limit]
	}
	return res, nil
}

func (r *optionRepo) Store(tx *ledger.Tx, o *option.Option) {
	r.options.Set(tx, o.Id, o.Copy())
}
