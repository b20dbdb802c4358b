package repository

import (
	"sort"

	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/listing"
)

type listingRepo struct {
	lastId   ledger.Value[uint64]
	listings *ledger.Map[uint64, *listing.Listing]
	listed   *ledger.Map[string, uint64]
}

// NewListingRepo returns marketplace state kept in the ledger journal
func NewListingRepo() listing.Repo {
	return &listingRepo{
		listings: ledger.NewMap[uint64, *listing.Listing](),
		listed:   ledger.NewMap[string, uint64](),
	}
}

// NextId starts at 1, 0 is never a valid listing id
func (r *listingRepo) NextId(tx *ledger.Tx) uint64 {
	id := r.lastId.Get() + 1
	r.lastId.Set(tx, id)
	return id
}

func (r *listingRepo) FindOne(tx *ledger.Tx, id uint64) (*listing.Listing, error) {
	l, ok := r.listings.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l.Copy(), nil
}

func (r *listingRepo) FindAll(tx *ledger.Tx, optFns ...listing.FindAllOptions) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		tx.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}

	res := []*listing.Listing{}
	r.listings.Range(func(id uint64, l *listing.Listing) bool {
		if opts.Match(l) {
			res = append(res, l.Copy())
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
		return []*listing.Listing{}, nil
	}
	res = res[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(res) {
		res = res[:opts.Limit]
	}
	return res, nil
}

func (r *listingRepo) Store(tx *ledger.Tx, l *listing.Listing) {
	r.listings.Set(tx, l.Id, l.Copy())
}

func (r *listingRepo) ListedBy(tx *ledger.Tx, key string) (uint64, bool) {
	return r.listed.Get(key)
}

func (r *listingRepo) SetListed(tx *ledger.Tx, key string, id uint64) {
	r.listed.Set(tx, key, id)
}

func (r *listingRepo) Unlist(tx *ledger.Tx, key string) {
	r.listed.Delete(tx, key)
}
