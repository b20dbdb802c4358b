package listing

import (
	"github.com/x-xyz/gomarket/domain"
)

type findAllOptions struct {
	Creator  *domain.Address `bson:"creator"`
	Contract *domain.Address `bson:"contract"`
	Status   *Status         `bson:"status"`
	Bidder   *domain.Address `bson:"currentBidder"`
	Offset   int             `bson:"-"`
	Limit    int             `bson:"-"`
	SortBy   string          `bson:"-"`
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithCreator(creator domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Creator = creator.ToLowerPtr()
		return nil
	}
}

func WithContract(contract domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Contract = contract.ToLowerPtr()
		return nil
	}
}

func WithBidder(bidder domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Bidder = bidder.ToLowerPtr()
		return nil
	}
}

func WithStatus(status Status) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptions {
	return func(options *findAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		options.Offset = offset
		options.Limit = limit
		return nil
	}
}

func WithSort(sortBy string) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SortBy = sortBy
		return nil
	}
}

// Match reports whether l passes the filters of the options
func (o findAllOptions) Match(l *Listing) bool {
	if o.Creator != nil && !l.Creator.Equals(*o.Creator) {
		return false
	}
	if o.Contract != nil && !l.Asset.Contract.Equals(*o.Contract) {
		return false
	}
	if o.Bidder != nil && !l.CurrentBidder.Equals(*o.Bidder) {
		return false
	}
	if o.Status != nil && l.Status != *o.Status {
		return false
	}
	return true
}
