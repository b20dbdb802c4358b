package option

import (
	"github.com/x-xyz/gomarket/domain"
)

type findAllOptions struct {
	Writer   *domain.Address `bson:"writer"`
	Category *Category       `bson:"category"`
	State    *State          `bson:"state"`
	Owner    *domain.Address `bson:"owner"`
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

func WithWriter(writer domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Writer = writer.ToLowerPtr()
		return nil
	}
}

func WithCategory(category Category) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Category = &category
		return nil
	}
}

// WithState and WithOwner only apply to mirrored records, the engine keeps
// neither of them
func WithState(state State) FindAllOptions {
	return func(options *findAllOptions) error {
		options.State = &state
		return nil
	}
}

func WithOwner(owner domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Owner = owner.ToLowerPtr()
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

func (o findAllOptions) Match(opt *Option) bool {
	if o.Writer != nil && !opt.Writer.Equals(*o.Writer) {
		return false
	}
	if o.Category != nil && opt.Category != *o.Category {
		return false
	}
	return true
}
