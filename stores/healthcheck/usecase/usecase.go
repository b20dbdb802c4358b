package usecase

import (
	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	hcdomain "github.com/x-xyz/gomarket/domain/healthcheck"
)

type impl struct {
	repo   hcdomain.HealthCheckRepo
	ledger *ledger.Ledger
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo, ledger *ledger.Ledger) hcdomain.HealthCheckUsecase {
	return &impl{
		repo:   repo,
		ledger: ledger,
	}
}

func (im *impl) Check(context ctx.Ctx) (*hcdomain.Status, error) {
	res := &hcdomain.Status{}
	if err := im.ledger.View(context, func(tx *ledger.Tx) error {
		res.Height = tx.Height()
		res.Time = tx.Now()
		return nil
	}); err != nil {
		return nil, err
	}

	var err error
	if res.Mirror, err = im.repo.PingDB(context); err != nil {
		return nil, err
	}
	if res.Publisher, err = im.repo.PingCache(context); err != nil {
		return nil, err
	}
	return res, nil
}
