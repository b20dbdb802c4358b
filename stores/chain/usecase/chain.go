package usecase

import (
	bCtx "github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/chain"
)

type chainUseCase struct {
	ledger *ledger.Ledger
	clock  *ledger.ManualClock
}

// NewChainUseCase serves the ledger status, clock is nil unless the ledger
// runs on a manual clock
func NewChainUseCase(l *ledger.Ledger, clock *ledger.ManualClock) chain.UseCase {
	return &chainUseCase{ledger: l, clock: clock}
}

func (u *chainUseCase) Status(ctx bCtx.Ctx) (*chain.Status, error) {
	res := &chain.Status{}
	if err := u.ledger.View(ctx, func(tx *ledger.Tx) error {
		res.Height = tx.Height()
		res.Time = tx.Now()
		return nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (u *chainUseCase) Advance(ctx bCtx.Ctx, seconds uint64) (*chain.Status, error) {
	if u.clock == nil {
		return nil, domain.ErrNotAllowed
	}
	u.clock.Advance(seconds)
	ctx.WithFields(log.Fields{
		"seconds": seconds,
		"now":     u.clock.Now(),
	}).Info("ledger clock advanced")
	return u.Status(ctx)
}
