package chain

import (
	"github.com/x-xyz/gomarket/base/ctx"
)

// Status is the height of the last committed transaction and the block time
// the next one will observe
type Status struct {
	Height uint64 `json:"height"`
	Time   uint64 `json:"time"`
}

type UseCase interface {
	Status(c ctx.Ctx) (*Status, error)
	// Advance moves a manual ledger clock forward, it fails with
	// domain.ErrNotAllowed when the ledger follows the system clock
	Advance(c ctx.Ctx, seconds uint64) (*Status, error)
}
