package healthcheck

import (
	"github.com/x-xyz/gomarket/base/ctx"
)

// Status reports the ledger position and which optional backends are wired
type Status struct {
	Height    uint64 `json:"height"`
	Time      uint64 `json:"time"`
	Mirror    bool   `json:"mirror"`
	Publisher bool   `json:"publisher"`
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) (*Status, error)
}

// HealthCheckRepo is repository layer of healthCheck, a backend which is not
// configured reports false without error
type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) (bool, error)
	PingCache(context ctx.Ctx) (bool, error)
}
