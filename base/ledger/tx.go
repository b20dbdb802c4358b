package ledger

import (
	bCtx "github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
)

// Tx is one call frame. Caller is the account or contract that invoked the
// frame, Self is the contract executing it.
type Tx struct {
	bCtx.Ctx

	ledger   *Ledger
	caller   domain.Address
	self     domain.Address
	origin   domain.Address
	now      uint64
	height   uint64
	readOnly bool
	depth    int
}

func (tx *Tx) Caller() domain.Address {
	return tx.caller
}

func (tx *Tx) Self() domain.Address {
	return tx.self
}

// Origin is the account that sent the transaction
func (tx *Tx) Origin() domain.Address {
	return tx.origin
}

// Now is the block time, in unix seconds, shared by every frame of the transaction
func (tx *Tx) Now() uint64 {
	return tx.now
}

func (tx *Tx) Height() uint64 {
	return tx.height
}

func (tx *Tx) IsContract(addr domain.Address) bool {
	_, ok := tx.ledger.contract(addr)
	return ok
}

// Contract returns the contract deployed at addr
func (tx *Tx) Contract(addr domain.Address) (interface{}, error) {
	c, ok := tx.ledger.contract(addr)
	if !ok {
		return nil, domain.ErrNoContract
	}
	return c, nil
}

// Call runs fn in a nested frame executing target on behalf of the current
// contract. A failing frame reverts its own writes and logs only.
func (tx *Tx) Call(target domain.Address, fn func(sub *Tx) error) error {
	if tx.depth+1 > maxCallDepth {
		return ErrCallDepth
	}
	snap := tx.ledger.journal.snapshot()
	sub := &Tx{
		Ctx:      tx.Ctx,
		ledger:   tx.ledger,
		caller:   tx.self,
		self:     target.ToLower(),
		origin:   tx.origin,
		now:      tx.now,
		height:   tx.height,
		readOnly: tx.readOnly,
		depth:    tx.depth + 1,
	}
	if err := fn(sub); err != nil {
		tx.ledger.journal.revert(snap)
		return err
	}
	return nil
}

// Emit appends a log for observers of the committed receipt
func (tx *Tx) Emit(payload interface{}) {
	tx.guard()
	j := tx.ledger.journal
	j.logs = append(j.logs, Log{
		Index:    uint(len(j.logs)),
		Contract: tx.self,
		Sender:   tx.caller,
		Payload:  payload,
	})
}

func (tx *Tx) guard() {
	if tx.readOnly {
		panic(domain.ErrReadOnly)
	}
}

func (tx *Tx) record(undo func()) {
	tx.guard()
	tx.ledger.journal.undo = append(tx.ledger.journal.undo, undo)
}
