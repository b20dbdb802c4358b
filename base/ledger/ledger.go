// Package ledger is the serialized host every contract of the marketplace runs
// on. One Execute is one atomic transaction: it commits every write made by the
// contracts it reaches, or none of them.
package ledger

import (
	"errors"
	"runtime/debug"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain"
)

var (
	ErrCallDepth = errors.New("call depth exceeded")
	ErrPanic     = errors.New("call panicked")
)

const maxCallDepth = 1024

// Factory builds a contract bound to the address it is deployed at
type Factory func(self domain.Address) interface{}

// Subscriber receives every committed receipt in height order. It must not
// call Execute synchronously.
type Subscriber interface {
	OnReceipt(ctx bCtx.Ctx, receipt *Receipt)
}

// Log is an event emitted by a contract during a committed transaction
type Log struct {
	Index    uint
	Contract domain.Address
	Sender   domain.Address
	Payload  interface{}
}

// Receipt describes one committed transaction
type Receipt struct {
	Id     string
	Height uint64
	Time   uint64
	From   domain.Address
	To     domain.Address
	Logs   []Log
}

type Ledger struct {
	mu        sync.Mutex
	deliverMu sync.Mutex

	clock     Clock
	contracts map[domain.Address]interface{}
	nonces    map[domain.Address]uint64
	height    uint64
	journal   *journal
	subs      []Subscriber
	met       metrics.Service
}

func New(clock Clock) *Ledger {
	return &Ledger{
		clock:     clock,
		contracts: make(map[domain.Address]interface{}),
		nonces:    make(map[domain.Address]uint64),
		journal:   &journal{},
		met:       metrics.New("ledger"),
	}
}

// Subscribe registers s for receipts committed from now on
func (l *Ledger) Subscribe(s Subscriber) {
	l.deliverMu.Lock()
	defer l.deliverMu.Unlock()
	l.subs = append(l.subs, s)
}

// Deploy assigns the next contract address of deployer, the same way an EVM
// derives CREATE addresses, and registers the contract built by factory.
func (l *Ledger) Deploy(deployer domain.Address, factory Factory) (domain.Address, interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	deployer = deployer.ToLower()
	nonce := l.nonces[deployer]
	l.nonces[deployer] = nonce + 1
	addr := domain.Address(crypto.CreateAddress(common.HexToAddress(string(deployer)), nonce).Hex()).ToLower()

	contract := factory(addr)
	l.contracts[addr] = contract
	return addr, contract
}

// Execute runs fn as a transaction sent by from to contract to. Any error,
// or panic, reverts every write fn made.
func (l *Ledger) Execute(ctx bCtx.Ctx, from, to domain.Address, fn func(tx *Tx) error) (*Receipt, error) {
	defer l.met.BumpTime("execute.time").End()

	l.mu.Lock()
	now := l.clock.Now()
	tx := &Tx{
		Ctx:    bCtx.WithLogFields(ctx, log.Fields{"from": from, "to": to, "height": l.height + 1}),
		ledger: l,
		caller: from.ToLower(),
		self:   to.ToLower(),
		origin: from.ToLower(),
		now:    now,
		height: l.height + 1,
	}

	if err := l.run(tx, fn); err != nil {
		l.journal.revert(snapshot{})
		l.mu.Unlock()
		l.met.BumpSum("execute.revert", 1)
		return nil, err
	}

	l.height++
	receipt := &Receipt{
		Id:     uuid.NewString(),
		Height: l.height,
		Time:   now,
		From:   tx.caller,
		To:     tx.self,
		Logs:   l.journal.logs,
	}
	l.journal = &journal{}

	// hand over to the delivery lock before releasing the state lock so
	// receipts reach subscribers in height order
	l.deliverMu.Lock()
	l.mu.Unlock()
	defer l.deliverMu.Unlock()
	for _, s := range l.subs {
		s.OnReceipt(ctx, receipt)
	}
	l.met.BumpSum("execute.commit", 1)
	return receipt, nil
}

// View runs fn against the current state. Writes are rejected with ErrReadOnly.
func (l *Ledger) View(ctx bCtx.Ctx, fn func(tx *Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx := &Tx{
		Ctx:      ctx,
		ledger:   l,
		caller:   domain.EmptyAddress,
		self:     domain.EmptyAddress,
		origin:   domain.EmptyAddress,
		now:      l.clock.Now(),
		height:   l.height,
		readOnly: true,
	}
	return l.run(tx, fn)
}

func (l *Ledger) run(tx *Tx, fn func(*Tx) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok && errors.Is(e, domain.ErrReadOnly) {
				err = e
				return
			}
			tx.WithFields(log.Fields{
				"panic": p,
				"stack": string(debug.Stack()),
			}).Error("transaction panicked")
			err = xerrors.Errorf("%v: %w", p, ErrPanic)
		}
	}()
	return fn(tx)
}

// Height is the number of committed transactions
func (l *Ledger) Height() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// Now is the block time the next transaction will observe
func (l *Ledger) Now() uint64 {
	return l.clock.Now()
}

func (l *Ledger) contract(addr domain.Address) (interface{}, bool) {
	c, ok := l.contracts[addr.ToLower()]
	return c, ok
}
