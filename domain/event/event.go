package event

import (
	"time"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/domain"
)

// Message is a committed contract log as it is published to subscribers
type Message struct {
	Height   uint64         `json:"height"`
	TxId     string         `json:"txId"`
	Time     uint64         `json:"time"`
	Index    uint           `json:"index"`
	Contract domain.Address `json:"contract"`
	Sender   domain.Address `json:"sender"`
	Name     string         `json:"name"`
	Payload  interface{}    `json:"payload"`
}

// Meta returns the position of the message on the ledger
func (m *Message) Meta() *domain.LogMeta {
	return &domain.LogMeta{
		Height:   m.Height,
		Time:     time.Unix(int64(m.Time), 0).UTC(),
		TxId:     m.TxId,
		Index:    m.Index,
		Contract: m.Contract,
		Sender:   m.Sender,
	}
}

type Publisher interface {
	Publish(c ctx.Ctx, m *Message) error
	// Recent returns the latest messages of contract, newest last
	Recent(c ctx.Ctx, contract domain.Address, count int) ([]*Message, error)
}

// Consumer mirrors committed receipts, Wait blocks until every receipt
// delivered so far is handled
type Consumer interface {
	ledger.Subscriber

	Wait()
	Close()
}
