package usecase

import (
	"fmt"
	"strings"
	"sync"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain/event"
	"github.com/x-xyz/gomarket/domain/listing"
	"github.com/x-xyz/gomarket/domain/option"
)

// ConsumerCfg wires the outputs of the consumer, any of them may be nil
type ConsumerCfg struct {
	ListingRecords listing.RecordRepo
	OptionRecords  option.RecordRepo
	Publisher      event.Publisher
	QueueLength    int
}

type consumer struct {
	listingRecords listing.RecordRepo
	optionRecords  option.RecordRepo
	publisher      event.Publisher

	// a single worker keeps receipts in height order
	pool *goroutines.Pool
	wg   sync.WaitGroup
	met  metrics.Service
}

// NewConsumer returns a ledger subscriber mirroring marketplace and option
// events to their record repos and publishing every log
func NewConsumer(cfg *ConsumerCfg) event.Consumer {
	queue := cfg.QueueLength
	if queue <= 0 {
		queue = 1024
	}
	return &consumer{
		listingRecords: cfg.ListingRecords,
		optionRecords:  cfg.OptionRecords,
		publisher:      cfg.Publisher,
		pool:           goroutines.NewPool(1, goroutines.WithTaskQueueLength(queue)),
		met:            metrics.New("event"),
	}
}

func (im *consumer) OnReceipt(c ctx.Ctx, receipt *ledger.Receipt) {
	im.wg.Add(1)
	err := im.pool.Schedule(func() {
		defer im.wg.Done()
		im.handle(c, receipt)
	})
	if err != nil {
		im.wg.Done()
		c.WithFields(log.Fields{
			"height": receipt.Height,
			"err":    err,
		}).Error("failed to Schedule")
		im.met.BumpSum("receipt.dropped", 1)
	}
}

func (im *consumer) Wait() {
	im.wg.Wait()
}

func (im *consumer) Close() {
	im.wg.Wait()
	im.pool.Release()
}

func (im *consumer) handle(c ctx.Ctx, receipt *ledger.Receipt) {
	for _, l := range receipt.Logs {
		m := ToMessage(receipt, l)
		c := ctx.WithLogFields(c, log.Fields{
			"height": m.Height,
			"index":  m.Index,
			"event":  m.Name,
		})

		if err := im.mirror(c, m); err != nil {
			c.WithField("err", err).Error("failed to mirror event")
			im.met.BumpSum("mirror.err", 1)
		}
		if im.publisher == nil {
			continue
		}
		if err := im.publisher.Publish(c, m); err != nil {
			c.WithField("err", err).Error("failed to Publish")
			im.met.BumpSum("publish.err", 1)
			continue
		}
		im.met.BumpSum("publish.ok", 1)
	}
}

func (im *consumer) mirror(c ctx.Ctx, m *event.Message) error {
	switch e := m.Payload.(type) {
	case listing.Event:
		if im.listingRecords == nil {
			return nil
		}
		return im.listingRecords.Upsert(c, listing.ToRecord(e.Snapshot(), m.Meta()))
	case option.Event:
		if im.optionRecords == nil {
			return nil
		}
		return im.optionRecords.Upsert(c, option.ToRecord(e.Snapshot(), m.Meta()))
	}
	return nil
}

// ToMessage turns a committed log into its published form, the name is the
// payload type, e.g. "listing.CreatedEvent"
func ToMessage(receipt *ledger.Receipt, l ledger.Log) *event.Message {
	return &event.Message{
		Height:   receipt.Height,
		TxId:     receipt.Id,
		Time:     receipt.Time,
		Index:    l.Index,
		Contract: l.Contract,
		Sender:   l.Sender,
		Name:     strings.TrimPrefix(fmt.Sprintf("%T", l.Payload), "*"),
		Payload:  l.Payload,
	}
}
