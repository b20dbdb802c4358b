package listing

import (
	"math/big"

	"github.com/x-xyz/gomarket/domain"
)

// Event is implemented by every marketplace log payload. Snapshot is the
// listing as written by the transaction that emitted the event.
type Event interface {
	Snapshot() *Listing
}

type CreatedEvent struct {
	Id      uint64         `json:"id"`
	Creator domain.Address `json:"creator"`
	Listing *Listing       `json:"listing"`
}

type BidPlacedEvent struct {
	Id      uint64         `json:"id"`
	Bidder  domain.Address `json:"bidder"`
	Amount  *big.Int       `json:"amount"`
	Listing *Listing       `json:"listing"`
}

type SoldEvent struct {
	Id              uint64         `json:"id"`
	Buyer           domain.Address `json:"buyer"`
	Price           *big.Int       `json:"price"`
	RoyaltyReceiver domain.Address `json:"royaltyReceiver,omitempty"`
	RoyaltyAmount   *big.Int       `json:"royaltyAmount"`
	Listing         *Listing       `json:"listing"`
}

type CancelledEvent struct {
	Id      uint64         `json:"id"`
	Creator domain.Address `json:"creator"`
	Listing *Listing       `json:"listing"`
}

func (e CreatedEvent) Snapshot() *Listing   { return e.Listing }
func (e BidPlacedEvent) Snapshot() *Listing { return e.Listing }
func (e SoldEvent) Snapshot() *Listing      { return e.Listing }
func (e CancelledEvent) Snapshot() *Listing { return e.Listing }
