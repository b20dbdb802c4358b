package domain

import "time"

// LogMeta locates a committed log: the receipt that carried it and its
// position in that receipt
type LogMeta struct {
	Height   uint64
	Time     time.Time
	TxId     string
	Index    uint
	Contract Address
	Sender   Address
}
