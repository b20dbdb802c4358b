package ethereum

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
)

// ContractCaller issues read only contract calls, ethclient.Client is one
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ThrottledCaller lets at most n calls reach the node at once
type ThrottledCaller struct {
	caller ContractCaller
	tokens chan struct{}
}

func NewThrottledCaller(caller ContractCaller, n int) *ThrottledCaller {
	if n <= 0 {
		n = 1
	}
	return &ThrottledCaller{
		caller: caller,
		tokens: make(chan struct{}, n),
	}
}

func (c *ThrottledCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case c.tokens <- struct{}{}:
	}
	defer func() { <-c.tokens }()
	return c.caller.CallContract(ctx, msg, number)
}
