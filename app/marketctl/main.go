package main

import (
	"encoding/json"
	"math/big"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/service/cache"
	"github.com/x-xyz/gomarket/service/cache/provider/primitive"
	"github.com/x-xyz/gomarket/service/chain"
	"github.com/x-xyz/gomarket/service/chain/contract"
)

type proberFactory func(c ctx.Ctx, rpc string, chainId int32) (contract.Prober, error)

func dialProber(c ctx.Ctx, rpc string, chainId int32) (contract.Prober, error) {
	client, err := chain.NewClient(c, &chain.ClientCfg{
		RpcUrls: map[int32]string{chainId: rpc},
	})
	if err != nil {
		return nil, err
	}
	probes := cache.New(cache.ServiceConfig{
		Pfx:   keys.PfxProbe,
		Cache: primitive.NewPrimitive("probe", 8),
	})
	return contract.NewProber(client, probes), nil
}

type royaltyResult struct {
	Receiver domain.Address `json:"receiver"`
	Amount   string         `json:"amount"`
}

func newRootCmd(newProber proberFactory) *cobra.Command {
	var (
		rpc     string
		chainId int32
	)
	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "Inspect asset contracts on an EVM network",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&rpc, "rpc", "http://localhost:8545", "json rpc endpoint")
	root.PersistentFlags().Int32Var(&chainId, "chain-id", 1, "chain id served by the endpoint")

	probeCmd := &cobra.Command{
		Use:   "probe <contract>",
		Short: "Resolve the asset class of a contract and whether it reports royalties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ctx.From(cmd.Context())
			addr, err := ledger.ParseAddress(args[0])
			if err != nil {
				return err
			}
			p, err := newProber(c, rpc, chainId)
			if err != nil {
				return err
			}
			res, err := p.Probe(c, chainId, addr)
			if err != nil {
				return err
			}
			return printJson(cmd, res)
		},
	}

	royaltyCmd := &cobra.Command{
		Use:   "royalty <contract> <tokenId> <salePrice>",
		Short: "Query the royalty receiver and amount for a sale",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ctx.From(cmd.Context())
			addr, err := ledger.ParseAddress(args[0])
			if err != nil {
				return err
			}
			tokenId, ok := new(big.Int).SetString(args[1], 10)
			if !ok {
				return xerrors.Errorf("tokenId %q: %w", args[1], domain.ErrInvalidNumberFormat)
			}
			salePrice, ok := new(big.Int).SetString(args[2], 10)
			if !ok {
				return xerrors.Errorf("salePrice %q: %w", args[2], domain.ErrInvalidNumberFormat)
			}
			p, err := newProber(c, rpc, chainId)
			if err != nil {
				return err
			}
			receiver, amount, err := p.RoyaltyInfo(c, chainId, addr, tokenId, salePrice)
			if err != nil {
				return err
			}
			return printJson(cmd, royaltyResult{Receiver: receiver, Amount: amount.String()})
		},
	}

	root.AddCommand(probeCmd, royaltyCmd)
	return root
}

func printJson(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	defer log.Sync()
	if err := newRootCmd(dialProber).Execute(); err != nil {
		log.Log().WithField("err", err).Error("marketctl failed")
		log.Sync()
		os.Exit(1)
	}
}
