package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/hodlwarden/solana-tx-parser/txparser"
)

func main() {
	rpcClient := rpc.New(rpc.MainNetBeta.RPC)
	txSig := solana.MustSignatureFromBase58("3eX1BY3v8shJXVv7f8Y632SM6ErbfXJ4M8usSsDSeU85LysVSrPY2ABg9RU4hRw71NxPaUbiGMgLD1U8teRa2irx")

	var maxTxVersion uint64 = 0
	tx, err := rpcClient.GetTransaction(
		context.TODO(),
		txSig,
		&rpc.GetTransactionOpts{
			Commitment:                     rpc.CommitmentConfirmed,
			MaxSupportedTransactionVersion: &maxTxVersion,
		},
	)
	if err != nil {
		log.Fatalf("error getting tx: %s", err)
	}

	input, err := txparser.NewTransactionInputFromRPC(tx)
	if err != nil {
		log.Fatalf("error converting tx: %s", err)
	}

	// Keep raw per-leg swaps instead of the aggregated route, and collect
	// skip diagnostics so unparsed instructions are visible.
	cfg := txparser.DefaultParseConfig()
	cfg.AggregateTrades = false
	cfg.Diagnostics = true

	result := txparser.ParseAll(input, cfg)

	for _, skipped := range result.Skipped {
		fmt.Printf("skipped instruction %d/%d: %s\n", skipped.OuterIndex, skipped.InnerIndex, skipped.Reason)
	}
	for _, liq := range result.Liquidity {
		fmt.Printf("liquidity %s on %s pool %s\n", liq.Kind, liq.Dex, liq.Venue)
	}

	data, _ := json.MarshalIndent(result.Trades, "", "  ")
	fmt.Println(string(data))
}
