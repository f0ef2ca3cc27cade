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
	rpcClient := rpc.New("https://api.mainnet-beta.solana.com")

	var maxTxVersion uint64 = 0

	tx, err := rpcClient.GetTransaction(
		context.TODO(),
		solana.MustSignatureFromBase58("4kPxWuFqG6Jj5uutxv67K87DYuVrQukuBpP1UHbT7Hd16KUGA7fanQtZKgwTzE1HBK3WvzGHmRbhhadJTokLpchj"),
		&rpc.GetTransactionOpts{
			MaxSupportedTransactionVersion: &maxTxVersion,
			Commitment:                     rpc.CommitmentConfirmed,
		},
	)
	if err != nil {
		log.Fatalf("failed to get tx: %s", err)
	}

	input, err := txparser.NewTransactionInputFromRPC(tx)
	if err != nil {
		log.Fatalf("failed to convert tx: %s", err)
	}

	result := txparser.ParseAll(input, txparser.DefaultParseConfig())

	// Pumpfun txs can carry a token launch alongside the first buy.
	for _, creation := range result.Creations {
		fmt.Printf("new token: %s (%s) mint=%s\n", creation.Name, creation.Symbol, creation.Mint)
	}

	marshalledTx, _ := json.MarshalIndent(result.Trades, "", "  ")
	fmt.Println(string(marshalledTx))
}
