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
	txSig := solana.MustSignatureFromBase58("3zQKPvFSSfvZPBRACfTGcDEyzEEx2ZyuqrkLRjbPu8Sjh88euKjGyaBYt3EbRPHpSWh49hBMg6kuLynbx7XPcgTF")

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

	// Only decode Jupiter route events; everything else in the tx is ignored.
	cfg := &txparser.ParseConfig{
		AggregateTrades: true,
		Families: map[txparser.SwapType]bool{
			txparser.PUMP_FUN:  false,
			txparser.PUMP_SWAP: false,
			txparser.RAYDIUM:   false,
			txparser.ORCA:      false,
			txparser.METEORA:   false,
			txparser.MOONSHOT:  false,
		},
	}

	trades := txparser.Parse(input, cfg)

	data, _ := json.MarshalIndent(trades, "", "  ")
	fmt.Println(string(data))
}
