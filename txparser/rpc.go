package txparser

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/mr-tron/base58"
)

// NewTransactionInputFromRPC converts a getTransaction RPC response into
// the parser's input shape. It sits at the process boundary; the parse
// pipeline itself never talks to RPC.
func NewTransactionInputFromRPC(res *rpc.GetTransactionResult) (*TransactionInput, error) {
	if res == nil {
		return nil, fmt.Errorf("nil transaction result")
	}
	tx, err := res.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	input := &TransactionInput{
		Slot:        res.Slot,
		Signatures:  tx.Signatures,
		AccountKeys: tx.Message.AccountKeys,
	}
	if res.BlockTime != nil {
		bt := res.BlockTime.Time().Unix()
		input.BlockTime = &bt
	}
	if tx.Message.GetVersion() == solana.MessageVersionV0 {
		v := uint8(0)
		input.Version = &v
	}

	for _, ci := range tx.Message.Instructions {
		ix, err := compiledToInstruction(ci)
		if err != nil {
			return nil, err
		}
		input.Instructions = append(input.Instructions, ix)
	}

	if res.Meta == nil {
		return input, nil
	}
	meta := &TransactionMeta{
		Failed:       res.Meta.Err != nil,
		Fee:          &res.Meta.Fee,
		PreBalances:  res.Meta.PreBalances,
		PostBalances: res.Meta.PostBalances,
		ComputeUnits: res.Meta.ComputeUnitsConsumed,
		LoadedAddresses: &LoadedAddresses{
			Writable: res.Meta.LoadedAddresses.Writable,
			ReadOnly: res.Meta.LoadedAddresses.ReadOnly,
		},
	}
	for _, tb := range res.Meta.PreTokenBalances {
		meta.PreTokenBalances = append(meta.PreTokenBalances, tokenBalanceFromRPC(tb))
	}
	for _, tb := range res.Meta.PostTokenBalances {
		meta.PostTokenBalances = append(meta.PostTokenBalances, tokenBalanceFromRPC(tb))
	}
	for _, set := range res.Meta.InnerInstructions {
		converted := InnerInstructionSet{Index: uint32(set.Index)}
		for _, ci := range set.Instructions {
			ix, err := compiledToInstruction(ci)
			if err != nil {
				return nil, err
			}
			converted.Instructions = append(converted.Instructions, ix)
		}
		meta.InnerInstructions = append(meta.InnerInstructions, converted)
	}
	input.Meta = meta
	return input, nil
}

func compiledToInstruction(ci solana.CompiledInstruction) (Instruction, error) {
	data, err := base58.Decode(ci.Data.String())
	if err != nil {
		return Instruction{}, fmt.Errorf("error decoding instruction data: %w", err)
	}
	ix := Instruction{
		ProgramIDIndex: uint8(ci.ProgramIDIndex),
		Data:           data,
	}
	for _, acc := range ci.Accounts {
		ix.Accounts = append(ix.Accounts, uint8(acc))
	}
	return ix, nil
}

func tokenBalanceFromRPC(tb rpc.TokenBalance) TokenBalance {
	out := TokenBalance{
		AccountIndex: uint32(tb.AccountIndex),
		Mint:         tb.Mint,
	}
	if tb.Owner != nil {
		out.Owner = *tb.Owner
	}
	if tb.UiTokenAmount != nil {
		out.Decimals = tb.UiTokenAmount.Decimals
		out.Amount, _ = strconv.ParseUint(tb.UiTokenAmount.Amount, 10, 64)
	}
	return out
}
