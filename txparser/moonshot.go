package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// decodeMoonshot handles Moonshot bonding-curve trades. The instruction
// arguments carry slippage bounds rather than settled amounts, so realized
// amounts come from the signer's token and lamport balance deltas.
func decodeMoonshot(ctx *parseContext, ix Instruction, outerIndex, innerIndex int) ([]fragment, error) {
	var isBuy bool
	switch {
	case hasDiscriminator(ix.Data, MOONSHOT_BUY_DISCRIMINATOR):
		isBuy = true
	case hasDiscriminator(ix.Data, MOONSHOT_SELL_DISCRIMINATOR):
	default:
		return nil, nil
	}

	if err := ctx.checkInstructionAccounts(ix, outerIndex); err != nil {
		return nil, err
	}
	mint, ok := ctx.instructionAccount(ix, 6)
	if !ok {
		return nil, decodeErrf(MOONSHOT, nil, "trade instruction carries %d accounts, mint expected at 6", len(ix.Accounts))
	}
	if mint == NATIVE_SOL_MINT_PROGRAM_ID {
		return nil, decodeErrf(MOONSHOT, nil, "trade mint is native SOL")
	}

	tokenDelta, ok := ctx.signerTokenDelta(mint)
	if !ok {
		return nil, decodeErrf(MOONSHOT, nil, "no balance snapshot for mint %s", mint)
	}
	lamportDelta, ok := ctx.signerLamportDelta()
	if !ok {
		return nil, decodeErrf(MOONSHOT, nil, "lamport balances missing")
	}

	frag := fragment{
		kind:       fragmentSwap,
		dex:        MOONSHOT,
		outerIndex: outerIndex,
		innerIndex: -1,
		actor:      ctx.signer,
	}
	tokenAmount := uint64(absInt64(tokenDelta))
	solAmount := uint64(absInt64(lamportDelta))
	if isBuy {
		frag.inMint = NATIVE_SOL_MINT_PROGRAM_ID
		frag.inAmount = solAmount
		frag.inDecimals = NATIVE_SOL_DECIMALS
		frag.outMint = mint
		frag.outAmount = tokenAmount
		frag.outDecimals = ctx.mintDecimals(mint)
	} else {
		frag.inMint = mint
		frag.inAmount = tokenAmount
		frag.inDecimals = ctx.mintDecimals(mint)
		frag.outMint = NATIVE_SOL_MINT_PROGRAM_ID
		frag.outAmount = solAmount
		frag.outDecimals = NATIVE_SOL_DECIMALS
	}
	return []fragment{frag}, nil
}

// signerTokenDelta sums the signer's balance change for one mint across
// every snapshotted token account.
func (ctx *parseContext) signerTokenDelta(mint solana.PublicKey) (int64, bool) {
	var delta int64
	var found bool
	for _, snap := range ctx.snapshots {
		if snap.Mint != mint || snap.Owner != ctx.signer {
			continue
		}
		delta += int64(snap.Post) - int64(snap.Pre)
		found = true
	}
	return delta, found
}

// signerLamportDelta is the fee payer's native balance change. The fee payer
// sits at account index 0.
func (ctx *parseContext) signerLamportDelta() (int64, bool) {
	meta := ctx.tx.Meta
	if meta == nil || len(meta.PreBalances) == 0 || len(meta.PostBalances) == 0 {
		return 0, false
	}
	return int64(meta.PostBalances[0]) - int64(meta.PreBalances[0]), true
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
