package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// decodeMeteora handles DLMM, DAMM and DAMM v2 instructions. DLMM pools
// route rewards through extra transfers after the swap pair, so inference
// for them is capped at the first two transfers.
func decodeMeteora(ctx *parseContext, ix Instruction, outerIndex, innerIndex int) ([]fragment, error) {
	progID, ok := ctx.programID(ix)
	if !ok {
		return nil, structuralErrf(outerIndex, "program index %d out of range", ix.ProgramIDIndex)
	}
	if err := ctx.checkInstructionAccounts(ix, outerIndex); err != nil {
		return nil, err
	}
	venue := meteoraPoolAccount(ctx, ix, progID)

	if kind, isLiquidity := meteoraLiquidityKind(ix.Data); isLiquidity {
		return []fragment{liquidityFragment(ctx, METEORA, kind, outerIndex, venue)}, nil
	}

	if progID == METEORA_DLMM_PROGRAM_ID {
		transfers := ctx.transfersForGroup(outerIndex)
		if len(transfers) > 2 {
			transfers = transfers[:2]
		}
		fragments := ctx.pairTransferLegs(METEORA, outerIndex, venue, transfers)
		if len(fragments) > 0 {
			return fragments, nil
		}
		frag, err := ctx.netDeltaFragment(METEORA, outerIndex, venue)
		if err != nil {
			return nil, err
		}
		return []fragment{*frag}, nil
	}
	return ctx.inferSwapFragments(METEORA, outerIndex, venue)
}

func meteoraLiquidityKind(data []byte) (fragmentKind, bool) {
	switch {
	case hasDiscriminator(data, METEORA_DAMM_CREATE_DISCRIMINATOR),
		hasDiscriminator(data, METEORA_DAMM_V2_INIT_DISCRIMINATOR):
		return fragmentLiquidityCreate, true
	case hasDiscriminator(data, METEORA_DLMM_ADD_DISCRIMINATOR),
		hasDiscriminator(data, METEORA_DAMM_ADD_DISCRIMINATOR):
		return fragmentLiquidityAdd, true
	case hasDiscriminator(data, METEORA_DLMM_REMOVE_DISCRIMINATOR),
		hasDiscriminator(data, METEORA_DAMM_REMOVE_DISCRIMINATOR):
		return fragmentLiquidityRemove, true
	}
	return 0, false
}

// meteoraPoolAccount picks the pool account by program variant, mirroring
// raydiumPoolAccount.
func meteoraPoolAccount(ctx *parseContext, ix Instruction, progID solana.PublicKey) solana.PublicKey {
	if len(ix.Accounts) <= 5 {
		return solana.PublicKey{}
	}
	var n int
	switch progID {
	case METEORA_DLMM_PROGRAM_ID, METEORA_DAMM_PROGRAM_ID:
		n = 0
	case METEORA_DAMM_V2_PROGRAM_ID:
		n = 1
	default:
		return solana.PublicKey{}
	}
	pool, _ := ctx.instructionAccount(ix, n)
	return pool
}
