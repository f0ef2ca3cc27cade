package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// decodeRaydium handles every Raydium program variant. Liquidity-management
// instructions are reported as liquidity fragments; everything else is a
// swap candidate resolved through transfer inference.
func decodeRaydium(ctx *parseContext, ix Instruction, outerIndex, innerIndex int) ([]fragment, error) {
	progID, ok := ctx.programID(ix)
	if !ok {
		return nil, structuralErrf(outerIndex, "program index %d out of range", ix.ProgramIDIndex)
	}
	if err := ctx.checkInstructionAccounts(ix, outerIndex); err != nil {
		return nil, err
	}
	venue := raydiumPoolAccount(ctx, ix, progID)

	if kind, isLiquidity := raydiumLiquidityKind(ix.Data, progID); isLiquidity {
		return []fragment{liquidityFragment(ctx, RAYDIUM, kind, outerIndex, venue)}, nil
	}
	return ctx.inferSwapFragments(RAYDIUM, outerIndex, venue)
}

func raydiumLiquidityKind(data []byte, progID solana.PublicKey) (fragmentKind, bool) {
	if progID == RAYDIUM_CPMM_PROGRAM_ID {
		switch {
		case hasDiscriminator(data, RAYDIUM_CPMM_CREATE_DISCRIMINATOR):
			return fragmentLiquidityCreate, true
		case hasDiscriminator(data, RAYDIUM_CPMM_ADD_DISCRIMINATOR):
			return fragmentLiquidityAdd, true
		case hasDiscriminator(data, RAYDIUM_CPMM_REMOVE_DISCRIMINATOR):
			return fragmentLiquidityRemove, true
		}
		return 0, false
	}
	if len(data) == 0 {
		return 0, false
	}
	// V4-style programs tag instructions with a single byte
	switch data[0] {
	case RAYDIUM_V4_CREATE:
		return fragmentLiquidityCreate, true
	case RAYDIUM_V4_ADD:
		return fragmentLiquidityAdd, true
	case RAYDIUM_V4_REMOVE:
		return fragmentLiquidityRemove, true
	}
	return 0, false
}

// raydiumPoolAccount picks the pool account by program variant; instructions
// carrying five accounts or fewer are admin plumbing without a pool.
func raydiumPoolAccount(ctx *parseContext, ix Instruction, progID solana.PublicKey) solana.PublicKey {
	if len(ix.Accounts) <= 5 {
		return solana.PublicKey{}
	}
	var n int
	switch progID {
	case RAYDIUM_V4_PROGRAM_ID, RAYDIUM_AMM_PROGRAM_ID, RAYDIUM_ROUTE_PROGRAM_ID:
		n = 1
	case RAYDIUM_CL_PROGRAM_ID:
		n = 2
	case RAYDIUM_CPMM_PROGRAM_ID:
		n = 3
	default:
		return solana.PublicKey{}
	}
	pool, _ := ctx.instructionAccount(ix, n)
	return pool
}

func liquidityFragment(ctx *parseContext, dex SwapType, kind fragmentKind, outerIndex int, venue solana.PublicKey) fragment {
	return fragment{
		kind:       kind,
		dex:        dex,
		outerIndex: outerIndex,
		innerIndex: -1,
		venue:      venue,
		actor:      ctx.signer,
	}
}
