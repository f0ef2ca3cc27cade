package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// decodeOrca handles whirlpool instructions. Position-management
// instructions become liquidity fragments; everything else goes through
// transfer inference. Whirlpool instructions don't expose the pool at a
// stable account position, so the venue stays unset.
func decodeOrca(ctx *parseContext, ix Instruction, outerIndex, innerIndex int) ([]fragment, error) {
	if err := ctx.checkInstructionAccounts(ix, outerIndex); err != nil {
		return nil, err
	}
	if kind, isLiquidity := orcaLiquidityKind(ix.Data); isLiquidity {
		return []fragment{liquidityFragment(ctx, ORCA, kind, outerIndex, solana.PublicKey{})}, nil
	}
	return ctx.inferSwapFragments(ORCA, outerIndex, solana.PublicKey{})
}

func orcaLiquidityKind(data []byte) (fragmentKind, bool) {
	switch {
	case hasDiscriminator(data, ORCA_CREATE_DISCRIMINATOR),
		hasDiscriminator(data, ORCA_CREATE2_DISCRIMINATOR):
		return fragmentLiquidityCreate, true
	case hasDiscriminator(data, ORCA_INCREASE_LIQUIDITY_DISCRIMINATOR),
		hasDiscriminator(data, ORCA_INCREASE_LIQUIDITY2_DISCRIMINATOR):
		return fragmentLiquidityAdd, true
	case hasDiscriminator(data, ORCA_DECREASE_LIQUIDITY_DISCRIMINATOR):
		return fragmentLiquidityRemove, true
	}
	return 0, false
}
