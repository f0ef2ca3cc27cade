package txparser

import (
	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// JupiterSwapEvent is the borsh layout of a Jupiter v6 route event, emitted
// as a self-CPI for every hop of the route.
type JupiterSwapEvent struct {
	Amm          solana.PublicKey
	InputMint    solana.PublicKey
	InputAmount  uint64
	OutputMint   solana.PublicKey
	OutputAmount uint64
}

// decodeJupiterEvent decodes one Jupiter route event into a swap fragment.
// Instructions without the route-event discriminator match nothing.
func decodeJupiterEvent(ctx *parseContext, ix Instruction, outerIndex, innerIndex int) ([]fragment, error) {
	if !hasDiscriminator(ix.Data, JUPITER_ROUTE_EVENT_DISCRIMINATOR) {
		return nil, nil
	}

	decoder := ag_binary.NewBorshDecoder(ix.Data[16:])
	var event JupiterSwapEvent
	if err := decoder.Decode(&event); err != nil {
		return nil, decodeErrf(JUPITER, err, "route event")
	}
	if event.InputMint == event.OutputMint {
		return nil, decodeErrf(JUPITER, nil, "route event with identical input/output mint %s", event.InputMint)
	}

	return []fragment{{
		kind:        fragmentSwap,
		dex:         JUPITER,
		outerIndex:  outerIndex,
		innerIndex:  innerIndex,
		inMint:      event.InputMint,
		inAmount:    event.InputAmount,
		inDecimals:  ctx.mintDecimals(event.InputMint),
		outMint:     event.OutputMint,
		outAmount:   event.OutputAmount,
		outDecimals: ctx.mintDecimals(event.OutputMint),
		venue:       event.Amm,
		actor:       ctx.signer,
	}}, nil
}
