package txparser

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// dedupeFragments drops exact repeats of the same decoded record. Routers
// that re-walk their own inner instructions produce these.
func dedupeFragments(fragments []fragment) []fragment {
	if len(fragments) <= 1 {
		return fragments
	}
	seen := make(map[string]struct{}, len(fragments))
	out := fragments[:0]
	for _, f := range fragments {
		key := fmt.Sprintf("%d-%d-%s-%s-%d-%d", f.outerIndex, f.innerIndex, f.inMint, f.outMint, f.inAmount, f.outAmount)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

// legChain accumulates consecutive swap legs that hand one mint to the next.
type legChain struct {
	first, last fragment
	inAmount    uint64
	outAmount   uint64
	venue       solana.PublicKey
}

func newLegChain(f fragment) *legChain {
	return &legChain{first: f, last: f, inAmount: f.inAmount, outAmount: f.outAmount, venue: f.venue}
}

// extend absorbs the next leg into the chain when possible: either the leg
// consumes what the chain produced, or it is a parallel split of the same
// route. Returns false when the leg starts a new chain.
func (c *legChain) extend(f fragment) bool {
	if f.actor != c.last.actor {
		return false
	}
	switch {
	case f.inMint == c.last.outMint && f.inMint != c.first.inMint:
		c.last = f
		c.outAmount = f.outAmount
	case f.inMint == c.first.inMint && f.outMint == c.last.outMint:
		c.inAmount += f.inAmount
		c.outAmount += f.outAmount
	default:
		return false
	}
	if c.venue.IsZero() {
		c.venue = f.venue
	}
	return true
}

// assembleTrades turns swap fragments into the final trade list. Fragments
// must already be deduped; ordering follows execution position. Chaining is
// transaction-wide: legs join across outer-instruction boundaries whenever
// mint and actor continuity hold, so a route split over several top-level
// instructions still collapses into one trade.
func (ctx *parseContext) assembleTrades(fragments []fragment) []ParsedTrade {
	var swaps []fragment
	for _, f := range fragments {
		if f.kind == fragmentSwap {
			swaps = append(swaps, f)
		}
	}
	sortFragments(swaps)

	if !ctx.cfg.AggregateTrades {
		trades := make([]ParsedTrade, 0, len(swaps))
		for _, f := range swaps {
			if f.inMint == f.outMint {
				continue
			}
			trades = append(trades, ctx.buildTrade(f, f, f.inAmount, f.outAmount, f.venue))
		}
		return trades
	}

	var trades []ParsedTrade
	var chain *legChain
	flush := func() {
		if chain == nil {
			return
		}
		// a route that ends where it started is not a swap
		if chain.first.inMint != chain.last.outMint {
			trades = append(trades, ctx.buildTrade(chain.first, chain.last, chain.inAmount, chain.outAmount, chain.venue))
		}
		chain = nil
	}
	for _, f := range swaps {
		if chain != nil && chain.extend(f) {
			continue
		}
		flush()
		chain = newLegChain(f)
	}
	flush()
	return trades
}

func (ctx *parseContext) buildTrade(first, last fragment, inAmount, outAmount uint64, venue solana.PublicKey) ParsedTrade {
	return ParsedTrade{
		Signer: first.actor,

		InputMint:     first.inMint,
		InputAmount:   inAmount,
		InputDecimals: first.inDecimals,
		InputUIAmount: uiAmount(inAmount, first.inDecimals),

		OutputMint:     last.outMint,
		OutputAmount:   outAmount,
		OutputDecimals: last.outDecimals,
		OutputUIAmount: uiAmount(outAmount, last.outDecimals),

		Dex:   first.dex,
		Venue: venue,

		OuterIndex: first.outerIndex,
		InnerStart: first.innerIndex,
		InnerEnd:   last.innerIndex,

		Slot:      ctx.tx.Slot,
		BlockTime: ctx.blockTime,
	}
}

// liquidityEvents projects liquidity fragments for ParseAll callers.
func (ctx *parseContext) liquidityEvents(fragments []fragment) []LiquidityEvent {
	var events []LiquidityEvent
	for _, f := range fragments {
		var kind LiquidityKind
		switch f.kind {
		case fragmentLiquidityAdd:
			kind = LIQUIDITY_ADD
		case fragmentLiquidityRemove:
			kind = LIQUIDITY_REMOVE
		case fragmentLiquidityCreate:
			kind = LIQUIDITY_CREATE
		default:
			continue
		}
		events = append(events, LiquidityEvent{
			Signer:     f.actor,
			Kind:       kind,
			Dex:        f.dex,
			Venue:      f.venue,
			OuterIndex: f.outerIndex,
			Slot:       ctx.tx.Slot,
			BlockTime:  ctx.blockTime,
		})
	}
	return events
}
