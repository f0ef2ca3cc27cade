package txparser

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swapFragment(outer, inner int, actor, inMint solana.PublicKey, inAmount uint64, outMint solana.PublicKey, outAmount uint64) fragment {
	return fragment{
		kind:       fragmentSwap,
		dex:        JUPITER,
		outerIndex: outer,
		innerIndex: inner,
		inMint:     inMint,
		inAmount:   inAmount,
		outMint:    outMint,
		outAmount:  outAmount,
		actor:      actor,
	}
}

func testContext(cfg *ParseConfig) *parseContext {
	if cfg == nil {
		cfg = DefaultParseConfig()
	}
	tx := newTestInput([]solana.PublicKey{solana.NewWallet().PublicKey()}, nil, nil, nil)
	return newParseContext(NewParser(), tx, cfg)
}

func TestDedupeFragments(t *testing.T) {
	actor := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	f := swapFragment(0, 0, actor, mintA, 100, mintB, 200)
	deduped := dedupeFragments([]fragment{f, f, f})
	assert.Len(t, deduped, 1)

	// same record at a different position is not a duplicate
	g := swapFragment(0, 1, actor, mintA, 100, mintB, 200)
	assert.Len(t, dedupeFragments([]fragment{f, g}), 2)
}

func TestAssembleTradesChainsByMint(t *testing.T) {
	actor := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	mintC := solana.NewWallet().PublicKey()
	mintD := solana.NewWallet().PublicKey()

	ctx := testContext(nil)
	// two chained legs and one unrelated swap
	trades := ctx.assembleTrades([]fragment{
		swapFragment(0, 0, actor, mintA, 100, mintB, 300),
		swapFragment(0, 1, actor, mintB, 300, mintC, 50),
		swapFragment(2, -1, actor, mintD, 10, mintA, 20),
	})

	require.Len(t, trades, 2)
	assert.Equal(t, mintA, trades[0].InputMint)
	assert.Equal(t, mintC, trades[0].OutputMint)
	assert.Equal(t, uint64(100), trades[0].InputAmount)
	assert.Equal(t, uint64(50), trades[0].OutputAmount)
	assert.Equal(t, mintD, trades[1].InputMint)
}

func TestAssembleTradesParallelSplitSums(t *testing.T) {
	actor := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	ctx := testContext(nil)
	trades := ctx.assembleTrades([]fragment{
		swapFragment(0, 0, actor, mintA, 100, mintB, 300),
		swapFragment(0, 1, actor, mintA, 50, mintB, 140),
	})

	require.Len(t, trades, 1)
	assert.Equal(t, uint64(150), trades[0].InputAmount)
	assert.Equal(t, uint64(440), trades[0].OutputAmount)
}

func TestAssembleTradesRoundTripDropped(t *testing.T) {
	actor := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	ctx := testContext(nil)
	// arbitrage loop ends where it started; no trade has equal mints
	trades := ctx.assembleTrades([]fragment{
		swapFragment(0, 0, actor, mintA, 100, mintB, 300),
		swapFragment(0, 1, actor, mintB, 300, mintA, 110),
	})
	assert.Empty(t, trades)
}

func TestAssembleTradesDifferentActorsDoNotChain(t *testing.T) {
	actor1 := solana.NewWallet().PublicKey()
	actor2 := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	mintC := solana.NewWallet().PublicKey()

	ctx := testContext(nil)
	trades := ctx.assembleTrades([]fragment{
		swapFragment(0, 0, actor1, mintA, 100, mintB, 300),
		swapFragment(0, 1, actor2, mintB, 300, mintC, 50),
	})
	require.Len(t, trades, 2)
	assert.Equal(t, actor1, trades[0].Signer)
	assert.Equal(t, actor2, trades[1].Signer)
}

func TestAssembleTradesEqualMintFragmentDropped(t *testing.T) {
	actor := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()

	cfg := DefaultParseConfig()
	cfg.AggregateTrades = false
	ctx := testContext(cfg)
	trades := ctx.assembleTrades([]fragment{
		swapFragment(0, 0, actor, mintA, 100, mintA, 100),
	})
	assert.Empty(t, trades)
}

func TestAssembleTradesIgnoresLiquidityFragments(t *testing.T) {
	actor := solana.NewWallet().PublicKey()
	ctx := testContext(nil)
	trades := ctx.assembleTrades([]fragment{
		{kind: fragmentLiquidityAdd, dex: RAYDIUM, outerIndex: 0, innerIndex: -1, actor: actor},
		{kind: fragmentLiquidityRemove, dex: METEORA, outerIndex: 1, innerIndex: -1, actor: actor},
	})
	assert.Empty(t, trades)
}
