package txparser

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestInput assembles a minimal TransactionInput. The meta may be nil for
// tests that only exercise structural handling.
func newTestInput(keys []solana.PublicKey, instructions []Instruction, inner []InnerInstructionSet, meta *TransactionMeta) *TransactionInput {
	blockTime := int64(1724900000)
	return &TransactionInput{
		Slot:              352000000,
		BlockTime:         &blockTime,
		Signatures:        []solana.Signature{{1}},
		AccountKeys:       keys,
		Instructions:      instructions,
		InnerInstructions: inner,
		Meta:              meta,
	}
}

func testTokenBalance(accountIndex uint32, mint, owner solana.PublicKey, amount uint64, decimals uint8) TokenBalance {
	return TokenBalance{
		AccountIndex: accountIndex,
		Mint:         mint,
		Owner:        owner,
		Amount:       amount,
		Decimals:     decimals,
	}
}

func jupiterRouteEventData(amm, inMint solana.PublicKey, inAmount uint64, outMint solana.PublicKey, outAmount uint64) []byte {
	data := append([]byte{}, JUPITER_ROUTE_EVENT_DISCRIMINATOR...)
	data = append(data, amm[:]...)
	data = append(data, inMint[:]...)
	data = binary.LittleEndian.AppendUint64(data, inAmount)
	data = append(data, outMint[:]...)
	data = binary.LittleEndian.AppendUint64(data, outAmount)
	return data
}

func pumpfunTradeEventData(mint solana.PublicKey, solAmount, tokenAmount uint64, isBuy bool, user solana.PublicKey, timestamp int64) []byte {
	data := append([]byte{}, PUMPFUN_TRADE_EVENT_DISCRIMINATOR...)
	data = append(data, mint[:]...)
	data = binary.LittleEndian.AppendUint64(data, solAmount)
	data = binary.LittleEndian.AppendUint64(data, tokenAmount)
	if isBuy {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}
	data = append(data, user[:]...)
	data = binary.LittleEndian.AppendUint64(data, uint64(timestamp))
	data = append(data, make([]byte, 16)...) // virtual reserves
	return data
}

func splTransferData(amount uint64) []byte {
	data := []byte{TOKEN_TRANSFER}
	return binary.LittleEndian.AppendUint64(data, amount)
}

func borshString(s string) []byte {
	data := binary.LittleEndian.AppendUint32(nil, uint32(len(s)))
	return append(data, []byte(s)...)
}

func TestParseNoDexActivity(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()

	tx := newTestInput(
		[]solana.PublicKey{signer, solana.SystemProgramID, recipient},
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{0, 2}, Data: []byte{2, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}}},
		nil, nil,
	)

	trades := Parse(tx, nil)
	assert.Empty(t, trades)
}

func TestParseNilAndEmptyInput(t *testing.T) {
	assert.Empty(t, Parse(nil, nil))

	result := ParseAll(newTestInput(nil, nil, nil, nil), nil)
	assert.Empty(t, result.Trades)
	assert.Empty(t, result.Liquidity)
}

func TestParseJupiterRouteEvent(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	amm := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	srcAccount := solana.NewWallet().PublicKey()
	dstAccount := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{signer, JUPITER_PROGRAM_ID, srcAccount, dstAccount}
	meta := &TransactionMeta{
		PostTokenBalances: []TokenBalance{
			testTokenBalance(2, mintA, signer, 0, 6),
			testTokenBalance(3, mintB, signer, 1_000_000_000, 9),
		},
	}
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 1, Data: jupiterRouteEventData(amm, mintA, 1_500_000, mintB, 1_000_000_000)},
		}}},
		meta,
	)

	trades := Parse(tx, nil)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.Equal(t, JUPITER, trade.Dex)
	assert.Equal(t, signer, trade.Signer)
	assert.Equal(t, mintA, trade.InputMint)
	assert.Equal(t, uint64(1_500_000), trade.InputAmount)
	assert.Equal(t, uint8(6), trade.InputDecimals)
	assert.True(t, trade.InputUIAmount.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, mintB, trade.OutputMint)
	assert.Equal(t, uint64(1_000_000_000), trade.OutputAmount)
	assert.True(t, trade.OutputUIAmount.Equal(decimal.RequireFromString("1")))
	assert.Equal(t, amm, trade.Venue)
	assert.Equal(t, 0, trade.OuterIndex)
	assert.Equal(t, 0, trade.InnerStart)
	assert.Equal(t, uint64(352000000), trade.Slot)
}

func TestParseJupiterMultiLegRoute(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	amm1 := solana.NewWallet().PublicKey()
	amm2 := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	mintC := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{signer, JUPITER_PROGRAM_ID}
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 1, Data: jupiterRouteEventData(amm1, mintA, 500, mintB, 900)},
			{ProgramIDIndex: 1, Data: jupiterRouteEventData(amm2, mintB, 900, mintC, 42)},
		}}},
		nil,
	)

	// default config collapses the route into one trade
	trades := Parse(tx, nil)
	require.Len(t, trades, 1)
	assert.Equal(t, mintA, trades[0].InputMint)
	assert.Equal(t, uint64(500), trades[0].InputAmount)
	assert.Equal(t, mintC, trades[0].OutputMint)
	assert.Equal(t, uint64(42), trades[0].OutputAmount)
	assert.Equal(t, 0, trades[0].InnerStart)
	assert.Equal(t, 1, trades[0].InnerEnd)

	// with aggregation off every leg survives, and the legs chain by mint
	cfg := DefaultParseConfig()
	cfg.AggregateTrades = false
	legs := Parse(tx, cfg)
	require.Len(t, legs, 2)
	assert.Equal(t, mintA, legs[0].InputMint)
	assert.Equal(t, mintB, legs[0].OutputMint)
	assert.Equal(t, legs[0].OutputMint, legs[1].InputMint)
	assert.Equal(t, mintC, legs[1].OutputMint)
}

func TestParseTruncatedEventData(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{signer, JUPITER_PROGRAM_ID}

	truncated := append([]byte{}, JUPITER_ROUTE_EVENT_DISCRIMINATOR...)
	truncated = append(truncated, 1, 2, 3)

	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 1, Data: truncated},
		}}},
		nil,
	)

	cfg := DefaultParseConfig()
	cfg.Diagnostics = true
	result := ParseAll(tx, cfg)
	assert.Empty(t, result.Trades)
	require.NotEmpty(t, result.Skipped)
	assert.Equal(t, 0, result.Skipped[0].OuterIndex)
	var decodeErr *DecodeError
	assert.ErrorAs(t, result.Skipped[0].Reason, &decodeErr)
}

func TestParseOutOfRangeIndexes(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	amm := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{signer, JUPITER_PROGRAM_ID}

	tx := newTestInput(keys,
		[]Instruction{
			{ProgramIDIndex: 200, Accounts: []uint8{0, 250}}, // nonsense indexes
			{ProgramIDIndex: 1},
		},
		[]InnerInstructionSet{
			{Index: 99, Instructions: []Instruction{{ProgramIDIndex: 1}}}, // no such outer
			{Index: 1, Instructions: []Instruction{
				{ProgramIDIndex: 1, Data: jupiterRouteEventData(amm, mintA, 10, mintB, 20)},
			}},
		},
		nil,
	)

	// the malformed instruction and inner set cost nothing but themselves
	trades := Parse(tx, nil)
	require.Len(t, trades, 1)
	assert.Equal(t, 1, trades[0].OuterIndex)
}

func TestParseUnknownDexInference(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()
	dexProgram := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	signerA := solana.NewWallet().PublicKey()
	signerB := solana.NewWallet().PublicKey()
	poolA := solana.NewWallet().PublicKey()
	poolB := solana.NewWallet().PublicKey()

	// 0 signer, 1 program, 2 token program, 3-6 token accounts
	keys := []solana.PublicKey{signer, dexProgram, solana.TokenProgramID, signerA, signerB, poolA, poolB}
	meta := &TransactionMeta{
		PreTokenBalances: []TokenBalance{
			testTokenBalance(3, mintA, signer, 1000, 6),
			testTokenBalance(4, mintB, signer, 0, 8),
			testTokenBalance(5, mintA, pool, 0, 6),
			testTokenBalance(6, mintB, pool, 500, 8),
		},
		PostTokenBalances: []TokenBalance{
			testTokenBalance(3, mintA, signer, 800, 6),
			testTokenBalance(4, mintB, signer, 100, 8),
			testTokenBalance(5, mintA, pool, 200, 6),
			testTokenBalance(6, mintB, pool, 400, 8),
		},
	}
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{0, 3, 4, 5, 6}}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 2, Accounts: []uint8{3, 5, 0}, Data: splTransferData(200)},
			{ProgramIDIndex: 2, Accounts: []uint8{6, 4, 1}, Data: splTransferData(100)},
		}}},
		meta,
	)

	trades := Parse(tx, nil)
	require.Len(t, trades, 1)
	assert.Equal(t, UNKNOWN, trades[0].Dex)
	assert.Equal(t, mintA, trades[0].InputMint)
	assert.Equal(t, uint64(200), trades[0].InputAmount)
	assert.Equal(t, mintB, trades[0].OutputMint)
	assert.Equal(t, uint64(100), trades[0].OutputAmount)
	assert.NotEqual(t, trades[0].InputMint, trades[0].OutputMint)

	// with the fallback off the same transaction is mute
	cfg := DefaultParseConfig()
	cfg.TryUnknownDex = false
	assert.Empty(t, Parse(tx, cfg))
}

func TestParseUnknownDexMintPairing(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	dexProgram := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	srcAccount := solana.NewWallet().PublicKey()
	dstAccount := solana.NewWallet().PublicKey()
	poolAccount := solana.NewWallet().PublicKey()

	// 0 signer, 1 program, 2 token program, 3-5 token accounts, 6 mint
	keys := []solana.PublicKey{signer, dexProgram, solana.TokenProgramID, srcAccount, dstAccount, poolAccount, mintB}
	meta := &TransactionMeta{
		PreTokenBalances: []TokenBalance{
			testTokenBalance(3, mintA, signer, 100, 6),
			testTokenBalance(4, mintB, signer, 0, 9),
		},
		PostTokenBalances: []TokenBalance{
			testTokenBalance(3, mintA, signer, 0, 6),
			testTokenBalance(4, mintB, signer, 250, 9),
		},
	}
	mintToData := []byte{TOKEN_MINT_TO}
	mintToData = binary.LittleEndian.AppendUint64(mintToData, 250)
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{0, 3, 4, 5, 6}}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 2, Accounts: []uint8{3, 5, 0}, Data: splTransferData(100)},
			{ProgramIDIndex: 2, Accounts: []uint8{6, 4, 1}, Data: mintToData},
		}}},
		meta,
	)

	// a bonding-curve style program pays out by minting, not transferring
	trades := Parse(tx, nil)
	require.Len(t, trades, 1)
	assert.Equal(t, UNKNOWN, trades[0].Dex)
	assert.Equal(t, mintA, trades[0].InputMint)
	assert.Equal(t, uint64(100), trades[0].InputAmount)
	assert.Equal(t, mintB, trades[0].OutputMint)
	assert.Equal(t, uint64(250), trades[0].OutputAmount)
	assert.Equal(t, uint8(9), trades[0].OutputDecimals)
}

func TestParseRaydiumSwap(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()
	poolState := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	signerA := solana.NewWallet().PublicKey()
	signerB := solana.NewWallet().PublicKey()
	poolA := solana.NewWallet().PublicKey()
	poolB := solana.NewWallet().PublicKey()

	// 0 signer, 1 raydium, 2 token program, 3 pool state, 4-7 token accounts
	keys := []solana.PublicKey{signer, RAYDIUM_V4_PROGRAM_ID, solana.TokenProgramID, poolState, signerA, signerB, poolA, poolB}
	meta := &TransactionMeta{
		PreTokenBalances: []TokenBalance{
			testTokenBalance(4, mintA, signer, 9000, 9),
			testTokenBalance(5, mintB, signer, 0, 6),
			testTokenBalance(6, mintA, pool, 0, 9),
			testTokenBalance(7, mintB, pool, 7000, 6),
		},
		PostTokenBalances: []TokenBalance{
			testTokenBalance(4, mintA, signer, 6000, 9),
			testTokenBalance(5, mintB, signer, 2500, 6),
			testTokenBalance(6, mintA, pool, 3000, 9),
			testTokenBalance(7, mintB, pool, 4500, 6),
		},
	}
	// swap tag 9, pool state at account position 1
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{2, 3, 0, 4, 5, 6, 7}, Data: []byte{9, 0, 0, 0}}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 2, Accounts: []uint8{4, 6, 0}, Data: splTransferData(3000)},
			{ProgramIDIndex: 2, Accounts: []uint8{7, 5, 1}, Data: splTransferData(2500)},
		}}},
		meta,
	)

	trades := Parse(tx, nil)
	require.Len(t, trades, 1)
	assert.Equal(t, RAYDIUM, trades[0].Dex)
	assert.Equal(t, poolState, trades[0].Venue)
	assert.Equal(t, mintA, trades[0].InputMint)
	assert.Equal(t, uint64(3000), trades[0].InputAmount)
	assert.Equal(t, mintB, trades[0].OutputMint)
	assert.Equal(t, uint64(2500), trades[0].OutputAmount)
}

func TestParseRaydiumLiquidityExcluded(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	poolState := solana.NewWallet().PublicKey()
	filler := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{signer, RAYDIUM_V4_PROGRAM_ID, poolState, filler}
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{0, 2, 3, 3, 3, 3, 3}, Data: []byte{RAYDIUM_V4_ADD, 0, 0}}},
		nil, nil,
	)

	result := ParseAll(tx, nil)
	assert.Empty(t, result.Trades, "liquidity management must never surface as a trade")
	require.Len(t, result.Liquidity, 1)
	assert.Equal(t, LIQUIDITY_ADD, result.Liquidity[0].Kind)
	assert.Equal(t, RAYDIUM, result.Liquidity[0].Dex)
	assert.Equal(t, poolState, result.Liquidity[0].Venue)
	assert.Equal(t, signer, result.Liquidity[0].Signer)
}

func TestParseOrcaLiquidityKinds(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{signer, ORCA_PROGRAM_ID}

	tx := newTestInput(keys,
		[]Instruction{
			{ProgramIDIndex: 1, Data: append([]byte{}, ORCA_INCREASE_LIQUIDITY_DISCRIMINATOR...)},
			{ProgramIDIndex: 1, Data: append([]byte{}, ORCA_DECREASE_LIQUIDITY_DISCRIMINATOR...)},
			{ProgramIDIndex: 1, Data: append([]byte{}, ORCA_CREATE_DISCRIMINATOR...)},
		},
		nil, nil,
	)

	result := ParseAll(tx, nil)
	assert.Empty(t, result.Trades)
	require.Len(t, result.Liquidity, 3)
	assert.Equal(t, LIQUIDITY_ADD, result.Liquidity[0].Kind)
	assert.Equal(t, LIQUIDITY_REMOVE, result.Liquidity[1].Kind)
	assert.Equal(t, LIQUIDITY_CREATE, result.Liquidity[2].Kind)
}

func TestParsePumpfunTradeEvent(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{user, PUMP_FUN_PROGRAM_ID}

	buy := pumpfunTradeEventData(mint, 2_000_000_000, 350_000_000, true, user, 1724900000)
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{{ProgramIDIndex: 1, Data: buy}}}},
		nil,
	)

	trades := Parse(tx, nil)
	require.Len(t, trades, 1)
	assert.Equal(t, PUMP_FUN, trades[0].Dex)
	assert.Equal(t, user, trades[0].Signer)
	assert.Equal(t, NATIVE_SOL_MINT_PROGRAM_ID, trades[0].InputMint)
	assert.Equal(t, uint64(2_000_000_000), trades[0].InputAmount)
	assert.Equal(t, NATIVE_SOL_DECIMALS, trades[0].InputDecimals)
	assert.Equal(t, mint, trades[0].OutputMint)
	assert.Equal(t, uint64(350_000_000), trades[0].OutputAmount)
	assert.Equal(t, PUMPFUN_TOKEN_DECIMALS, trades[0].OutputDecimals)

	// flip direction
	sell := pumpfunTradeEventData(mint, 1_900_000_000, 350_000_000, false, user, 1724900000)
	tx.InnerInstructions[0].Instructions[0].Data = sell
	trades = Parse(tx, nil)
	require.Len(t, trades, 1)
	assert.Equal(t, mint, trades[0].InputMint)
	assert.Equal(t, NATIVE_SOL_MINT_PROGRAM_ID, trades[0].OutputMint)
}

func TestParsePumpfunCreateEvent(t *testing.T) {
	creator := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	bondingCurve := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{creator, PUMP_FUN_PROGRAM_ID}

	data := append([]byte{}, PUMPFUN_CREATE_EVENT_DISCRIMINATOR...)
	data = append(data, borshString("Test Coin")...)
	data = append(data, borshString("TEST")...)
	data = append(data, borshString("https://example.com/meta.json")...)
	data = append(data, mint[:]...)
	data = append(data, bondingCurve[:]...)
	data = append(data, creator[:]...)

	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{{ProgramIDIndex: 1, Data: data}}}},
		nil,
	)

	result := ParseAll(tx, nil)
	assert.Empty(t, result.Trades)
	require.Len(t, result.Creations, 1)
	creation := result.Creations[0]
	assert.Equal(t, "Test Coin", creation.Name)
	assert.Equal(t, "TEST", creation.Symbol)
	assert.Equal(t, "https://example.com/meta.json", creation.URI)
	assert.Equal(t, mint, creation.Mint)
	assert.Equal(t, bondingCurve, creation.BondingCurve)
	assert.Equal(t, creator, creation.Creator)
}

func TestParseMoonshotBuy(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	tokenAccount := solana.NewWallet().PublicKey()
	filler := solana.NewWallet().PublicKey()

	// mint must sit at instruction account position 6
	keys := []solana.PublicKey{signer, MOONSHOT_PROGRAM_ID, tokenAccount, filler, mint}
	meta := &TransactionMeta{
		PreBalances:  []uint64{10_000_000_000, 0, 0, 0, 0},
		PostBalances: []uint64{8_900_000_000, 0, 0, 0, 0},
		PreTokenBalances: []TokenBalance{
			testTokenBalance(2, mint, signer, 0, 9),
		},
		PostTokenBalances: []TokenBalance{
			testTokenBalance(2, mint, signer, 500_000_000, 9),
		},
	}
	data := append([]byte{}, MOONSHOT_BUY_DISCRIMINATOR...)
	data = append(data, make([]byte, 25)...)
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{0, 2, 3, 3, 3, 3, 4, 3, 3, 3, 3}, Data: data}},
		nil, meta,
	)

	trades := Parse(tx, nil)
	require.Len(t, trades, 1)
	assert.Equal(t, MOONSHOT, trades[0].Dex)
	assert.Equal(t, NATIVE_SOL_MINT_PROGRAM_ID, trades[0].InputMint)
	assert.Equal(t, uint64(1_100_000_000), trades[0].InputAmount)
	assert.Equal(t, mint, trades[0].OutputMint)
	assert.Equal(t, uint64(500_000_000), trades[0].OutputAmount)
}

func TestParsePumpfunNativeMintRejected(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{user, PUMP_FUN_PROGRAM_ID}

	data := pumpfunTradeEventData(NATIVE_SOL_MINT_PROGRAM_ID, 2_000_000_000, 350_000_000, true, user, 1724900000)
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{{ProgramIDIndex: 1, Data: data}}}},
		nil,
	)

	// every returned trade must have distinct mints, aggregated or not
	cfg := DefaultParseConfig()
	cfg.AggregateTrades = false
	cfg.Diagnostics = true
	result := ParseAll(tx, cfg)
	assert.Empty(t, result.Trades)
	require.NotEmpty(t, result.Skipped)
	var decodeErr *DecodeError
	assert.ErrorAs(t, result.Skipped[0].Reason, &decodeErr)
	assert.Equal(t, PUMP_FUN, decodeErr.Dex)
}

func TestParseMoonshotNativeMintRejected(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	tokenAccount := solana.NewWallet().PublicKey()
	filler := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{signer, MOONSHOT_PROGRAM_ID, tokenAccount, filler, NATIVE_SOL_MINT_PROGRAM_ID}
	data := append([]byte{}, MOONSHOT_BUY_DISCRIMINATOR...)
	data = append(data, make([]byte, 25)...)
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{0, 2, 3, 3, 3, 3, 4, 3, 3, 3, 3}, Data: data}},
		nil, nil,
	)

	cfg := DefaultParseConfig()
	cfg.AggregateTrades = false
	cfg.Diagnostics = true
	result := ParseAll(tx, cfg)
	assert.Empty(t, result.Trades)
	require.NotEmpty(t, result.Skipped)
	var decodeErr *DecodeError
	assert.ErrorAs(t, result.Skipped[0].Reason, &decodeErr)
	assert.Equal(t, MOONSHOT, decodeErr.Dex)
}

func TestParseRaydiumOutOfRangeAccountIndex(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()
	poolState := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	signerA := solana.NewWallet().PublicKey()
	signerB := solana.NewWallet().PublicKey()
	poolA := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{signer, RAYDIUM_V4_PROGRAM_ID, solana.TokenProgramID, poolState, signerA, signerB, poolA}
	meta := &TransactionMeta{
		PreTokenBalances: []TokenBalance{
			testTokenBalance(4, mintA, signer, 9000, 9),
			testTokenBalance(5, mintB, signer, 0, 6),
			testTokenBalance(6, mintA, pool, 0, 9),
		},
		PostTokenBalances: []TokenBalance{
			testTokenBalance(4, mintA, signer, 6000, 9),
			testTokenBalance(5, mintB, signer, 2500, 6),
			testTokenBalance(6, mintA, pool, 3000, 9),
		},
	}
	// one account index points outside the 7-key sequence
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{2, 3, 0, 4, 5, 6, 250}, Data: []byte{9, 0, 0, 0}}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 2, Accounts: []uint8{4, 6, 0}, Data: splTransferData(3000)},
			{ProgramIDIndex: 2, Accounts: []uint8{6, 5, 1}, Data: splTransferData(2500)},
		}}},
		meta,
	)

	cfg := DefaultParseConfig()
	cfg.Diagnostics = true
	result := ParseAll(tx, cfg)
	assert.Empty(t, result.Trades, "an instruction with a bad account index must contribute nothing")
	require.NotEmpty(t, result.Skipped)
	var structErr *StructuralError
	assert.ErrorAs(t, result.Skipped[0].Reason, &structErr)
	assert.Equal(t, 0, structErr.OuterIndex)
}

func TestTransferCheckedMintNotDefaulted(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	srcAccount := solana.NewWallet().PublicKey()
	dstAccount := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{signer, solana.TokenProgramID, srcAccount, mint, dstAccount}
	data := []byte{TOKEN_TRANSFER_CHECKED}
	data = binary.LittleEndian.AppendUint64(data, 100)
	data = append(data, 6)

	// accounts: source, mint, destination, authority
	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1, Accounts: []uint8{2, 3, 4, 0}, Data: data}},
		nil, nil,
	)

	ctx := newParseContext(NewParser(), tx, DefaultParseConfig())
	_, mintDefaulted := ctx.tokenAccounts[mint]
	assert.False(t, mintDefaulted, "the mint of a transferChecked is not a token account")
	_, srcSeen := ctx.tokenAccounts[srcAccount]
	_, dstSeen := ctx.tokenAccounts[dstAccount]
	assert.True(t, srcSeen)
	assert.True(t, dstSeen)
}

func TestParseFamilyDisabled(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	amm := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{signer, JUPITER_PROGRAM_ID}

	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 1, Data: jupiterRouteEventData(amm, mintA, 10, mintB, 20)},
		}}},
		nil,
	)

	cfg := DefaultParseConfig()
	cfg.Families = map[SwapType]bool{JUPITER: false}
	assert.Empty(t, Parse(tx, cfg))

	// a non-nil map leaves unnamed families enabled
	cfg.Families = map[SwapType]bool{RAYDIUM: false}
	assert.Len(t, Parse(tx, cfg), 1)
}

func TestParseIsIdempotent(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	amm := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{signer, JUPITER_PROGRAM_ID}

	tx := newTestInput(keys,
		[]Instruction{{ProgramIDIndex: 1}},
		[]InnerInstructionSet{{Index: 0, Instructions: []Instruction{
			{ProgramIDIndex: 1, Data: jupiterRouteEventData(amm, mintA, 10, mintB, 20)},
		}}},
		nil,
	)

	first := ParseAll(tx, nil)
	second := ParseAll(tx, nil)
	require.Equal(t, first.Trades, second.Trades)
	require.Equal(t, first.Liquidity, second.Liquidity)
}

func TestParseResultMetadata(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	fee := uint64(5000)
	units := uint64(120000)
	meta := &TransactionMeta{Failed: true, Fee: &fee, ComputeUnits: &units}

	tx := newTestInput([]solana.PublicKey{signer, solana.SystemProgramID}, nil, nil, meta)
	result := ParseAll(tx, nil)

	assert.True(t, result.Failed)
	assert.Equal(t, fee, result.Fee)
	assert.Equal(t, units, result.ComputeUnits)
	assert.Equal(t, []solana.PublicKey{signer}, result.Signers)
	assert.Equal(t, int64(1724900000), result.BlockTime)
}
