package txparser

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// TransactionInput is an immutable snapshot of one fetched transaction.
// Account indexes anywhere in the input reference AccountKeys plus any
// address-table-loaded accounts from Meta; the parser bounds-checks every
// lookup and never trusts the indexes.
type TransactionInput struct {
	Slot              uint64
	BlockTime         *int64
	Version           *uint8
	Signatures        []solana.Signature
	AccountKeys       []solana.PublicKey
	Instructions      []Instruction
	InnerInstructions []InnerInstructionSet
	Meta              *TransactionMeta
}

// Instruction is a compiled instruction: program and accounts are indexes
// into the combined account key sequence.
type Instruction struct {
	ProgramIDIndex uint8
	Data           []byte
	Accounts       []uint8
}

// InnerInstructionSet groups the inner instructions emitted while executing
// the outer instruction at Index, in emission order.
type InnerInstructionSet struct {
	Index        uint32
	Instructions []Instruction
}

// TransactionMeta carries execution metadata. Inner instructions may be
// supplied here (RPC shape) or on TransactionInput directly (Geyser shape);
// when both are set the meta copy wins.
type TransactionMeta struct {
	Failed            bool
	Fee               *uint64
	PreBalances       []uint64
	PostBalances      []uint64
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance
	InnerInstructions []InnerInstructionSet
	LoadedAddresses   *LoadedAddresses
	ComputeUnits      *uint64
}

// TokenBalance is a pre- or post-execution token account snapshot.
type TokenBalance struct {
	AccountIndex uint32
	Mint         solana.PublicKey
	Owner        solana.PublicKey
	Amount       uint64
	Decimals     uint8
}

// LoadedAddresses are the extra accounts resolved from address lookup
// tables, logically appended to AccountKeys (writable first).
type LoadedAddresses struct {
	Writable []solana.PublicKey
	ReadOnly []solana.PublicKey
}

// ParseConfig controls which decoders run and how fragments are merged.
type ParseConfig struct {
	// TryUnknownDex runs transfer inference against outer instructions whose
	// program has no registry entry.
	TryUnknownDex bool
	// AggregateTrades collapses multi-leg routes inside one outer instruction
	// into a single trade; when false every swap leg is returned unchanged.
	AggregateTrades bool
	// Families enables or disables individual DEX families. A nil map means
	// all families are enabled; a family missing from a non-nil map is
	// enabled unless explicitly set to false.
	Families map[SwapType]bool
	// Diagnostics collects skipped-instruction reasons into ParseResult.
	Diagnostics bool
}

// DefaultParseConfig returns the documented defaults: every family enabled,
// unknown-program inference and trade aggregation both on.
func DefaultParseConfig() *ParseConfig {
	return &ParseConfig{
		TryUnknownDex:   true,
		AggregateTrades: true,
	}
}

func (c *ParseConfig) familyEnabled(family SwapType) bool {
	if c.Families == nil {
		return true
	}
	enabled, ok := c.Families[family]
	return !ok || enabled
}

// ParsedTrade is one logical swap: a single input mint traded for a single
// output mint by one actor. InputMint and OutputMint are never equal.
type ParsedTrade struct {
	Signer solana.PublicKey

	InputMint     solana.PublicKey
	InputAmount   uint64
	InputDecimals uint8
	InputUIAmount decimal.Decimal

	OutputMint     solana.PublicKey
	OutputAmount   uint64
	OutputDecimals uint8
	OutputUIAmount decimal.Decimal

	Dex   SwapType
	Venue solana.PublicKey

	OuterIndex int
	// InnerStart/InnerEnd bound the inner instructions the trade was decoded
	// from; both are -1 when the trade came from the outer instruction alone.
	InnerStart int
	InnerEnd   int

	Slot      uint64
	BlockTime int64
}

// LiquidityKind classifies a liquidity-management instruction.
type LiquidityKind string

const (
	LIQUIDITY_ADD    LiquidityKind = "Add"
	LIQUIDITY_REMOVE LiquidityKind = "Remove"
	LIQUIDITY_CREATE LiquidityKind = "Create"
)

// LiquidityEvent reports a liquidity-management instruction of a
// transfer-based family. These never appear in trade output.
type LiquidityEvent struct {
	Signer     solana.PublicKey
	Kind       LiquidityKind
	Dex        SwapType
	Venue      solana.PublicKey
	OuterIndex int
	Slot       uint64
	BlockTime  int64
}

// TokenCreation is a Pumpfun token launch decoded from its create event.
type TokenCreation struct {
	Name         string
	Symbol       string
	URI          string
	Mint         solana.PublicKey
	BondingCurve solana.PublicKey
	Creator      solana.PublicKey
	OuterIndex   int
}

// SkippedInstruction records why an instruction contributed nothing, for
// callers that enable diagnostics.
type SkippedInstruction struct {
	OuterIndex int
	// InnerIndex is -1 when the outer instruction itself was skipped.
	InnerIndex int
	Reason     error
}

// ParseResult is the full output of ParseAll.
type ParseResult struct {
	Trades    []ParsedTrade
	Liquidity []LiquidityEvent
	Creations []TokenCreation
	Skipped   []SkippedInstruction

	Signature    solana.Signature
	Signers      []solana.PublicKey
	Slot         uint64
	BlockTime    int64
	Fee          uint64
	ComputeUnits uint64
	Failed       bool
}

// kinds of decoded fragments, internal to the parse pipeline
type fragmentKind int

const (
	fragmentSwap fragmentKind = iota
	fragmentLiquidityAdd
	fragmentLiquidityRemove
	fragmentLiquidityCreate
	fragmentOther
)

// fragment is one protocol-specific decoded record before aggregation.
type fragment struct {
	kind fragmentKind
	dex  SwapType

	outerIndex int
	innerIndex int // -1 when decoded from the outer instruction itself

	inMint      solana.PublicKey
	inAmount    uint64
	inDecimals  uint8
	outMint     solana.PublicKey
	outAmount   uint64
	outDecimals uint8

	venue solana.PublicKey
	actor solana.PublicKey
}

func uiAmount(raw uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-int32(decimals))
}
