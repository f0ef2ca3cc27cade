package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// tokenAccountInfo resolves a token account to its mint, owner and decimals.
type tokenAccountInfo struct {
	Mint     solana.PublicKey
	Owner    solana.PublicKey
	Decimals uint8
}

// tokenSnapshot holds the pre/post raw balances of one token account.
type tokenSnapshot struct {
	Mint         solana.PublicKey
	Owner        solana.PublicKey
	Pre          uint64
	Post         uint64
	HasPre       bool
	HasPost      bool
	PreDecimals  uint8
	PostDecimals uint8
}

// parseContext is the working state of a single parse call. It is built
// fresh from the input and discarded when the call returns; nothing in it is
// shared across calls.
type parseContext struct {
	parser *Parser
	tx     *TransactionInput
	cfg    *ParseConfig

	allAccountKeys []solana.PublicKey
	innerSets      map[int][]Instruction
	badInnerSets   []int // inner sets whose outer index is out of range

	tokenAccounts map[solana.PublicKey]tokenAccountInfo
	snapshots     map[uint32]*tokenSnapshot
	decimals      map[solana.PublicKey]uint8

	signer    solana.PublicKey
	blockTime int64

	skipped   []SkippedInstruction
	creations []TokenCreation
}

func newParseContext(p *Parser, tx *TransactionInput, cfg *ParseConfig) *parseContext {
	ctx := &parseContext{
		parser:        p,
		tx:            tx,
		cfg:           cfg,
		tokenAccounts: make(map[solana.PublicKey]tokenAccountInfo),
		snapshots:     make(map[uint32]*tokenSnapshot),
		decimals:      make(map[solana.PublicKey]uint8),
	}

	ctx.allAccountKeys = append(ctx.allAccountKeys, tx.AccountKeys...)
	if tx.Meta != nil && tx.Meta.LoadedAddresses != nil {
		ctx.allAccountKeys = append(ctx.allAccountKeys, tx.Meta.LoadedAddresses.Writable...)
		ctx.allAccountKeys = append(ctx.allAccountKeys, tx.Meta.LoadedAddresses.ReadOnly...)
	}

	if tx.BlockTime != nil {
		ctx.blockTime = *tx.BlockTime
	}
	if len(ctx.allAccountKeys) > 0 {
		ctx.signer = ctx.allAccountKeys[0]
	}
	// Jupiter DCA fills route on behalf of the user; the real actor sits at
	// account index 2, not the fee-paying keeper.
	if ctx.containsDCAProgram() && len(ctx.allAccountKeys) > 2 {
		ctx.signer = ctx.allAccountKeys[2]
	}

	ctx.buildInnerSets()
	ctx.buildTokenMaps()
	return ctx
}

func (ctx *parseContext) accountKey(index int) (solana.PublicKey, bool) {
	if index < 0 || index >= len(ctx.allAccountKeys) {
		return solana.PublicKey{}, false
	}
	return ctx.allAccountKeys[index], true
}

// instructionAccount resolves the n-th account of an instruction, bounds
// checking both the account list and the key sequence.
func (ctx *parseContext) instructionAccount(ix Instruction, n int) (solana.PublicKey, bool) {
	if n < 0 || n >= len(ix.Accounts) {
		return solana.PublicKey{}, false
	}
	return ctx.accountKey(int(ix.Accounts[n]))
}

func (ctx *parseContext) programID(ix Instruction) (solana.PublicKey, bool) {
	return ctx.accountKey(int(ix.ProgramIDIndex))
}

// checkInstructionAccounts validates every account index a matched
// instruction carries before its decoder resolves any of them. A single bad
// index disqualifies the whole instruction.
func (ctx *parseContext) checkInstructionAccounts(ix Instruction, outerIndex int) error {
	for _, idx := range ix.Accounts {
		if int(idx) >= len(ctx.allAccountKeys) {
			return structuralErrf(outerIndex, "account index %d out of range", idx)
		}
	}
	return nil
}

func (ctx *parseContext) containsDCAProgram() bool {
	for _, key := range ctx.allAccountKeys {
		switch key {
		case JUPITER_DCA_PROGRAM_ID,
			JUPITER_DCA_KEEPER1_PROGRAM_ID,
			JUPITER_DCA_KEEPER2_PROGRAM_ID,
			JUPITER_DCA_KEEPER3_PROGRAM_ID:
			return true
		}
	}
	return false
}

// buildInnerSets indexes inner instructions by their outer instruction.
// Sets referencing a non-existent outer instruction are remembered as
// structural defects and otherwise ignored.
func (ctx *parseContext) buildInnerSets() {
	ctx.innerSets = make(map[int][]Instruction)

	sets := ctx.tx.InnerInstructions
	if ctx.tx.Meta != nil && len(ctx.tx.Meta.InnerInstructions) > 0 {
		sets = ctx.tx.Meta.InnerInstructions
	}
	for _, set := range sets {
		outer := int(set.Index)
		if outer >= len(ctx.tx.Instructions) {
			ctx.badInnerSets = append(ctx.badInnerSets, outer)
			continue
		}
		ctx.innerSets[outer] = append(ctx.innerSets[outer], set.Instructions...)
	}
}

func (ctx *parseContext) innerFor(outerIndex int) []Instruction {
	return ctx.innerSets[outerIndex]
}

// buildTokenMaps populates the token-account and mint-decimal lookups from
// the balance snapshots, then from transfer instructions for accounts the
// snapshots never mention. Accounts that only ever move unlabelled value are
// treated as wrapped SOL, which is what they are in practice.
func (ctx *parseContext) buildTokenMaps() {
	if ctx.tx.Meta != nil {
		for i := range ctx.tx.Meta.PreTokenBalances {
			ctx.recordSnapshot(&ctx.tx.Meta.PreTokenBalances[i], true)
		}
		for i := range ctx.tx.Meta.PostTokenBalances {
			ctx.recordSnapshot(&ctx.tx.Meta.PostTokenBalances[i], false)
		}
	}

	scan := func(ix Instruction) {
		progID, ok := ctx.programID(ix)
		if !ok || !isTokenProgram(progID) {
			return
		}
		if len(ix.Data) == 0 {
			return
		}
		// positions of actual token accounts per instruction tag; the
		// transferChecked mint and the authorities must not be defaulted
		var positions []int
		switch ix.Data[0] {
		case TOKEN_TRANSFER:
			positions = []int{0, 1}
		case TOKEN_TRANSFER_CHECKED:
			positions = []int{0, 2}
		default:
			return
		}
		for _, n := range positions {
			acc, ok := ctx.instructionAccount(ix, n)
			if !ok {
				continue
			}
			if _, seen := ctx.tokenAccounts[acc]; !seen {
				ctx.tokenAccounts[acc] = tokenAccountInfo{
					Mint:     NATIVE_SOL_MINT_PROGRAM_ID,
					Decimals: NATIVE_SOL_DECIMALS,
				}
			}
		}
	}
	for _, ix := range ctx.tx.Instructions {
		scan(ix)
	}
	for _, inner := range ctx.innerSets {
		for _, ix := range inner {
			scan(ix)
		}
	}

	if _, ok := ctx.decimals[NATIVE_SOL_MINT_PROGRAM_ID]; !ok {
		ctx.decimals[NATIVE_SOL_MINT_PROGRAM_ID] = NATIVE_SOL_DECIMALS
	}
}

func (ctx *parseContext) recordSnapshot(balance *TokenBalance, pre bool) {
	snap, ok := ctx.snapshots[balance.AccountIndex]
	if !ok {
		snap = &tokenSnapshot{Mint: balance.Mint, Owner: balance.Owner}
		ctx.snapshots[balance.AccountIndex] = snap
	}
	if pre {
		snap.Pre = balance.Amount
		snap.HasPre = true
		snap.PreDecimals = balance.Decimals
	} else {
		snap.Post = balance.Amount
		snap.HasPost = true
		snap.PostDecimals = balance.Decimals
	}

	if key, ok := ctx.accountKey(int(balance.AccountIndex)); ok {
		ctx.tokenAccounts[key] = tokenAccountInfo{
			Mint:     balance.Mint,
			Owner:    balance.Owner,
			Decimals: balance.Decimals,
		}
	}
	if !balance.Mint.IsZero() {
		ctx.decimals[balance.Mint] = balance.Decimals
	}
}

// mintDecimals returns the known decimal exponent for a mint, 0 when the
// snapshots never mentioned it.
func (ctx *parseContext) mintDecimals(mint solana.PublicKey) uint8 {
	return ctx.decimals[mint]
}

func (ctx *parseContext) skip(outerIndex, innerIndex int, reason error) {
	ctx.parser.Log.Debugf("instruction %d/%d skipped: %v", outerIndex, innerIndex, reason)
	if ctx.cfg.Diagnostics {
		ctx.skipped = append(ctx.skipped, SkippedInstruction{
			OuterIndex: outerIndex,
			InnerIndex: innerIndex,
			Reason:     reason,
		})
	}
}

func isTokenProgram(progID solana.PublicKey) bool {
	return progID == solana.TokenProgramID || progID == solana.Token2022ProgramID
}
