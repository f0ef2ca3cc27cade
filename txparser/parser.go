package txparser

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

// Parser decodes DEX activity from Solana transactions. It carries no
// per-transaction state: one Parser may serve any number of concurrent
// Parse calls.
type Parser struct {
	Log *logrus.Logger
}

func NewParser() *Parser {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	return &Parser{Log: log}
}

var defaultParser = NewParser()

// Parse decodes the swaps of one transaction. A nil cfg means defaults.
// Parse never fails: structural defects cost only the instructions they
// touch, and a transaction without recognizable DEX activity yields an
// empty slice.
func Parse(tx *TransactionInput, cfg *ParseConfig) []ParsedTrade {
	return defaultParser.Parse(tx, cfg)
}

// ParseAll decodes trades plus liquidity events, token creations and
// transaction-level metadata.
func ParseAll(tx *TransactionInput, cfg *ParseConfig) *ParseResult {
	return defaultParser.ParseAll(tx, cfg)
}

func (p *Parser) Parse(tx *TransactionInput, cfg *ParseConfig) []ParsedTrade {
	return p.ParseAll(tx, cfg).Trades
}

func (p *Parser) ParseAll(tx *TransactionInput, cfg *ParseConfig) *ParseResult {
	if cfg == nil {
		cfg = DefaultParseConfig()
	}

	result := &ParseResult{}
	if tx == nil {
		return result
	}
	result.Slot = tx.Slot
	if tx.BlockTime != nil {
		result.BlockTime = *tx.BlockTime
	}
	if len(tx.Signatures) > 0 {
		result.Signature = tx.Signatures[0]
	}
	if tx.Meta != nil {
		result.Failed = tx.Meta.Failed
		if tx.Meta.Fee != nil {
			result.Fee = *tx.Meta.Fee
		}
		if tx.Meta.ComputeUnits != nil {
			result.ComputeUnits = *tx.Meta.ComputeUnits
		}
	}
	if n := len(tx.Signatures); n > 0 && n <= len(tx.AccountKeys) {
		result.Signers = append(result.Signers, tx.AccountKeys[:n]...)
	}

	ctx := newParseContext(p, tx, cfg)
	for _, outer := range ctx.badInnerSets {
		ctx.skip(outer, -1, structuralErrf(outer, "inner instruction set references missing outer instruction"))
	}

	fragments := p.decodeInstructions(ctx)
	fragments = dedupeFragments(fragments)

	result.Trades = ctx.assembleTrades(fragments)
	result.Liquidity = ctx.liquidityEvents(fragments)
	result.Creations = ctx.creations
	result.Skipped = ctx.skipped
	return result
}

// decodeInstructions walks every outer instruction once, dispatching it and
// its inner set through the registry. Decoder failures are contained to the
// instruction that produced them.
func (p *Parser) decodeInstructions(ctx *parseContext) []fragment {
	var fragments []fragment

	for outerIndex, ix := range ctx.tx.Instructions {
		progID, ok := ctx.programID(ix)
		if !ok {
			ctx.skip(outerIndex, -1, structuralErrf(outerIndex, "program index %d out of range", ix.ProgramIDIndex))
			continue
		}

		outerMatched := false
		if entry, found := outerDecoders[progID]; found {
			outerMatched = true
			if ctx.cfg.familyEnabled(entry.family) {
				frags, err := entry.decode(ctx, ix, outerIndex, -1)
				if err != nil {
					ctx.skip(outerIndex, -1, err)
				} else {
					fragments = append(fragments, frags...)
				}
			}
		}

		eventMatched := false
		for innerIndex, inner := range ctx.innerFor(outerIndex) {
			innerProgID, ok := ctx.programID(inner)
			if !ok {
				ctx.skip(outerIndex, innerIndex, structuralErrf(outerIndex, "inner program index %d out of range", inner.ProgramIDIndex))
				continue
			}
			entry, found := innerDecoders[innerProgID]
			if !found {
				continue
			}
			eventMatched = true
			if !ctx.cfg.familyEnabled(entry.family) {
				continue
			}
			frags, err := entry.decode(ctx, inner, outerIndex, innerIndex)
			if err != nil {
				ctx.skip(outerIndex, innerIndex, err)
			} else {
				fragments = append(fragments, frags...)
			}
		}

		if outerMatched || eventMatched || !ctx.cfg.TryUnknownDex {
			continue
		}
		if !unknownDexCandidate(progID) {
			continue
		}
		if err := ctx.checkInstructionAccounts(ix, outerIndex); err != nil {
			ctx.skip(outerIndex, -1, err)
			continue
		}
		frags, err := ctx.inferSwapFragments(UNKNOWN, outerIndex, solana.PublicKey{})
		if err != nil {
			ctx.skip(outerIndex, -1, err)
			continue
		}
		fragments = append(fragments, frags...)
	}
	return fragments
}

// unknownDexCandidate rejects programs that can never be a DEX before the
// fallback spends time on transfer inference.
func unknownDexCandidate(progID solana.PublicKey) bool {
	if _, event := innerDecoders[progID]; event {
		return false
	}
	_, nonDex := nonDexPrograms[progID]
	return !nonDex
}
