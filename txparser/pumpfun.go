package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// PumpfunTradeEvent is the fixed-prefix portion of a Pumpfun trade event.
// Newer program versions append fee fields after the prefix.
type PumpfunTradeEvent struct {
	Mint        solana.PublicKey
	SolAmount   uint64
	TokenAmount uint64
	IsBuy       bool
	User        solana.PublicKey
	Timestamp   int64
	Fee         uint64
	HasFee      bool
}

// PumpfunCreateEvent is a token launch announcement.
type PumpfunCreateEvent struct {
	Name         string
	Symbol       string
	URI          string
	Mint         solana.PublicKey
	BondingCurve solana.PublicKey
	User         solana.PublicKey
}

// Pumpfun tokens trade against native SOL on a bonding curve with a fixed
// 6-decimal mint.
const PUMPFUN_TOKEN_DECIMALS uint8 = 6

// decodePumpfunEvent handles both trade and create events emitted by the
// bonding-curve program.
func decodePumpfunEvent(ctx *parseContext, ix Instruction, outerIndex, innerIndex int) ([]fragment, error) {
	switch {
	case hasDiscriminator(ix.Data, PUMPFUN_TRADE_EVENT_DISCRIMINATOR):
		event, err := parsePumpfunTradeEvent(ix.Data[16:])
		if err != nil {
			return nil, err
		}
		if event.Mint == NATIVE_SOL_MINT_PROGRAM_ID {
			return nil, decodeErrf(PUMP_FUN, nil, "trade event mint is native SOL")
		}
		frag := fragment{
			kind:       fragmentSwap,
			dex:        PUMP_FUN,
			outerIndex: outerIndex,
			innerIndex: innerIndex,
			actor:      event.User,
		}
		if event.IsBuy {
			frag.inMint = NATIVE_SOL_MINT_PROGRAM_ID
			frag.inAmount = event.SolAmount
			frag.inDecimals = NATIVE_SOL_DECIMALS
			frag.outMint = event.Mint
			frag.outAmount = event.TokenAmount
			frag.outDecimals = PUMPFUN_TOKEN_DECIMALS
		} else {
			frag.inMint = event.Mint
			frag.inAmount = event.TokenAmount
			frag.inDecimals = PUMPFUN_TOKEN_DECIMALS
			frag.outMint = NATIVE_SOL_MINT_PROGRAM_ID
			frag.outAmount = event.SolAmount
			frag.outDecimals = NATIVE_SOL_DECIMALS
		}
		return []fragment{frag}, nil

	case hasDiscriminator(ix.Data, PUMPFUN_CREATE_EVENT_DISCRIMINATOR):
		event, err := parsePumpfunCreateEvent(ix.Data[16:])
		if err != nil {
			return nil, err
		}
		ctx.creations = append(ctx.creations, TokenCreation{
			Name:         event.Name,
			Symbol:       event.Symbol,
			URI:          event.URI,
			Mint:         event.Mint,
			BondingCurve: event.BondingCurve,
			Creator:      event.User,
			OuterIndex:   outerIndex,
		})
		return nil, nil
	}
	return nil, nil
}

func parsePumpfunTradeEvent(data []byte) (*PumpfunTradeEvent, error) {
	r := NewRecordReader(data, 0)
	var event PumpfunTradeEvent
	var err error
	if event.Mint, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "trade event mint")
	}
	if event.SolAmount, err = r.ReadUint64(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "trade event sol amount")
	}
	if event.TokenAmount, err = r.ReadUint64(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "trade event token amount")
	}
	if event.IsBuy, err = r.ReadBool(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "trade event direction")
	}
	if event.User, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "trade event user")
	}
	if event.Timestamp, err = r.ReadInt64(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "trade event timestamp")
	}
	// virtual reserve snapshots, unused here
	if err = r.Skip(16); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "trade event reserves")
	}
	// fee tail: real reserves, fee recipient, fee bps, fee lamports
	if r.Remaining() >= 58 {
		if err = r.Skip(16 + 32 + 2); err != nil {
			return nil, decodeErrf(PUMP_FUN, err, "trade event fee tail")
		}
		if event.Fee, err = r.ReadUint64(); err != nil {
			return nil, decodeErrf(PUMP_FUN, err, "trade event fee")
		}
		event.HasFee = true
	}
	return &event, nil
}

func parsePumpfunCreateEvent(data []byte) (*PumpfunCreateEvent, error) {
	r := NewBorshReader(data, 0)
	var event PumpfunCreateEvent
	var err error
	if event.Name, err = r.ReadString(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "create event name")
	}
	if event.Symbol, err = r.ReadString(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "create event symbol")
	}
	if event.URI, err = r.ReadString(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "create event uri")
	}
	if event.Mint, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "create event mint")
	}
	if event.BondingCurve, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "create event bonding curve")
	}
	if event.User, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(PUMP_FUN, err, "create event user")
	}
	return &event, nil
}
