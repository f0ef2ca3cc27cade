package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// PumpswapSwapEvent is the common shape of Pumpswap buy and sell events.
// The base token is the pool's traded token, the quote token is what it
// trades against; the user-side token accounts resolve the actual mints.
type PumpswapSwapEvent struct {
	BaseAmount            uint64
	QuoteAmount           uint64
	ProtocolFee           uint64
	CoinCreatorFee        uint64
	Pool                  solana.PublicKey
	User                  solana.PublicKey
	UserBaseTokenAccount  solana.PublicKey
	UserQuoteTokenAccount solana.PublicKey
}

func decodePumpswapEvent(ctx *parseContext, ix Instruction, outerIndex, innerIndex int) ([]fragment, error) {
	var isBuy bool
	switch {
	case hasDiscriminator(ix.Data, PUMPSWAP_BUY_EVENT_DISCRIMINATOR):
		isBuy = true
	case hasDiscriminator(ix.Data, PUMPSWAP_SELL_EVENT_DISCRIMINATOR):
	default:
		return nil, nil
	}

	event, err := parsePumpswapSwapEvent(ix.Data[16:], isBuy)
	if err != nil {
		return nil, err
	}

	baseInfo, baseKnown := ctx.tokenAccounts[event.UserBaseTokenAccount]
	quoteInfo, quoteKnown := ctx.tokenAccounts[event.UserQuoteTokenAccount]
	if !baseKnown || !quoteKnown {
		return nil, decodeErrf(PUMP_SWAP, nil, "swap event references unknown token accounts")
	}

	frag := fragment{
		kind:       fragmentSwap,
		dex:        PUMP_SWAP,
		outerIndex: outerIndex,
		innerIndex: innerIndex,
		venue:      event.Pool,
		actor:      event.User,
	}
	if isBuy {
		frag.inMint = quoteInfo.Mint
		frag.inAmount = event.QuoteAmount
		frag.inDecimals = ctx.mintDecimals(quoteInfo.Mint)
		frag.outMint = baseInfo.Mint
		frag.outAmount = event.BaseAmount
		frag.outDecimals = ctx.mintDecimals(baseInfo.Mint)
	} else {
		frag.inMint = baseInfo.Mint
		frag.inAmount = event.BaseAmount
		frag.inDecimals = ctx.mintDecimals(baseInfo.Mint)
		frag.outMint = quoteInfo.Mint
		frag.outAmount = event.QuoteAmount
		frag.outDecimals = ctx.mintDecimals(quoteInfo.Mint)
	}
	if frag.inMint == frag.outMint {
		return nil, decodeErrf(PUMP_SWAP, nil, "swap event with identical base/quote mint %s", frag.inMint)
	}
	return []fragment{frag}, nil
}

// parsePumpswapSwapEvent walks the fixed event schema. Buys report the
// effective quote paid at field 13 (quote_amount_in_with_lp_fee); sells
// report the quote received at field 14 (user_quote_amount_out).
func parsePumpswapSwapEvent(data []byte, isBuy bool) (*PumpswapSwapEvent, error) {
	dex := PUMP_SWAP
	r := NewRecordReader(data, 0)
	var event PumpswapSwapEvent
	var err error

	if err = r.Skip(8); err != nil { // timestamp
		return nil, decodeErrf(dex, err, "swap event timestamp")
	}
	if event.BaseAmount, err = r.ReadUint64(); err != nil {
		return nil, decodeErrf(dex, err, "swap event base amount")
	}
	// slippage bound, pool/user reserve snapshots, raw quote, lp fee bps+amount,
	// protocol fee bps
	if err = r.Skip(9 * 8); err != nil {
		return nil, decodeErrf(dex, err, "swap event reserves")
	}
	if event.ProtocolFee, err = r.ReadUint64(); err != nil {
		return nil, decodeErrf(dex, err, "swap event protocol fee")
	}
	if isBuy {
		if event.QuoteAmount, err = r.ReadUint64(); err != nil {
			return nil, decodeErrf(dex, err, "swap event quote amount")
		}
		if err = r.Skip(8); err != nil {
			return nil, decodeErrf(dex, err, "swap event user quote")
		}
	} else {
		if err = r.Skip(8); err != nil {
			return nil, decodeErrf(dex, err, "swap event quote without lp fee")
		}
		if event.QuoteAmount, err = r.ReadUint64(); err != nil {
			return nil, decodeErrf(dex, err, "swap event quote amount")
		}
	}
	if event.Pool, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(dex, err, "swap event pool")
	}
	if event.User, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(dex, err, "swap event user")
	}
	if event.UserBaseTokenAccount, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(dex, err, "swap event base token account")
	}
	if event.UserQuoteTokenAccount, err = r.ReadPubkey(); err != nil {
		return nil, decodeErrf(dex, err, "swap event quote token account")
	}
	// protocol fee recipient + its token account
	if err = r.Skip(64); err != nil {
		return nil, decodeErrf(dex, err, "swap event fee recipient")
	}
	// optional coin-creator tail: creator, fee bps, fee amount
	if r.Remaining() >= 48 {
		if err = r.Skip(40); err != nil {
			return nil, decodeErrf(dex, err, "swap event creator")
		}
		if event.CoinCreatorFee, err = r.ReadUint64(); err != nil {
			return nil, decodeErrf(dex, err, "swap event creator fee")
		}
	}
	return &event, nil
}
