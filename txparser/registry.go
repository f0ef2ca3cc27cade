package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// Anchor instruction and self-CPI event discriminators.
var (
	JUPITER_ROUTE_EVENT_DISCRIMINATOR = []byte{228, 69, 165, 46, 81, 203, 154, 29, 64, 198, 205, 232, 38, 8, 113, 226}

	PUMPFUN_TRADE_EVENT_DISCRIMINATOR  = []byte{228, 69, 165, 46, 81, 203, 154, 29, 189, 219, 127, 211, 78, 230, 97, 238}
	PUMPFUN_CREATE_EVENT_DISCRIMINATOR = []byte{228, 69, 165, 46, 81, 203, 154, 29, 27, 114, 169, 77, 222, 235, 99, 118}

	PUMPSWAP_BUY_EVENT_DISCRIMINATOR  = []byte{228, 69, 165, 46, 81, 203, 154, 29, 103, 244, 82, 31, 44, 245, 119, 119}
	PUMPSWAP_SELL_EVENT_DISCRIMINATOR = []byte{228, 69, 165, 46, 81, 203, 154, 29, 62, 47, 55, 10, 165, 3, 220, 42}

	MOONSHOT_BUY_DISCRIMINATOR  = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	MOONSHOT_SELL_DISCRIMINATOR = []byte{51, 230, 133, 164, 1, 127, 131, 173}

	RAYDIUM_CPMM_CREATE_DISCRIMINATOR = []byte{175, 175, 109, 31, 13, 152, 155, 237}
	RAYDIUM_CPMM_ADD_DISCRIMINATOR    = []byte{242, 35, 198, 137, 82, 225, 242, 182}
	RAYDIUM_CPMM_REMOVE_DISCRIMINATOR = []byte{183, 18, 70, 156, 148, 109, 161, 34}

	ORCA_CREATE_DISCRIMINATOR              = []byte{242, 29, 134, 48, 58, 110, 14, 60}
	ORCA_CREATE2_DISCRIMINATOR             = []byte{212, 47, 95, 92, 114, 102, 131, 250}
	ORCA_INCREASE_LIQUIDITY_DISCRIMINATOR  = []byte{46, 156, 243, 118, 13, 205, 251, 178}
	ORCA_INCREASE_LIQUIDITY2_DISCRIMINATOR = []byte{133, 29, 89, 223, 69, 238, 176, 10}
	ORCA_DECREASE_LIQUIDITY_DISCRIMINATOR  = []byte{160, 38, 208, 111, 104, 91, 44, 1}

	METEORA_DLMM_ADD_DISCRIMINATOR     = []byte{181, 157, 89, 67, 143, 182, 52, 72}
	METEORA_DLMM_REMOVE_DISCRIMINATOR  = []byte{80, 85, 209, 72, 24, 206, 177, 108}
	METEORA_DAMM_CREATE_DISCRIMINATOR  = []byte{7, 166, 138, 171, 206, 171, 236, 244}
	METEORA_DAMM_ADD_DISCRIMINATOR     = []byte{168, 227, 50, 62, 189, 171, 84, 176}
	METEORA_DAMM_REMOVE_DISCRIMINATOR  = []byte{133, 109, 44, 179, 56, 238, 114, 33}
	METEORA_DAMM_V2_INIT_DISCRIMINATOR = []byte{95, 180, 10, 172, 84, 174, 232, 40}
)

// Raydium V4 single-byte instruction tags.
const (
	RAYDIUM_V4_CREATE byte = 1
	RAYDIUM_V4_ADD    byte = 3
	RAYDIUM_V4_REMOVE byte = 4
)

// decodeFunc decodes one instruction into zero or more fragments. A nil
// fragment slice with a nil error means the instruction matched nothing.
type decodeFunc func(ctx *parseContext, ix Instruction, outerIndex, innerIndex int) ([]fragment, error)

type decoderEntry struct {
	family SwapType
	decode decodeFunc
}

// Dispatch tables, built once at init and never mutated afterwards.
// outerDecoders match the program of a top-level instruction;
// innerDecoders match self-CPI event instructions nested under it.
var (
	outerDecoders map[solana.PublicKey]decoderEntry
	innerDecoders map[solana.PublicKey]decoderEntry

	// programs that can never host a swap; unknown-DEX inference skips them
	nonDexPrograms map[solana.PublicKey]struct{}
)

func init() {
	outerDecoders = map[solana.PublicKey]decoderEntry{
		RAYDIUM_V4_PROGRAM_ID:    {RAYDIUM, decodeRaydium},
		RAYDIUM_ROUTE_PROGRAM_ID: {RAYDIUM, decodeRaydium},
		RAYDIUM_AMM_PROGRAM_ID:   {RAYDIUM, decodeRaydium},
		RAYDIUM_CPMM_PROGRAM_ID:  {RAYDIUM, decodeRaydium},
		RAYDIUM_CL_PROGRAM_ID:    {RAYDIUM, decodeRaydium},

		ORCA_PROGRAM_ID: {ORCA, decodeOrca},

		METEORA_DLMM_PROGRAM_ID:    {METEORA, decodeMeteora},
		METEORA_DAMM_PROGRAM_ID:    {METEORA, decodeMeteora},
		METEORA_DAMM_V2_PROGRAM_ID: {METEORA, decodeMeteora},

		MOONSHOT_PROGRAM_ID: {MOONSHOT, decodeMoonshot},
	}

	innerDecoders = map[solana.PublicKey]decoderEntry{
		JUPITER_PROGRAM_ID:   {JUPITER, decodeJupiterEvent},
		PUMP_FUN_PROGRAM_ID:  {PUMP_FUN, decodePumpfunEvent},
		PUMP_SWAP_PROGRAM_ID: {PUMP_SWAP, decodePumpswapEvent},
	}

	nonDexPrograms = map[solana.PublicKey]struct{}{
		solana.SystemProgramID:                    {},
		solana.TokenProgramID:                     {},
		solana.Token2022ProgramID:                 {},
		solana.SPLAssociatedTokenAccountProgramID: {},
		solana.ComputeBudget:                      {},
		solana.MemoProgramID:                      {},
		solana.VoteProgramID:                      {},
	}
}

func hasDiscriminator(data, disc []byte) bool {
	if len(data) < len(disc) {
		return false
	}
	for i := range disc {
		if data[i] != disc[i] {
			return false
		}
	}
	return true
}
