package txparser

import "github.com/gagliardetto/solana-go"

var (
	JUPITER_PROGRAM_ID                = solana.MustPublicKeyFromBase58("JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4")
	JUPITER_DCA_PROGRAM_ID            = solana.MustPublicKeyFromBase58("DCA265Vj8a9CEuX1eb1LWRnDT7uK6q1xMipnNyatn23M")
	JUPITER_DCA_KEEPER1_PROGRAM_ID    = solana.MustPublicKeyFromBase58("DCAKxn5PFNN1mBREPWGdk1RXg5aVH9rPErLfBFEi2Emb")
	JUPITER_DCA_KEEPER2_PROGRAM_ID    = solana.MustPublicKeyFromBase58("DCAKuApAuZtVNYLk3KTAVW9GLWVvPbnb5CxxRRmVgcTr")
	JUPITER_DCA_KEEPER3_PROGRAM_ID    = solana.MustPublicKeyFromBase58("DCAK36VfExkPdAkYUQg6ewgxyinvcEyPLyHjRbmveKFw")
	JUPITER_LIMIT_ORDER_V2_PROGRAM_ID = solana.MustPublicKeyFromBase58("j1o2qRpjcyUwEvwtcfhEQefh773ZgjxcVRry7LDqg5X")
	JUPITER_VA_PROGRAM_ID             = solana.MustPublicKeyFromBase58("VALaaymxQh2mNy2trH9jUqHT1mTow76wpTcGmSWSwJe")

	PUMP_FUN_PROGRAM_ID  = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	PUMP_SWAP_PROGRAM_ID = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")

	RAYDIUM_V4_PROGRAM_ID    = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	RAYDIUM_ROUTE_PROGRAM_ID = solana.MustPublicKeyFromBase58("routeUGWgWzqBWFcrCfv8tritsqukccJPu3q5GPP3xS")
	RAYDIUM_AMM_PROGRAM_ID   = solana.MustPublicKeyFromBase58("5quBtoiQqxF9Jv6KYKctB59NT3gtJD2Y65kdnB1Uev3h")
	RAYDIUM_CPMM_PROGRAM_ID  = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")
	RAYDIUM_CL_PROGRAM_ID    = solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")

	ORCA_PROGRAM_ID = solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")

	METEORA_DLMM_PROGRAM_ID    = solana.MustPublicKeyFromBase58("LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo")
	METEORA_DAMM_PROGRAM_ID    = solana.MustPublicKeyFromBase58("Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB")
	METEORA_DAMM_V2_PROGRAM_ID = solana.MustPublicKeyFromBase58("cpamdpZCGKUy5JxQXB4dcpGPiikHawvSWAd6mEn1sGG")

	MOONSHOT_PROGRAM_ID = solana.MustPublicKeyFromBase58("MoonCVVNZFSYkqNXP6bxHLPL6QQJiMagDL3qcqUQTrG")

	NATIVE_SOL_MINT_PROGRAM_ID = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	USDC_MINT_PROGRAM_ID       = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	USDT_MINT_PROGRAM_ID       = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
)

// SwapType identifies the DEX family a trade was decoded from.
type SwapType string

const (
	JUPITER   SwapType = "Jupiter"
	PUMP_FUN  SwapType = "PumpFun"
	PUMP_SWAP SwapType = "PumpSwap"
	RAYDIUM   SwapType = "Raydium"
	ORCA      SwapType = "Orca"
	METEORA   SwapType = "Meteora"
	MOONSHOT  SwapType = "Moonshot"
	UNKNOWN   SwapType = "Unknown"
)

// SPL token program instruction tags (first data byte).
const (
	TOKEN_TRANSFER         byte = 3
	TOKEN_MINT_TO          byte = 7
	TOKEN_BURN             byte = 8
	TOKEN_TRANSFER_CHECKED byte = 12
	TOKEN_MINT_TO_CHECKED  byte = 14
	TOKEN_BURN_CHECKED     byte = 15
)

const NATIVE_SOL_DECIMALS uint8 = 9
