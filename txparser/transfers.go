package txparser

import (
	"github.com/gagliardetto/solana-go"
)

// transferRecord is one decoded SPL token movement (transfer, transferChecked,
// mintTo or burn), with mint, owners and decimals resolved through the
// balance snapshots. Mints and burns are one-sided: a mint has no source, a
// burn has no destination.
type transferRecord struct {
	Mint     solana.PublicKey
	Amount   uint64
	Decimals uint8

	Source      solana.PublicKey
	Destination solana.PublicKey
	Authority   solana.PublicKey
	SourceOwner solana.PublicKey
	DestOwner   solana.PublicKey

	// InnerIndex is the position within the outer instruction's inner set,
	// -1 when the transfer was the outer instruction itself.
	InnerIndex int
}

// parseTokenTransfer decodes one SPL token instruction into a transfer
// record, or returns nil when the instruction is not a transfer.
func (ctx *parseContext) parseTokenTransfer(ix Instruction, innerIndex int) *transferRecord {
	progID, ok := ctx.programID(ix)
	if !ok || !isTokenProgram(progID) {
		return nil
	}
	if len(ix.Data) == 0 {
		return nil
	}

	switch ix.Data[0] {
	case TOKEN_TRANSFER:
		// accounts: source, destination, authority
		if len(ix.Accounts) < 3 || len(ix.Data) < 9 {
			return nil
		}
		r := NewRecordReader(ix.Data, 1)
		amount, err := r.ReadUint64()
		if err != nil {
			return nil
		}
		source, ok1 := ctx.instructionAccount(ix, 0)
		dest, ok2 := ctx.instructionAccount(ix, 1)
		authority, ok3 := ctx.instructionAccount(ix, 2)
		if !ok1 || !ok2 || !ok3 {
			return nil
		}
		// Plain transfers carry no mint; resolve it through whichever side
		// the snapshots know about.
		destInfo, destKnown := ctx.tokenAccounts[dest]
		srcInfo, srcKnown := ctx.tokenAccounts[source]
		info := destInfo
		if !destKnown || (destInfo.Mint == NATIVE_SOL_MINT_PROGRAM_ID && srcKnown && srcInfo.Mint != NATIVE_SOL_MINT_PROGRAM_ID) {
			info = srcInfo
		}
		if !destKnown && !srcKnown {
			return nil
		}
		return &transferRecord{
			Mint:        info.Mint,
			Amount:      amount,
			Decimals:    info.Decimals,
			Source:      source,
			Destination: dest,
			Authority:   authority,
			SourceOwner: ctx.tokenAccountOwner(source, authority),
			DestOwner:   ctx.tokenAccountOwner(dest, solana.PublicKey{}),
			InnerIndex:  innerIndex,
		}

	case TOKEN_MINT_TO, TOKEN_MINT_TO_CHECKED:
		// accounts: mint, destination, authority
		if len(ix.Accounts) < 3 || len(ix.Data) < 9 {
			return nil
		}
		r := NewRecordReader(ix.Data, 1)
		amount, err := r.ReadUint64()
		if err != nil {
			return nil
		}
		mint, ok1 := ctx.instructionAccount(ix, 0)
		dest, ok2 := ctx.instructionAccount(ix, 1)
		if !ok1 || !ok2 {
			return nil
		}
		return &transferRecord{
			Mint:        mint,
			Amount:      amount,
			Decimals:    ctx.mintDecimals(mint),
			Destination: dest,
			DestOwner:   ctx.tokenAccountOwner(dest, solana.PublicKey{}),
			InnerIndex:  innerIndex,
		}

	case TOKEN_BURN, TOKEN_BURN_CHECKED:
		// accounts: account, mint, owner
		if len(ix.Accounts) < 3 || len(ix.Data) < 9 {
			return nil
		}
		r := NewRecordReader(ix.Data, 1)
		amount, err := r.ReadUint64()
		if err != nil {
			return nil
		}
		source, ok1 := ctx.instructionAccount(ix, 0)
		mint, ok2 := ctx.instructionAccount(ix, 1)
		owner, ok3 := ctx.instructionAccount(ix, 2)
		if !ok1 || !ok2 || !ok3 {
			return nil
		}
		return &transferRecord{
			Mint:        mint,
			Amount:      amount,
			Decimals:    ctx.mintDecimals(mint),
			Source:      source,
			Authority:   owner,
			SourceOwner: ctx.tokenAccountOwner(source, owner),
			InnerIndex:  innerIndex,
		}

	case TOKEN_TRANSFER_CHECKED:
		// accounts: source, mint, destination, authority
		if len(ix.Accounts) < 4 || len(ix.Data) < 10 {
			return nil
		}
		r := NewRecordReader(ix.Data, 1)
		amount, err := r.ReadUint64()
		if err != nil {
			return nil
		}
		decimals, err := r.ReadUint8()
		if err != nil {
			return nil
		}
		source, ok1 := ctx.instructionAccount(ix, 0)
		mint, ok2 := ctx.instructionAccount(ix, 1)
		dest, ok3 := ctx.instructionAccount(ix, 2)
		authority, ok4 := ctx.instructionAccount(ix, 3)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil
		}
		return &transferRecord{
			Mint:        mint,
			Amount:      amount,
			Decimals:    decimals,
			Source:      source,
			Destination: dest,
			Authority:   authority,
			SourceOwner: ctx.tokenAccountOwner(source, authority),
			DestOwner:   ctx.tokenAccountOwner(dest, solana.PublicKey{}),
			InnerIndex:  innerIndex,
		}
	}
	return nil
}

// tokenAccountOwner resolves the owner of a token account from the balance
// snapshots, falling back to the supplied default when unknown.
func (ctx *parseContext) tokenAccountOwner(account, fallback solana.PublicKey) solana.PublicKey {
	if info, ok := ctx.tokenAccounts[account]; ok && !info.Owner.IsZero() {
		return info.Owner
	}
	return fallback
}

// transfersForGroup collects every transfer decoded from one instruction
// group: the outer instruction itself plus its inner set, in emission order.
func (ctx *parseContext) transfersForGroup(outerIndex int) []transferRecord {
	var transfers []transferRecord
	if outerIndex >= 0 && outerIndex < len(ctx.tx.Instructions) {
		if t := ctx.parseTokenTransfer(ctx.tx.Instructions[outerIndex], -1); t != nil {
			transfers = append(transfers, *t)
		}
	}
	for i, inner := range ctx.innerFor(outerIndex) {
		if t := ctx.parseTokenTransfer(inner, i); t != nil {
			transfers = append(transfers, *t)
		}
	}
	return transfers
}

// groupAccountSet returns every account index touched by the outer
// instruction and its inner set, bounds-checked.
func (ctx *parseContext) groupAccountSet(outerIndex int) map[uint32]struct{} {
	set := make(map[uint32]struct{})
	add := func(ix Instruction) {
		for _, idx := range ix.Accounts {
			if int(idx) < len(ctx.allAccountKeys) {
				set[uint32(idx)] = struct{}{}
			}
		}
	}
	if outerIndex >= 0 && outerIndex < len(ctx.tx.Instructions) {
		add(ctx.tx.Instructions[outerIndex])
	}
	for _, inner := range ctx.innerFor(outerIndex) {
		add(inner)
	}
	return set
}
