package txparser

import (
	"sort"

	"github.com/gagliardetto/solana-go"
)

// inferSwapFragments reconstructs swap legs for a transfer-based instruction
// group. Legs are paired from the actor's SPL transfers in emission order;
// when no transfer pair can be formed the actor's net balance deltas decide.
// An ambiguous group returns errAmbiguousInference and no fragments.
func (ctx *parseContext) inferSwapFragments(dex SwapType, outerIndex int, venue solana.PublicKey) ([]fragment, error) {
	fragments := ctx.pairTransferLegs(dex, outerIndex, venue, ctx.transfersForGroup(outerIndex))
	if len(fragments) > 0 {
		return fragments, nil
	}
	frag, err := ctx.netDeltaFragment(dex, outerIndex, venue)
	if err != nil {
		return nil, err
	}
	return []fragment{*frag}, nil
}

// pairTransferLegs walks the group's transfers once and pairs each
// actor-outgoing transfer with an actor-incoming transfer of a different
// mint, in the order they executed.
func (ctx *parseContext) pairTransferLegs(dex SwapType, outerIndex int, venue solana.PublicKey, transfers []transferRecord) []fragment {
	var fragments []fragment
	var pendingOut, pendingIn *transferRecord

	emit := func() {
		fragments = append(fragments, fragment{
			kind:        fragmentSwap,
			dex:         dex,
			outerIndex:  outerIndex,
			innerIndex:  minInner(pendingOut.InnerIndex, pendingIn.InnerIndex),
			inMint:      pendingOut.Mint,
			inAmount:    pendingOut.Amount,
			inDecimals:  pendingOut.Decimals,
			outMint:     pendingIn.Mint,
			outAmount:   pendingIn.Amount,
			outDecimals: pendingIn.Decimals,
			venue:       venue,
			actor:       ctx.signer,
		})
		pendingOut, pendingIn = nil, nil
	}

	for i := range transfers {
		t := &transfers[i]
		outgoing := t.SourceOwner == ctx.signer || t.Authority == ctx.signer
		incoming := t.DestOwner == ctx.signer
		switch {
		case outgoing && !incoming:
			if pendingOut == nil {
				pendingOut = t
			}
		case incoming && !outgoing:
			if pendingIn == nil {
				pendingIn = t
			}
		}
		if pendingOut != nil && pendingIn != nil {
			if pendingOut.Mint == pendingIn.Mint {
				// Same-mint round trips are fee plumbing, not a swap leg.
				pendingOut, pendingIn = nil, nil
				continue
			}
			emit()
		}
	}
	return fragments
}

func minInner(a, b int) int {
	if a == -1 {
		return b
	}
	if b == -1 || a < b {
		return a
	}
	return b
}

// netDeltaFragment derives one swap leg from the actor's net token balance
// deltas across the accounts the group touched. The group must drain exactly
// one mint and gain exactly one other; anything else is ambiguous.
func (ctx *parseContext) netDeltaFragment(dex SwapType, outerIndex int, venue solana.PublicKey) (*fragment, error) {
	accounts := ctx.groupAccountSet(outerIndex)

	type delta struct {
		mint     solana.PublicKey
		amount   int64
		decimals uint8
	}
	byMint := make(map[solana.PublicKey]*delta)

	for idx, snap := range ctx.snapshots {
		if _, touched := accounts[idx]; !touched {
			continue
		}
		if snap.Owner != ctx.signer {
			continue
		}
		if snap.HasPre && snap.HasPost && snap.PreDecimals != snap.PostDecimals {
			return nil, decodeErrf(dex, nil, "token balance %d reports conflicting decimals %d/%d",
				idx, snap.PreDecimals, snap.PostDecimals)
		}
		d, ok := byMint[snap.Mint]
		if !ok {
			d = &delta{mint: snap.Mint, decimals: snap.PostDecimals}
			if !snap.HasPost {
				d.decimals = snap.PreDecimals
			}
			byMint[snap.Mint] = d
		}
		d.amount += int64(snap.Post) - int64(snap.Pre)
	}

	var gained, drained []*delta
	for _, d := range byMint {
		switch {
		case d.amount > 0:
			gained = append(gained, d)
		case d.amount < 0:
			drained = append(drained, d)
		}
	}
	if len(gained) != 1 || len(drained) != 1 {
		return nil, errAmbiguousInference
	}
	in, out := drained[0], gained[0]
	return &fragment{
		kind:        fragmentSwap,
		dex:         dex,
		outerIndex:  outerIndex,
		innerIndex:  -1,
		inMint:      in.mint,
		inAmount:    uint64(-in.amount),
		inDecimals:  in.decimals,
		outMint:     out.mint,
		outAmount:   uint64(out.amount),
		outDecimals: out.decimals,
		venue:       venue,
		actor:       ctx.signer,
	}, nil
}

// sortFragments orders fragments by execution position: outer instruction
// index first, then inner index with outer-level fragments (-1) first.
func sortFragments(fragments []fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		if fragments[i].outerIndex != fragments[j].outerIndex {
			return fragments[i].outerIndex < fragments[j].outerIndex
		}
		return fragments[i].innerIndex < fragments[j].innerIndex
	})
}
