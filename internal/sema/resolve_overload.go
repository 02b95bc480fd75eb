package sema

import "cvlint/internal/symbols"

// OverloadFailure classifies why a call failed to bind. The distinction
// matters downstream: a const receiver facing only non-const candidates is
// a const violation, not a missing overload.
type OverloadFailure uint8

const (
	// OverloadOK means a single candidate bound.
	OverloadOK OverloadFailure = iota
	// OverloadConstViolation means viable candidates exist but every one
	// requires a non-const receiver and the receiver is const.
	OverloadConstViolation
	// OverloadNoViable means no candidate matches the call shape at all.
	OverloadNoViable
)

// ResolveOverload picks the member function a call binds to. It is a pure
// function of the candidate set, the receiver's value-constness and the
// argument count; it never reports and never mutates the table.
//
// A const and a non-const overload with the same parameters form the
// canonical pair: the receiver's constness selects exactly one of them. A
// lone const overload serves both receivers; a lone non-const overload
// serves only non-const receivers.
func ResolveOverload(table *symbols.Table, cands []symbols.SymbolID, receiverConst bool, arity int) (symbols.SymbolID, OverloadFailure) {
	var constCand, mutCand symbols.SymbolID
	for _, id := range cands {
		sym := table.Symbol(id)
		if sym == nil || sym.Kind != symbols.SymMemberFunc || sym.Func == nil {
			continue
		}
		if len(sym.Func.Params) != arity {
			continue
		}
		if sym.Func.IsConstQualified {
			if !constCand.IsValid() {
				constCand = id
			}
		} else if !mutCand.IsValid() {
			mutCand = id
		}
	}

	switch {
	case !constCand.IsValid() && !mutCand.IsValid():
		return symbols.NoSymbolID, OverloadNoViable
	case receiverConst && !constCand.IsValid():
		return symbols.NoSymbolID, OverloadConstViolation
	case receiverConst:
		return constCand, OverloadOK
	case mutCand.IsValid():
		return mutCand, OverloadOK
	default:
		// A const member is callable on a non-const receiver.
		return constCand, OverloadOK
	}
}
