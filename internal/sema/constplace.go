package sema

import (
	"fmt"

	"cvlint/internal/diag"
	"cvlint/internal/symbols"
)

// validateConstants applies the placement rules to every class constant
// after expression evaluation, so address-taken marks are final.
//
// The decision table, by (integral, in-class initializer):
//
//	integral, in-class init     legal; a definition, if present, must not
//	                            repeat the initializer, and one is
//	                            required once the address is taken
//	integral, no in-class init  out-of-class definition with initializer
//	                            required
//	non-integral, in-class init illegal; initialize at the definition, or
//	                            switch to an enumerator
//	non-integral, no init       out-of-class definition with initializer
//	                            required
func (c *checker) validateConstants() {
	for id := symbols.SymbolID(1); int(id) <= c.table.SymbolCount(); id++ {
		sym := c.table.Symbol(id)
		if sym == nil || sym.Kind != symbols.SymClassConstant {
			continue
		}
		c.validateConstant(sym)
	}
}

func (c *checker) validateConstant(sym *symbols.Symbol) {
	info := sym.Const
	name := c.qualifiedConstName(sym)

	if !info.Integral {
		if info.HasInClassInit {
			c.report(diag.SemaIllegalConstantPlacement, diag.SevError, sym.Span,
				fmt.Sprintf("in-class initializer is not allowed for non-integral constant %s", name)).
				WithEntity(name).
				WithNote(sym.Span, "move the initializer to the out-of-class definition").
				Emit()
			c.report(diag.SemaEnumSubstituteRecommended, diag.SevWarning, sym.Span,
				fmt.Sprintf("consider an enumerator instead of %s where a compile-time value is needed", name)).
				WithEntity(name).
				Emit()
		}
		if info.DefCount == 0 {
			c.reportMissingDefinition(sym, name, true)
		} else if !info.DefHasInit && !info.HasInClassInit {
			c.report(diag.SemaIllegalConstantPlacement, diag.SevError, info.DefSpan,
				fmt.Sprintf("definition of %s must supply the initializer", name)).
				WithEntity(name).
				Emit()
		}
		return
	}

	if info.HasInClassInit {
		if info.DefCount > 0 && info.DefHasInit {
			c.report(diag.SemaIllegalConstantPlacement, diag.SevError, info.DefSpan,
				fmt.Sprintf("definition of %s must not repeat the initializer given in the class", name)).
				WithEntity(name).
				Emit()
		}
		if info.AddressTaken && info.DefCount == 0 {
			c.reportMissingDefinition(sym, name, false)
		}
		return
	}

	// Integral without an in-class initializer: the value has to come
	// from exactly one out-of-class definition.
	if info.DefCount == 0 {
		c.reportMissingDefinition(sym, name, true)
		return
	}
	if !info.DefHasInit {
		c.report(diag.SemaIllegalConstantPlacement, diag.SevError, info.DefSpan,
			fmt.Sprintf("definition of %s must supply the initializer", name)).
			WithEntity(name).
			Emit()
	}
}

func (c *checker) reportMissingDefinition(sym *symbols.Symbol, name string, needsInit bool) {
	msg := fmt.Sprintf("class constant %s requires an out-of-class definition", name)
	if sym.Const.AddressTaken {
		msg = fmt.Sprintf("class constant %s has its address taken and requires an out-of-class definition", name)
	}
	b := c.report(diag.SemaIllegalConstantPlacement, diag.SevError, sym.Span, msg).
		WithEntity(name)
	if needsInit {
		b.WithNote(sym.Span, "the definition must carry the initializer")
	} else {
		b.WithNote(sym.Span, "the definition must carry no initializer; the value is given in the class")
	}
	b.Emit()
}

// qualifiedConstName renders Class::Name when the owning class is known.
func (c *checker) qualifiedConstName(sym *symbols.Symbol) string {
	name := c.name(sym.Name)
	scope := c.table.Scope(sym.Scope)
	if scope != nil && scope.Kind == symbols.ScopeClass {
		return c.name(scope.Class) + "::" + name
	}
	return name
}
