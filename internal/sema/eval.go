package sema

import (
	"fmt"

	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/qual"
	"cvlint/internal/source"
	"cvlint/internal/symbols"
)

// value is the evaluator's per-node verdict: the node's qualification,
// whether it is a modifiable lvalue, the bound symbol when there is one,
// and enough static type to keep member lookup going.
type value struct {
	q          qual.Qualifier
	modifiable bool
	sym        symbols.SymbolID
	kind       symbols.SymbolKind
	typeName   source.StringID
	// ok is false when an inner diagnostic already fired; parents stay
	// quiet to avoid cascades.
	ok bool
}

func badValue() value { return value{} }

// evalExpr computes the qualification and modifiability of one node and
// records both in the result annotations.
func (c *checker) evalExpr(id ast.ExprID) value {
	expr := c.builder.Exprs.Get(id)
	if expr == nil {
		return badValue()
	}
	var v value
	switch expr.Kind {
	case ast.ExprIdent:
		v = c.evalIdent(id)
	case ast.ExprIntLit:
		v = value{q: qual.Qualifier{}, ok: true}
	case ast.ExprUnary:
		v = c.evalUnary(id)
	case ast.ExprBinary:
		v = c.evalBinary(id)
	case ast.ExprTernary:
		v = c.evalTernary(id)
	case ast.ExprMember:
		v = c.evalMember(id)
	case ast.ExprScopeRef:
		v = c.evalScopeRef(id)
	case ast.ExprCall:
		v = c.evalCall(id)
	case ast.ExprAssign:
		v = c.evalAssign(id)
	case ast.ExprGroup:
		grp, _ := c.builder.Exprs.Group(id)
		v = c.evalExpr(grp.Inner)
	}
	c.result.ExprQuals[id] = v.q
	c.result.ExprModifiable[id] = v.modifiable
	if v.sym.IsValid() {
		c.result.ExprBindings[id] = v.sym
	}
	return v
}

// evalIdent binds a unit-scope name. Modifiability is kind-dependent:
// assigning to a pointer or iterator name rebinds it (the binding axis
// decides), while objects and references write through to the value (the
// value axis decides).
func (c *checker) evalIdent(id ast.ExprID) value {
	ident, _ := c.builder.Exprs.Ident(id)
	expr := c.builder.Exprs.Get(id)
	cands := c.table.Lookup(ident.Name, c.table.Unit())
	if len(cands) == 0 {
		name := c.name(ident.Name)
		c.report(diag.SemaUnresolvedName, diag.SevError, expr.Span,
			fmt.Sprintf("use of undeclared name %s", name)).
			WithEntity(name).
			Emit()
		return badValue()
	}
	sym := c.table.Symbol(cands[0])
	v := value{
		q:        sym.Qual,
		sym:      cands[0],
		kind:     sym.Kind,
		typeName: sym.TypeName,
		ok:       true,
	}
	switch sym.Kind {
	case symbols.SymPointer, symbols.SymIterator:
		v.modifiable = sym.Qual.CanRebind()
	case symbols.SymObject, symbols.SymReference, symbols.SymField:
		v.modifiable = sym.Qual.CanAssignThrough()
	case symbols.SymClassConstant, symbols.SymEnumerator:
		v.q = qual.Value(true)
	case symbols.SymMacro, symbols.SymMemberFunc, symbols.SymClass:
		// Not values; a call or member context consumes them.
	}
	return v
}

func (c *checker) evalUnary(id ast.ExprID) value {
	un, _ := c.builder.Exprs.Unary(id)
	expr := c.builder.Exprs.Get(id)
	operand := c.evalExpr(un.Operand)
	switch un.Op {
	case ast.ExprUnaryDeref:
		return c.evalDeref(expr, operand)
	case ast.ExprUnaryAddrOf:
		if !operand.ok {
			return badValue()
		}
		// Taking a class constant's address forces an out-of-class
		// definition; the placement validator reads this mark.
		if sym := c.table.Symbol(operand.sym); sym != nil && sym.Kind == symbols.SymClassConstant {
			sym.Const.AddressTaken = true
		}
		return value{
			q:        qual.Pointer(false, operand.q.ValueConst),
			kind:     symbols.SymPointer,
			typeName: operand.typeName,
			ok:       true,
		}
	case ast.ExprUnaryNeg:
		if !operand.ok {
			return badValue()
		}
		return value{ok: true}
	case ast.ExprUnaryPostInc, ast.ExprUnaryPostDec:
		if !operand.ok {
			return badValue()
		}
		if !operand.modifiable {
			c.reportNonModifiable(expr.Span, un.Operand, operand)
			return badValue()
		}
		return value{typeName: operand.typeName, kind: operand.kind, ok: true}
	}
	return badValue()
}

// evalDeref produces the pointee lvalue of a pointer or iterator. The
// pointee's constness is the value axis of the operand's pair; the binding
// axis stays behind on the operand.
func (c *checker) evalDeref(expr *ast.Expr, operand value) value {
	if !operand.ok {
		return badValue()
	}
	if operand.kind != symbols.SymPointer && operand.kind != symbols.SymIterator {
		c.report(diag.SemaNotAPointer, diag.SevError, expr.Span,
			"dereference of a non-pointer value").
			Emit()
		return badValue()
	}
	pointeeConst := operand.q.ValueConst
	return value{
		q:          qual.Value(pointeeConst),
		modifiable: operand.q.CanAssignThrough(),
		kind:       symbols.SymObject,
		typeName:   operand.typeName,
		ok:         true,
	}
}

// evalBinary handles arithmetic and comparison. When the left operand is a
// class instance and the class declares the matching operator member, the
// node resolves like a call on that operand.
func (c *checker) evalBinary(id ast.ExprID) value {
	bin, _ := c.builder.Exprs.Binary(id)
	expr := c.builder.Exprs.Get(id)
	left := c.evalExpr(bin.Left)
	right := c.evalExpr(bin.Right)
	if !left.ok || !right.ok {
		return badValue()
	}
	if scope, ok := c.classScopeOf(left); ok {
		opName := c.table.Strings.Intern(bin.Op.OperatorName())
		if cands := c.memberLookup(scope, opName); len(cands) > 0 {
			return c.bindCall(expr.Span, cands, left, 1, bin.Op.OperatorName())
		}
	}
	// Builtin operators produce a prvalue.
	return value{ok: true}
}

func (c *checker) evalTernary(id ast.ExprID) value {
	tern, _ := c.builder.Exprs.Ternary(id)
	cond := c.evalExpr(tern.Cond)
	then := c.evalExpr(tern.Then)
	els := c.evalExpr(tern.Else)
	if !cond.ok || !then.ok || !els.ok {
		return badValue()
	}
	return value{q: qual.Compose(then.q, els.q), ok: true}
}

// evalMember resolves obj.field. The member's own qualifier composes with
// the object's: a const object makes every member const, while a const
// member stays const on any object. The propagation is inward only; the
// object never loses constness through a member.
func (c *checker) evalMember(id ast.ExprID) value {
	mem, _ := c.builder.Exprs.Member(id)
	expr := c.builder.Exprs.Get(id)
	target := c.evalExpr(mem.Target)
	if !target.ok {
		return badValue()
	}
	scope, ok := c.classScopeOf(target)
	if !ok {
		c.report(diag.SemaNotAClass, diag.SevError, expr.Span,
			fmt.Sprintf("member access on non-class value of type %s", c.name(target.typeName))).
			Emit()
		return badValue()
	}
	cands := c.memberLookup(scope, mem.Field)
	if len(cands) == 0 {
		name := c.name(mem.Field)
		c.report(diag.SemaNoSuchMember, diag.SevError, expr.Span,
			fmt.Sprintf("class %s has no member %s", c.name(target.typeName), name)).
			WithEntity(name).
			Emit()
		return badValue()
	}
	sym := c.table.Symbol(cands[0])
	if sym.Kind == symbols.SymMemberFunc {
		// A bare member-function designator; the enclosing call binds it.
		return value{sym: cands[0], kind: sym.Kind, typeName: target.typeName, ok: true}
	}
	q := qual.Compose(qual.Value(target.q.ValueConst), sym.Qual)
	v := value{
		q:        q,
		sym:      cands[0],
		kind:     sym.Kind,
		typeName: sym.TypeName,
		ok:       true,
	}
	switch sym.Kind {
	case symbols.SymPointer, symbols.SymIterator:
		// A const object freezes the member pointer's binding, not the
		// pointee it reaches through.
		v.modifiable = sym.Qual.CanRebind() && !target.q.ValueConst
		v.q = qual.Pointer(sym.Qual.BindConst || target.q.ValueConst, sym.Qual.ValueConst)
	case symbols.SymClassConstant, symbols.SymEnumerator:
		v.q = qual.Value(true)
	default:
		v.modifiable = q.CanAssignThrough()
	}
	return v
}

// evalScopeRef resolves C::name to a class constant or enumerator.
func (c *checker) evalScopeRef(id ast.ExprID) value {
	ref, _ := c.builder.Exprs.ScopeRef(id)
	expr := c.builder.Exprs.Get(id)
	scope, ok := c.table.ClassScope(ref.Class)
	if !ok {
		name := c.name(ref.Class)
		c.report(diag.SemaUnresolvedName, diag.SevError, expr.Span,
			fmt.Sprintf("use of undeclared class %s", name)).
			WithEntity(name).
			Emit()
		return badValue()
	}
	cands := c.memberLookup(scope, ref.Name)
	if len(cands) == 0 {
		name := c.name(ref.Name)
		c.report(diag.SemaUnresolvedName, diag.SevError, expr.Span,
			fmt.Sprintf("class %s has no member %s", c.name(ref.Class), name)).
			WithEntity(name).
			Emit()
		return badValue()
	}
	sym := c.table.Symbol(cands[0])
	return value{
		q:        qual.Value(true),
		sym:      cands[0],
		kind:     sym.Kind,
		typeName: sym.TypeName,
		ok:       true,
	}
}

// evalCall binds a call. Member calls run overload resolution against the
// receiver's constness; free calls only recognize macros, whose expansion
// the detector models separately.
func (c *checker) evalCall(id ast.ExprID) value {
	call, _ := c.builder.Exprs.Call(id)
	expr := c.builder.Exprs.Get(id)
	for _, arg := range call.Args {
		c.evalExpr(arg)
	}

	target := c.builder.Exprs.Get(call.Target)
	if target != nil && target.Kind == ast.ExprMember {
		mem, _ := c.builder.Exprs.Member(call.Target)
		recv := c.evalExpr(mem.Target)
		if !recv.ok {
			return badValue()
		}
		scope, ok := c.classScopeOf(recv)
		if !ok {
			c.report(diag.SemaNotAClass, diag.SevError, expr.Span,
				fmt.Sprintf("member call on non-class value of type %s", c.name(recv.typeName))).
				Emit()
			return badValue()
		}
		name := c.name(mem.Field)
		cands := c.memberLookup(scope, mem.Field)
		return c.bindCall(expr.Span, cands, recv, len(call.Args), name)
	}

	if target != nil && target.Kind == ast.ExprIdent {
		ident, _ := c.builder.Exprs.Ident(call.Target)
		cands := c.table.Lookup(ident.Name, c.table.Unit())
		name := c.name(ident.Name)
		if len(cands) == 0 {
			c.report(diag.SemaNoViableOverload, diag.SevError, expr.Span,
				fmt.Sprintf("call to undeclared function %s", name)).
				WithEntity(name).
				Emit()
			return badValue()
		}
		sym := c.table.Symbol(cands[0])
		if sym.Kind == symbols.SymMacro {
			if len(call.Args) != len(sym.Macro.Params) {
				c.report(diag.SemaNoViableOverload, diag.SevError, expr.Span,
					fmt.Sprintf("macro %s expects %d arguments, got %d",
						name, len(sym.Macro.Params), len(call.Args))).
					WithEntity(name).
					Emit()
				return badValue()
			}
			c.result.ExprBindings[id] = cands[0]
			return value{sym: cands[0], ok: true}
		}
		c.report(diag.SemaNoViableOverload, diag.SevError, expr.Span,
			fmt.Sprintf("%s is not callable", name)).
			WithEntity(name).
			Emit()
		return badValue()
	}

	c.report(diag.SemaNoViableOverload, diag.SevError, expr.Span,
		"call target is not callable").
		Emit()
	return badValue()
}

// bindCall filters candidates by arity, resolves the overload against the
// receiver's constness, and shapes the call-result value from the bound
// signature's return qualification.
func (c *checker) bindCall(span source.Span, cands []symbols.SymbolID, recv value, arity int, name string) value {
	bound, failure := ResolveOverload(c.table, cands, recv.q.ValueConst, arity)
	switch failure {
	case OverloadConstViolation:
		c.report(diag.SemaConstViolation, diag.SevError, span,
			fmt.Sprintf("cannot call non-const member function %s on const object", name)).
			WithEntity(name).
			Emit()
		return badValue()
	case OverloadNoViable:
		c.report(diag.SemaNoViableOverload, diag.SevError, span,
			fmt.Sprintf("no viable overload of %s for this call", name)).
			WithEntity(name).
			Emit()
		return badValue()
	}

	sym := c.table.Symbol(bound)
	retQ := sym.Func.ReturnQual
	// The canonical pairing idiom: the non-const overload forwards to its
	// const twin and casts the constness back off the result. Model the
	// cast with the one sanctioned qualifier-losing operation so the
	// non-const result is exactly the const result, stripped.
	if !sym.Func.IsConstQualified {
		if twin := c.constTwin(cands, sym); twin != nil {
			retQ = qual.StripConst(twin.Func.ReturnQual)
		}
	}
	return value{
		q:          retQ,
		modifiable: retQ.CanAssignThrough(),
		sym:        bound,
		kind:       symbols.SymObject,
		typeName:   sym.Func.ReturnTypeName,
		ok:         true,
	}
}

// constTwin finds the const-qualified overload sharing bound's parameters.
func (c *checker) constTwin(cands []symbols.SymbolID, bound *symbols.Symbol) *symbols.Symbol {
	for _, id := range cands {
		sym := c.table.Symbol(id)
		if sym == nil || sym.Kind != symbols.SymMemberFunc || !sym.Func.IsConstQualified {
			continue
		}
		if sym.Func.SameParams(bound.Func) {
			return sym
		}
	}
	return nil
}

// evalAssign checks the target's modifiability. Operands evaluate left to
// right so the annotations carry both sides even when the write is illegal.
func (c *checker) evalAssign(id ast.ExprID) value {
	asg, _ := c.builder.Exprs.Assign(id)
	expr := c.builder.Exprs.Get(id)
	left := c.evalExpr(asg.Left)
	c.evalExpr(asg.Right)
	if !left.ok {
		return badValue()
	}
	if !left.modifiable {
		c.reportNonModifiable(expr.Span, asg.Left, left)
		return badValue()
	}
	return left
}

// reportNonModifiable names the frozen target as precisely as the bound
// symbol or source text allows.
func (c *checker) reportNonModifiable(span source.Span, targetID ast.ExprID, target value) {
	entity := ""
	if sym := c.table.Symbol(target.sym); sym != nil {
		entity = c.name(sym.Name)
	}
	if entity == "" {
		if targetExpr := c.builder.Exprs.Get(targetID); targetExpr != nil {
			entity = c.spanText(targetExpr.Span)
		}
	}
	msg := "assignment to non-modifiable target"
	if entity != "" {
		msg = fmt.Sprintf("assignment to non-modifiable target %s", entity)
	}
	c.report(diag.SemaNonModifiableTarget, diag.SevError, span, msg).
		WithEntity(entity).
		Emit()
}

// classScopeOf returns the member scope behind a class-typed value.
func (c *checker) classScopeOf(v value) (symbols.ScopeID, bool) {
	if v.typeName == source.NoStringID {
		return symbols.NoScopeID, false
	}
	return c.table.ClassScope(v.typeName)
}

// memberLookup searches one class scope only; member names never resolve
// through the enclosing unit.
func (c *checker) memberLookup(scope symbols.ScopeID, name source.StringID) []symbols.SymbolID {
	s := c.table.Scope(scope)
	if s == nil {
		return nil
	}
	return s.NameIndex[name]
}
