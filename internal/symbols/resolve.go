package symbols

import (
	"fmt"

	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/qual"
	"cvlint/internal/source"
)

// Options configure a resolve pass.
type Options struct {
	Reporter diag.Reporter
}

// Result carries the Declaration Table built from one unit.
type Result struct {
	Table *Table
	// ItemSymbols maps declaration items to their declared symbol.
	ItemSymbols map[ast.ItemID]SymbolID
}

// Resolve walks the unit's items and populates a fresh Declaration Table.
// Duplicate declarations are reported and skipped; resolution always
// completes so one pass yields the unit's full diagnostic set.
func Resolve(builder *ast.Builder, fileID ast.FileID, opts Options) *Result {
	r := &resolver{
		builder:  builder,
		reporter: opts.Reporter,
		result: &Result{
			Table:       NewTable(Hints{Scopes: 8, Symbols: 64}, builder.StringsInterner),
			ItemSymbols: make(map[ast.ItemID]SymbolID),
		},
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return r.result
	}
	for _, itemID := range file.Items {
		r.resolveItem(itemID)
	}
	return r.result
}

type resolver struct {
	builder  *ast.Builder
	reporter diag.Reporter
	result   *Result
}

func (r *resolver) resolveItem(itemID ast.ItemID) {
	item := r.builder.Items.Get(itemID)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemDecl:
		r.resolveDecl(itemID)
	case ast.ItemClass:
		r.resolveClass(itemID)
	case ast.ItemClassConstDef:
		r.resolveClassConstDef(itemID)
	case ast.ItemMacroDef:
		r.resolveMacroDef(itemID)
	case ast.ItemExprStmt:
		// Expression statements declare nothing.
	}
}

func (r *resolver) resolveDecl(itemID ast.ItemID) {
	decl, ok := r.builder.Items.Decl(itemID)
	if !ok {
		return
	}
	kind := SymObject
	switch decl.DeclKind {
	case ast.DeclPointer:
		kind = SymPointer
	case ast.DeclReference:
		kind = SymReference
	case ast.DeclIterator:
		kind = SymIterator
	}
	id := r.declare(Symbol{
		Name:     decl.Name,
		Kind:     kind,
		Qual:     decl.Qual,
		Scope:    r.result.Table.Unit(),
		Span:     decl.NameSpan,
		TypeName: decl.TypeName,
	})
	if id.IsValid() {
		r.result.ItemSymbols[itemID] = id
	}
}

func (r *resolver) resolveClass(itemID ast.ItemID) {
	class, ok := r.builder.Items.Class(itemID)
	if !ok {
		return
	}
	table := r.result.Table
	classScope := table.NewScope(ScopeClass, table.Unit(), class.Name)
	id := r.declare(Symbol{
		Name:       class.Name,
		Kind:       SymClass,
		Scope:      table.Unit(),
		Span:       class.NameSpan,
		ClassScope: classScope,
	})
	if id.IsValid() {
		r.result.ItemSymbols[itemID] = id
	}

	for _, memberID := range class.Members {
		r.resolveMember(classScope, memberID)
	}
}

func (r *resolver) resolveMember(classScope ScopeID, memberID ast.MemberID) {
	member := r.builder.Members.Get(memberID)
	if member == nil {
		return
	}
	switch member.Kind {
	case ast.MemberField:
		field, _ := r.builder.Members.Field(memberID)
		kind := SymField
		if field.DeclKind == ast.DeclPointer {
			kind = SymPointer
		}
		r.declare(Symbol{
			Name:     field.Name,
			Kind:     kind,
			Qual:     field.Qual,
			Scope:    classScope,
			Span:     field.NameSpan,
			TypeName: field.TypeName,
		})
	case ast.MemberFunc:
		fn, _ := r.builder.Members.Func(memberID)
		params := make([]ParamSig, 0, len(fn.Params))
		for _, p := range fn.Params {
			params = append(params, ParamSig{TypeName: p.TypeName, Qual: p.Qual})
		}
		r.declare(Symbol{
			Name:     fn.Name,
			Kind:     SymMemberFunc,
			Scope:    classScope,
			Span:     fn.NameSpan,
			TypeName: fn.ReturnTypeName,
			Func: &FuncSig{
				Params:           params,
				IsConstQualified: fn.IsConstQualified,
				ReturnTypeName:   fn.ReturnTypeName,
				ReturnQual:       qual.Value(fn.ReturnConst),
			},
		})
	case ast.MemberConst:
		c, _ := r.builder.Members.Const(memberID)
		r.declare(Symbol{
			Name:     c.Name,
			Kind:     SymClassConstant,
			Qual:     qual.Value(true),
			Scope:    classScope,
			Span:     c.NameSpan,
			TypeName: c.TypeName,
			Const: &ConstInfo{
				Integral:       c.Integral,
				HasInClassInit: c.HasInit,
			},
		})
	case ast.MemberEnum:
		enum, _ := r.builder.Members.Enum(memberID)
		for _, spec := range enum.Enumerators {
			r.declare(Symbol{
				Name:  spec.Name,
				Kind:  SymEnumerator,
				Qual:  qual.Value(true),
				Scope: classScope,
				Span:  spec.NameSpan,
			})
		}
	}
}

// resolveClassConstDef binds an out-of-class definition to its in-class
// declaration and records it on the constant's lifecycle info. A second
// definition of the same constant is a duplicate declaration.
func (r *resolver) resolveClassConstDef(itemID ast.ItemID) {
	def, ok := r.builder.Items.ClassConstDef(itemID)
	if !ok {
		return
	}
	table := r.result.Table
	classScope, ok := table.ClassScope(def.Class)
	if !ok {
		r.reportUnresolved(def.NameSpan, def.Class, "class %s is not declared")
		return
	}
	var constant *Symbol
	for _, id := range table.Scope(classScope).NameIndex[def.Name] {
		sym := table.Symbol(id)
		if sym != nil && sym.Kind == SymClassConstant {
			constant = sym
			break
		}
	}
	if constant == nil {
		r.reportUnresolved(def.NameSpan, def.Name, "class constant %s is not declared")
		return
	}
	if constant.Const.DefCount > 0 {
		if r.reporter != nil {
			name := r.lookupName(def.Name)
			diag.ReportError(r.reporter, diag.SemaDuplicateDeclaration, def.NameSpan,
				fmt.Sprintf("redefinition of class constant %s", name)).
				WithEntity(name).
				WithNote(constant.Const.DefSpan, "previous definition is here").
				Emit()
		}
		return
	}
	constant.Const.DefCount++
	constant.Const.DefHasInit = def.HasInit
	constant.Const.DefSpan = def.NameSpan
}

func (r *resolver) resolveMacroDef(itemID ast.ItemID) {
	macro, ok := r.builder.Items.MacroDef(itemID)
	if !ok {
		return
	}
	id := r.declare(Symbol{
		Name:  macro.Name,
		Kind:  SymMacro,
		Scope: r.result.Table.Unit(),
		Span:  macro.NameSpan,
		Macro: &MacroSig{Params: macro.Params},
	})
	if id.IsValid() {
		r.result.ItemSymbols[itemID] = id
	}
}

// declare registers sym and reports a DuplicateDeclaration on conflict,
// pointing back at the previous declaration.
func (r *resolver) declare(sym Symbol) SymbolID {
	id, existingID, ok := r.result.Table.Declare(sym)
	if ok {
		return id
	}
	if r.reporter != nil {
		name := r.lookupName(sym.Name)
		b := diag.ReportError(r.reporter, diag.SemaDuplicateDeclaration, sym.Span,
			fmt.Sprintf("redeclaration of %s", name)).
			WithEntity(name)
		if existing := r.result.Table.Symbol(existingID); existing != nil {
			b.WithNote(existing.Span, "previously declared here")
		}
		b.Emit()
	}
	return NoSymbolID
}

func (r *resolver) reportUnresolved(span source.Span, name source.StringID, format string) {
	if r.reporter == nil {
		return
	}
	text := r.lookupName(name)
	diag.ReportError(r.reporter, diag.SemaUnresolvedName, span, fmt.Sprintf(format, text)).
		WithEntity(text).
		Emit()
}

func (r *resolver) lookupName(id source.StringID) string {
	s, _ := r.result.Table.Strings.Lookup(id)
	return s
}
