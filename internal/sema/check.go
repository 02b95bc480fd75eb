// Package sema computes cv-qualification for every expression of a unit,
// binds const/non-const overload calls, checks assignment targets, validates
// class-constant placement and flags macro hazards. All findings are
// reported, never fatal: one pass yields the unit's complete diagnostic set.
package sema

import (
	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/qual"
	"cvlint/internal/source"
	"cvlint/internal/symbols"
)

// Options configure a semantic pass over a unit.
type Options struct {
	Reporter diag.Reporter
	// Symbols is the resolved Declaration Table; when nil a resolve pass
	// is run internally.
	Symbols *symbols.Result
	// File supplies source text for entity naming in diagnostics; may be
	// nil.
	File *source.File
}

// Result is the resolved-qualifier annotation tree for one unit, keyed by
// expression ID. Downstream renderers consume it together with the
// diagnostic bag.
type Result struct {
	// ExprQuals records the computed qualification of every evaluated
	// expression node.
	ExprQuals map[ast.ExprID]qual.Qualifier
	// ExprModifiable records whether the node is a modifiable lvalue.
	ExprModifiable map[ast.ExprID]bool
	// ExprBindings records the bound symbol for identifier, scope
	// reference and resolved call nodes.
	ExprBindings map[ast.ExprID]symbols.SymbolID
}

// Check runs the semantic pass over one parsed unit.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) *Result {
	res := &Result{
		ExprQuals:      make(map[ast.ExprID]qual.Qualifier),
		ExprModifiable: make(map[ast.ExprID]bool),
		ExprBindings:   make(map[ast.ExprID]symbols.SymbolID),
	}
	if builder == nil || fileID == ast.NoFileID {
		return res
	}
	syms := opts.Symbols
	if syms == nil {
		syms = symbols.Resolve(builder, fileID, symbols.Options{Reporter: opts.Reporter})
	}

	checker := &checker{
		builder:  builder,
		fileID:   fileID,
		reporter: opts.Reporter,
		table:    syms.Table,
		file:     opts.File,
		result:   res,
	}
	checker.run()
	return res
}

type checker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	table    *symbols.Table
	file     *source.File
	result   *Result
}

func (c *checker) run() {
	file := c.builder.Files.Get(c.fileID)
	if file == nil {
		return
	}
	// Expression evaluation first: it marks address-taken constants, which
	// the placement validator needs.
	for _, itemID := range file.Items {
		item := c.builder.Items.Get(itemID)
		if item == nil {
			continue
		}
		switch item.Kind {
		case ast.ItemDecl:
			if decl, ok := c.builder.Items.Decl(itemID); ok && decl.Init.IsValid() {
				c.evalExpr(decl.Init)
			}
		case ast.ItemClassConstDef:
			if def, ok := c.builder.Items.ClassConstDef(itemID); ok && def.Init.IsValid() {
				c.evalExpr(def.Init)
			}
		case ast.ItemExprStmt:
			if stmt, ok := c.builder.Items.ExprStmt(itemID); ok {
				c.evalExpr(stmt.Expr)
			}
		case ast.ItemClass, ast.ItemMacroDef:
			// Declarations were handled during resolve; macros below.
		}
	}

	c.validateConstants()

	for _, itemID := range file.Items {
		if macro, ok := c.builder.Items.MacroDef(itemID); ok {
			c.checkMacro(c.builder.Items.Get(itemID).Span, macro)
		}
	}
}

func (c *checker) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) *diag.ReportBuilder {
	if c.reporter == nil {
		return nil
	}
	return diag.NewReportBuilder(c.reporter, sev, code, sp, msg)
}

// spanText slices the unit's source for entity naming; empty without file
// content.
func (c *checker) spanText(sp source.Span) string {
	if c.file == nil || int(sp.End) > len(c.file.Content) || sp.Start >= sp.End {
		return ""
	}
	return string(c.file.Content[sp.Start:sp.End])
}

func (c *checker) name(id source.StringID) string {
	s, _ := c.table.Strings.Lookup(id)
	return s
}
