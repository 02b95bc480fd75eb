package diagfmt

import (
	"sort"

	"cvlint/internal/ast"
	"cvlint/internal/sema"
	"cvlint/internal/source"
	"cvlint/internal/symbols"
)

// AnnotationsInput supplies the analysis products the annotation section is
// built from.
type AnnotationsInput struct {
	Builder *ast.Builder
	Symbols *symbols.Result
	Sema    *sema.Result
}

// QualifierJSON is the two-axis qualification of a declaration or
// expression.
type QualifierJSON struct {
	BindConst  bool `json:"bind_const"`
	ValueConst bool `json:"value_const"`
}

// DeclarationJSON is one Declaration Table entry.
type DeclarationJSON struct {
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	Class     string        `json:"class,omitempty"`
	Type      string        `json:"type,omitempty"`
	Qualifier QualifierJSON `json:"qualifier"`
	Location  LocationJSON  `json:"location"`
}

// ExpressionJSON is one evaluated expression with its resolved
// qualification and modifiability verdict.
type ExpressionJSON struct {
	Location   LocationJSON  `json:"location"`
	Qualifier  QualifierJSON `json:"qualifier"`
	Modifiable bool          `json:"modifiable"`
	BoundTo    string        `json:"bound_to,omitempty"`
}

// AnnotationsJSON is the resolved-qualifier annotation section.
type AnnotationsJSON struct {
	Declarations []DeclarationJSON `json:"declarations"`
	Expressions  []ExpressionJSON  `json:"expressions"`
}

func buildAnnotations(fileSet *source.FileSet, opts JSONOpts, in *AnnotationsInput) *AnnotationsJSON {
	if in.Symbols == nil || in.Symbols.Table == nil {
		return nil
	}
	table := in.Symbols.Table
	out := &AnnotationsJSON{}

	for id := symbols.SymbolID(1); int(id) <= table.SymbolCount(); id++ {
		sym := table.Symbol(id)
		if sym == nil || sym.Kind == symbols.SymClass {
			continue
		}
		decl := DeclarationJSON{
			Name:      lookupName(table.Strings, sym.Name),
			Kind:      sym.Kind.String(),
			Type:      lookupName(table.Strings, sym.TypeName),
			Qualifier: QualifierJSON{BindConst: sym.Qual.BindConst, ValueConst: sym.Qual.ValueConst},
			Location:  makeLocation(sym.Span, fileSet, opts.PathMode, opts.IncludePositions),
		}
		if scope := table.Scope(sym.Scope); scope != nil && scope.Kind == symbols.ScopeClass {
			decl.Class = lookupName(table.Strings, scope.Class)
		}
		out.Declarations = append(out.Declarations, decl)
	}

	if in.Sema != nil && in.Builder != nil {
		ids := make([]ast.ExprID, 0, len(in.Sema.ExprQuals))
		for id := range in.Sema.ExprQuals {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			expr := in.Builder.Exprs.Get(id)
			if expr == nil {
				continue
			}
			q := in.Sema.ExprQuals[id]
			entry := ExpressionJSON{
				Location:   makeLocation(expr.Span, fileSet, opts.PathMode, opts.IncludePositions),
				Qualifier:  QualifierJSON{BindConst: q.BindConst, ValueConst: q.ValueConst},
				Modifiable: in.Sema.ExprModifiable[id],
			}
			if sym := table.Symbol(in.Sema.ExprBindings[id]); sym != nil {
				entry.BoundTo = lookupName(table.Strings, sym.Name)
			}
			out.Expressions = append(out.Expressions, entry)
		}
	}
	return out
}

func lookupName(strings *source.Interner, id source.StringID) string {
	s, _ := strings.Lookup(id)
	return s
}
