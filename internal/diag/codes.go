package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for a diagnostic kind.
// The numeric space is partitioned per phase: 1000 lexer, 2000 parser,
// 3000 semantic analysis.
type Code uint16

const (
	// UnknownCode covers internal faults that have no dedicated code.
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// Syntactic
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynUnclosedParen    Code = 2006
	SynUnclosedBrace    Code = 2007
	SynExpectMember     Code = 2008
	SynBadMacroDefine   Code = 2009
	SynBadDeclarator    Code = 2010

	// Semantic verdicts. The first six are the analyzer's externally
	// visible diagnostic kinds; their numeric values are frozen.
	SemaInfo                      Code = 3000
	SemaDuplicateDeclaration      Code = 3001
	SemaNonModifiableTarget       Code = 3002
	SemaConstViolation            Code = 3003
	SemaNoViableOverload          Code = 3004
	SemaIllegalConstantPlacement  Code = 3005
	SemaMultipleEvaluationHazard  Code = 3006
	SemaMacroPrecedenceHazard     Code = 3007
	SemaUnresolvedName            Code = 3010
	SemaNotAPointer               Code = 3011
	SemaNotAClass                 Code = 3012
	SemaNoSuchMember              Code = 3013
	SemaEnumSubstituteRecommended Code = 3014
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown failure",

	LexInfo:                     "lexical info",
	LexUnknownChar:              "unknown character",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",

	SynInfo:             "syntax info",
	SynUnexpectedToken:  "unexpected token",
	SynExpectSemicolon:  "expected ';'",
	SynExpectIdentifier: "expected identifier",
	SynExpectType:       "expected type name",
	SynExpectExpression: "expected expression",
	SynUnclosedParen:    "unclosed '('",
	SynUnclosedBrace:    "unclosed '{'",
	SynExpectMember:     "expected member declaration",
	SynBadMacroDefine:   "malformed macro definition",
	SynBadDeclarator:    "malformed declarator",

	SemaInfo:                      "semantic info",
	SemaDuplicateDeclaration:      "duplicate declaration",
	SemaNonModifiableTarget:       "assignment target is not modifiable",
	SemaConstViolation:            "const object calls non-const member",
	SemaNoViableOverload:          "no viable overload",
	SemaIllegalConstantPlacement:  "illegal class-constant placement",
	SemaMultipleEvaluationHazard:  "macro evaluates an argument more than once",
	SemaMacroPrecedenceHazard:     "macro body is precedence-hazardous",
	SemaUnresolvedName:            "unresolved name",
	SemaNotAPointer:               "dereference of a non-pointer",
	SemaNotAClass:                 "member access on a non-class value",
	SemaNoSuchMember:              "no such member",
	SemaEnumSubstituteRecommended: "enumerated constant substitute recommended",
}

// ID returns the phase-prefixed identifier, e.g. SEM3002.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
