package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a floating-point literal token.
	FloatLit

	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwPublic represents the 'public' access label.
	KwPublic // public
	// KwPrivate represents the 'private' access label.
	KwPrivate // private
	// KwOperator represents the 'operator' keyword.
	KwOperator // operator
	// KwInline represents the 'inline' keyword.
	KwInline // inline
	// KwIterator represents the 'iterator' type keyword.
	KwIterator // iterator
	// KwConstIterator represents the 'const_iterator' type keyword.
	KwConstIterator // const_iterator
	// HashDefine represents the '#define' introducer.
	HashDefine // #define

	// Punctuation and operators.
	Star       // *
	Amp        // &
	Plus       // +
	Minus      // -
	Slash      // /
	Percent    // %
	Assign     // =
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	Gt         // >
	LtEq       // <=
	GtEq       // >=
	Question   // ?
	Colon      // :
	ColonColon // ::
	Semicolon  // ;
	Comma      // ,
	Dot        // .
	PlusPlus   // ++
	MinusMinus // --
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
)

var kindNames = map[Kind]string{
	Invalid:         "invalid",
	EOF:             "eof",
	Ident:           "ident",
	IntLit:          "int",
	FloatLit:        "float",
	KwConst:         "const",
	KwClass:         "class",
	KwStruct:        "struct",
	KwStatic:        "static",
	KwEnum:          "enum",
	KwPublic:        "public",
	KwPrivate:       "private",
	KwOperator:      "operator",
	KwInline:        "inline",
	KwIterator:      "iterator",
	KwConstIterator: "const_iterator",
	HashDefine:      "#define",
	Star:            "*",
	Amp:             "&",
	Plus:            "+",
	Minus:           "-",
	Slash:           "/",
	Percent:         "%",
	Assign:          "=",
	EqEq:            "==",
	BangEq:          "!=",
	Lt:              "<",
	Gt:              ">",
	LtEq:            "<=",
	GtEq:            ">=",
	Question:        "?",
	Colon:           ":",
	ColonColon:      "::",
	Semicolon:       ";",
	Comma:           ",",
	Dot:             ".",
	PlusPlus:        "++",
	MinusMinus:      "--",
	LParen:          "(",
	RParen:          ")",
	LBrace:          "{",
	RBrace:          "}",
	LBracket:        "[",
	RBracket:        "]",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
