package token

var keywords = map[string]Kind{
	"const":          KwConst,
	"class":          KwClass,
	"struct":         KwStruct,
	"static":         KwStatic,
	"enum":           KwEnum,
	"public":         KwPublic,
	"private":        KwPrivate,
	"operator":       KwOperator,
	"inline":         KwInline,
	"iterator":       KwIterator,
	"const_iterator": KwConstIterator,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// Returns Ident when the spelling is not a keyword.
func LookupKeyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}
