package symbols

type (
	// ScopeID identifies a scope inside a Table.
	ScopeID uint32
	// SymbolID identifies a declared entity inside a Table.
	SymbolID uint32
)

const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
