package ast

type (
	// FileID identifies one parsed unit inside a Builder.
	FileID uint32
	// ItemID identifies a top-level item (declaration, class, macro, stmt).
	ItemID uint32
	// ExprID identifies an expression node.
	ExprID uint32
	// MemberID identifies a class-body member.
	MemberID uint32
	// PayloadID links a node to its kind-specific payload arena.
	PayloadID uint32
)

const (
	NoFileID    FileID    = 0
	NoItemID    ItemID    = 0
	NoExprID    ExprID    = 0
	NoMemberID  MemberID  = 0
	NoPayloadID PayloadID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id MemberID) IsValid() bool  { return id != NoMemberID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
