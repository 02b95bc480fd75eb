// Package qual models cv-qualification of declarators and expression
// results. A Qualifier tracks two independent axes: whether the binding
// itself may be repointed (pointer-constness) and whether the referent's
// value may be written through it (pointee/value-constness).
package qual

// Qualifier is the cv-qualification of a declarator or expression result.
//
// For pointers and iterators both axes are meaningful: BindConst is
// `T * const p` / a const iterator variable, ValueConst is `const T *p` /
// const_iterator. For plain objects and references only ValueConst carries
// information and BindConst stays false.
type Qualifier struct {
	BindConst  bool
	ValueConst bool
}

// None is the unqualified state.
var None = Qualifier{}

// Value returns a plain-object qualifier with the given value-constness.
func Value(valueConst bool) Qualifier {
	return Qualifier{ValueConst: valueConst}
}

// Pointer returns a pointer/iterator qualifier from its two axes.
func Pointer(bindConst, pointeeConst bool) Qualifier {
	return Qualifier{BindConst: bindConst, ValueConst: pointeeConst}
}

// Compose applies an outer qualifier on top of an already-qualified inner
// one. Qualification only accumulates: const-of-const stays const, and
// composing never removes a set axis.
func Compose(outer, inner Qualifier) Qualifier {
	return Qualifier{
		BindConst:  outer.BindConst || inner.BindConst,
		ValueConst: outer.ValueConst || inner.ValueConst,
	}
}

// CanAssignThrough reports whether the pointee/value may be written.
func (q Qualifier) CanAssignThrough() bool {
	return !q.ValueConst
}

// CanRebind reports whether the binding itself may be repointed.
// Independent of CanAssignThrough: all four combinations are distinct.
func (q Qualifier) CanRebind() bool {
	return !q.BindConst
}

// IsConst reports whether the value axis is const. This is the axis that
// matters for overload selection on the invoking object.
func (q Qualifier) IsConst() bool {
	return q.ValueConst
}

// StripConst drops the value-const axis. This is the single sanctioned
// qualifier-loss operation in the analyzer; it exists for the
// call-forwarding idiom where a non-const overload reuses the const
// overload's result and sheds its qualifier at that one boundary. Any other
// qualifier flow must go through Compose.
func StripConst(q Qualifier) Qualifier {
	q.ValueConst = false
	return q
}

func (q Qualifier) String() string {
	switch {
	case q.BindConst && q.ValueConst:
		return "const-bind const-value"
	case q.BindConst:
		return "const-bind"
	case q.ValueConst:
		return "const-value"
	default:
		return "mutable"
	}
}
