package internal

// NodeId and ValueId are small integer indices into the parser arena;
// spec.md §9 forbids reference-typed parent/child pointers, so every
// Node/Value cross-reference is one of these. noID is the "absent" marker,
// used for e.g. a List node's not-yet-overflowed Link.
type NodeId int32
type ValueId int32

const noID NodeId = -1

// NodeKind discriminates the Node sum type of spec.md §3.
type NodeKind uint8

const (
	NodeLeaf NodeKind = iota
	NodeBinOp
	NodeUniOp
	NodeIndex
	NodeAddr
	NodeList
	NodeZero
)

// listInline is the fixed width of a List node's inline element slab
// before it chains into an overflow Link node (spec.md §3).
const listInline = 8

// Node is the evaluator's unit of dispatch. Exactly one of the field
// groups below is meaningful, selected by Kind; this mirrors spec.md §9's
// "prefer concrete types and hand-written dispatch" guidance, the same
// shape as Value.
type Node struct {
	Kind NodeKind

	// NodeLeaf
	Value ValueId

	// NodeBinOp, NodeUniOp
	Op  byte
	LHS NodeId
	RHS NodeId

	// NodeIndex, NodeAddr
	Row NodeId
	Col NodeId

	// NodeList
	Elems [listInline]NodeId
	Len   int
	Link  NodeId
}
