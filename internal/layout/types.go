package layout

import (
	"cmp"
	"math"
	"slices"

	"record-mapper/internal/common"
	"record-mapper/internal/diagnostic"
	"record-mapper/internal/mapping"
	"record-mapper/internal/recordio"
	"record-mapper/primitive"
)

// Unbounded is the sentinel for unbounded occurrences and sizes.
const Unbounded = math.MaxInt

// NodeID indexes Record.Nodes.
type NodeID int

// NoNode is the NodeID of an absent node.
const NoNode NodeID = -1

// Kind is the kind of a layout node.
type Kind int

const (
	KindField Kind = iota + 1
	KindSegment
	KindConstant
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindSegment:
		return "segment"
	case KindConstant:
		return "constant"
	default:
		return common.UnknownStr
	}
}

// Node is one resolved field, segment or constant.
type Node struct {
	ID       NodeID
	Parent   NodeID
	Children []NodeID
	Kind     Kind
	Name     string
	Path     mapping.PropertyPath
	Decl     *mapping.PropertyDef
	// Type is set for fields and constants.
	Type primitive.KindEnum

	// Position is the absolute position of the first occurrence: a character
	// offset for fixed-length records, a token index otherwise. Negative
	// positions count from the end of the record.
	Position int
	// MinSize and MaxSize are the size of one occurrence.
	MinSize int
	MaxSize int

	MinOccurs int
	MaxOccurs int
	// OccursRef is the field holding the occurrence count, or NoNode.
	OccursRef NodeID

	// Until is set on the indeterminate component: its text ends this many
	// units before the end of the record.
	Until    int
	HasUntil bool

	// Variable is true if the node's total size is not fixed.
	Variable bool
	// Constant is true if the node occupies no text.
	Constant bool
	// Trailing is true if the node follows the indeterminate component.
	Trailing bool
}

// Repeats returns true if the node may occur more than once.
func (n *Node) Repeats() bool {
	return n.MaxOccurs > 1
}

// Span returns the size of all occurrences at their maximum.
func (n *Node) Span() int {
	return mulSat(n.MaxSize, n.MaxOccurs)
}

// Record is the resolved layout of one record.
type Record struct {
	Name   string
	Format recordio.Format
	Decl   *mapping.RecordDef

	Nodes []Node
	Roots []NodeID

	// Explicit is true if the record declares every field position.
	Explicit bool
	// Indeterminate is the component of indeterminate size, or NoNode.
	Indeterminate NodeID

	MinSize int
	MaxSize int

	// Warnings found while compiling.
	Warnings []diagnostic.Diagnostic
}

// Node returns the node with the given id.
func (r *Record) Node(id NodeID) *Node {
	return &r.Nodes[id]
}

// Lookup finds a node by its dotted path from the record.
func (r *Record) Lookup(path string) (*Node, bool) {
	for i := range r.Nodes {
		if r.Nodes[i].Path.String() == path {
			return &r.Nodes[i], true
		}
	}

	return nil, false
}

// Walk visits nodes in declaration order with their depth below the record.
func (r *Record) Walk(fn func(n *Node, depth int)) {
	var visit func(ids []NodeID, depth int)

	visit = func(ids []NodeID, depth int) {
		for _, id := range ids {
			n := r.Node(id)
			fn(n, depth)
			visit(n.Children, depth+1)
		}
	}

	visit(r.Roots, 0)
}

// SortedChildren returns ids ordered by ComparePosition, stable for ties.
func (r *Record) SortedChildren(ids []NodeID) []NodeID {
	out := make([]NodeID, len(ids))
	copy(out, ids)

	slices.SortStableFunc(out, func(a, b NodeID) int {
		return ComparePosition(r.Node(a).Position, r.Node(b).Position)
	})

	return out
}

// Stream is a compiled stream: one resolved layout per record definition.
type Stream struct {
	Name     string
	Format   recordio.Format
	Decl     *mapping.StreamDef
	Records  []*Record
	Warnings []diagnostic.Diagnostic
}

// Record returns the compiled record with the given name, or nil.
func (s *Stream) Record(name string) *Record {
	for _, r := range s.Records {
		if r.Name == name {
			return r
		}
	}

	return nil
}

// ComparePosition orders positions as they appear in a record: non-negative
// positions first, ascending, then negative positions, ascending.
func ComparePosition(a, b int) int {
	if (a < 0) != (b < 0) {
		if a >= 0 {
			return -1
		}

		return 1
	}

	return cmp.Compare(a, b)
}

func addSat(a, b int) int {
	if a == Unbounded || b == Unbounded || a > Unbounded-b {
		return Unbounded
	}

	return a + b
}

func mulSat(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}

	if a == Unbounded || b == Unbounded || a > Unbounded/b {
		return Unbounded
	}

	return a * b
}
