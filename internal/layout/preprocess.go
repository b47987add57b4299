package layout

import (
	"errors"
	"fmt"

	"record-mapper/internal/common"
	"record-mapper/internal/diagnostic"
	"record-mapper/internal/mapping"
	"record-mapper/internal/match"
	"record-mapper/internal/recordio"
	"record-mapper/primitive"
)

const maxSuggestions = 3

// preprocessor compiles one record.
type preprocessor struct {
	format recordio.Format
	rec    *Record
	diags  *diagnostic.Diagnostics
}

// Preprocess compiles a record declaration for the given format into a
// resolved layout. Every problem found is reported in one
// *diagnostic.CompileError.
func Preprocess(format recordio.Format, def *mapping.RecordDef) (*Record, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("invalid record format %d", int(format))
	}

	if def == nil {
		return nil, errors.New("record definition is required")
	}

	diags := mapping.ValidateRecord(def)
	if diags.HasErrors() {
		return nil, diags.Err()
	}

	p := &preprocessor{
		format: format,
		rec: &Record{
			Name:          def.Name,
			Format:        format,
			Decl:          def,
			Indeterminate: NoNode,
		},
		diags: diags,
	}

	p.rec.Roots = p.build(NoNode, nil, def.Fields)
	p.resolveOccursRefs()
	p.validate()

	if p.explicit() {
		p.layoutExplicit()
	} else {
		p.layoutDefault()
	}

	if p.diags.HasErrors() {
		return nil, p.diags.Err()
	}

	p.rec.Warnings = p.diags.Warnings

	return p.rec, nil
}

func (p *preprocessor) node(id NodeID) *Node {
	return &p.rec.Nodes[id]
}

func (p *preprocessor) addError(code, message string, n *Node, suggestions ...string) {
	path := ""
	if n != nil {
		path = n.Path.String()
	}

	p.diags.AddError(code, message, p.rec.Name, path, suggestions...)
}

// build appends the nodes for defs in declaration order and returns their
// ids. Node ids are therefore a preorder numbering of the tree.
func (p *preprocessor) build(parent NodeID, prefix mapping.PropertyPath, defs []mapping.PropertyDef) []NodeID {
	ids := make([]NodeID, 0, len(defs))

	for i := range defs {
		d := &defs[i]
		id := NodeID(len(p.rec.Nodes))

		p.rec.Nodes = append(p.rec.Nodes, Node{
			ID:        id,
			Parent:    parent,
			Name:      d.Name,
			Path:      prefix.Child(d.Name),
			Decl:      d,
			OccursRef: NoNode,
		})

		switch {
		case d.IsConstant():
			p.node(id).Kind = KindConstant
		case d.IsSegment():
			p.node(id).Kind = KindSegment
			children := p.build(id, p.node(id).Path, d.Fields)
			p.node(id).Children = children
		default:
			p.node(id).Kind = KindField
		}

		n := p.node(id)
		p.applyOccurs(n)
		p.applySize(n)

		ids = append(ids, id)
	}

	return ids
}

func (p *preprocessor) applyOccurs(n *Node) {
	d := n.Decl

	if n.Kind == KindConstant {
		n.MinOccurs, n.MaxOccurs = 1, 1
		return
	}

	minDefault := 1
	if d.OccursRef != "" {
		minDefault = 0
	}

	n.MinOccurs = common.Deref(d.MinOccurs, minDefault)

	switch {
	case !d.MaxOccurs.IsZero():
		n.MaxOccurs = d.MaxOccurs.Value(Unbounded)
	case d.OccursRef != "":
		n.MaxOccurs = Unbounded
	default:
		n.MaxOccurs = max(1, n.MinOccurs)
	}
}

func (p *preprocessor) applySize(n *Node) {
	d := n.Decl

	switch n.Kind {
	case KindConstant:
		n.Type, _ = primitive.ParseKind(d.Type)
		n.Constant = true

		return

	case KindSegment:
		n.Constant = true

		for _, id := range n.Children {
			c := p.node(id)
			n.MinSize = addSat(n.MinSize, mulSat(c.MinSize, c.MinOccurs))
			n.MaxSize = addSat(n.MaxSize, c.Span())
			n.Constant = n.Constant && c.Constant
			n.Variable = n.Variable || c.Variable
		}

	case KindField:
		n.Type, _ = primitive.ParseKind(d.Type)

		switch {
		case p.format.FieldsAreTokens():
			if d.Length.IsUnbounded() {
				p.addError("unbounded_length",
					fmt.Sprintf("length %q is only allowed in %s records", d.Length, recordio.FormatFixedLength), n)
			}

			n.MinSize, n.MaxSize = 1, 1

		case d.Length.IsZero():
			p.addError("missing_length", "a fixed-length field requires a length", n)

		case d.Length.IsUnbounded():
			n.MinSize, n.MaxSize = 0, Unbounded

		default:
			n.MinSize = d.Length.Value(Unbounded)
			n.MaxSize = n.MinSize
		}
	}

	if n.Constant {
		n.MinSize, n.MaxSize = 0, 0
		n.Variable = false

		return
	}

	n.Variable = n.Variable || n.MaxSize == Unbounded || occursVariable(n)
}

// occursVariable returns true if the number of occurrences is not fixed.
func occursVariable(n *Node) bool {
	return n.MaxOccurs == Unbounded ||
		n.Decl.OccursRef != "" ||
		(n.MaxOccurs > 1 && n.MinOccurs != n.MaxOccurs)
}

func (p *preprocessor) resolveOccursRefs() {
	for i := range p.rec.Nodes {
		n := p.node(NodeID(i))
		if n.Decl.OccursRef == "" {
			continue
		}

		target := p.findRef(n)
		if target == nil {
			p.addError("occurs_ref_not_found", fmt.Sprintf("occursRef %q not found", n.Decl.OccursRef), n,
				match.Suggest(n.Decl.OccursRef, p.fieldPaths(), maxSuggestions)...)

			continue
		}

		switch {
		case target.Kind != KindField:
			p.addError("occurs_ref_not_field", fmt.Sprintf("occursRef %q is not a field", n.Decl.OccursRef), n)
		case target.ID >= n.ID:
			p.addError("occurs_ref_order",
				fmt.Sprintf("occursRef %q must be declared before %q", target.Path, n.Path), n)
		case p.repeats(target):
			p.addError("occurs_ref_repeats",
				fmt.Sprintf("occursRef %q may not repeat", target.Path), n)
		case target.Decl.Type != "" && !target.Type.IsInteger():
			p.addError("occurs_ref_type",
				fmt.Sprintf("occursRef %q must be an integer field, not %s", target.Path, target.Type), n)
		default:
			n.OccursRef = target.ID
		}
	}
}

// findRef looks an occursRef up from the record first, then next to n.
func (p *preprocessor) findRef(n *Node) *Node {
	ref := n.Decl.OccursRef

	if t, ok := p.rec.Lookup(ref); ok {
		return t
	}

	if n.Parent != NoNode {
		if t, ok := p.rec.Lookup(p.node(n.Parent).Path.String() + "." + ref); ok {
			return t
		}
	}

	return nil
}

func (p *preprocessor) fieldPaths() []string {
	var paths []string

	for i := range p.rec.Nodes {
		if p.rec.Nodes[i].Kind == KindField {
			paths = append(paths, p.rec.Nodes[i].Path.String())
		}
	}

	return paths
}

// repeats returns true if n or any of its ancestors may occur more than once.
func (p *preprocessor) repeats(n *Node) bool {
	for id := n.ID; id != NoNode; id = p.node(id).Parent {
		if p.node(id).Repeats() {
			return true
		}
	}

	return false
}

func (p *preprocessor) validate() {
	for i := range p.rec.Nodes {
		n := p.node(NodeID(i))

		if n.Kind == KindSegment && n.Repeats() {
			for _, id := range n.Children {
				c := p.node(id)

				if c.MinOccurs == 0 {
					p.addError("repeating_segment_optional_child",
						fmt.Sprintf("a repeating segment may not contain the optional component %q", c.Name), n)
				}

				if c.Variable {
					p.addError("repeating_segment_indeterminate_child",
						fmt.Sprintf("a repeating segment may not contain the component of indeterminate size %q", c.Name), n)
				}
			}
		}

		if until := n.Decl.Until; until != nil {
			if *until > 0 {
				p.addError("until_positive", fmt.Sprintf("until must be zero or negative, got %d", *until), n)
			}

			if !n.Variable {
				p.addError("until_not_indeterminate", "until is only allowed on a component of indeterminate size", n)
			}
		}
	}
}

// explicit reports whether the record declares positions, and flags a record
// that declares only some of them.
func (p *preprocessor) explicit() bool {
	declared, missing := 0, 0

	var unplaced *Node

	for i := range p.rec.Nodes {
		n := p.node(NodeID(i))

		switch {
		case n.Kind == KindConstant:
		case n.Decl.Position != nil:
			declared++
		case n.Kind == KindField:
			missing++

			if unplaced == nil {
				unplaced = n
			}
		}
	}

	if declared > 0 && missing > 0 {
		p.addError("mixed_positions",
			fmt.Sprintf("%d components declare a position and %d fields do not, starting with %s; declare all or none",
				declared, missing, unplaced.Path), unplaced)

		return false
	}

	return declared > 0
}
