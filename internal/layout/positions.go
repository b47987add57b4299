package layout

import (
	"fmt"

	"record-mapper/internal/common"
)

// cursor tracks position assignment in declaration order. Before the
// indeterminate component, pos is the next absolute position. After it,
// trailing is the next offset from the start of the trailing region.
type cursor struct {
	pos           int
	trailing      int
	indeterminate bool
}

func (p *preprocessor) layoutDefault() {
	c := &cursor{}

	p.flow(p.rec.Roots, c)

	if p.rec.Indeterminate != NoNode {
		p.finishTrailing(c.trailing)
	}

	for _, id := range p.rec.Roots {
		n := p.node(id)
		p.rec.MinSize = addSat(p.rec.MinSize, mulSat(n.MinSize, n.MinOccurs))
		p.rec.MaxSize = addSat(p.rec.MaxSize, n.Span())
	}
}

func (p *preprocessor) flow(ids []NodeID, c *cursor) {
	for _, id := range ids {
		if c.indeterminate {
			p.placeTrailing(p.node(id), c)
		} else {
			p.placeLeading(p.node(id), c)
		}
	}
}

func (p *preprocessor) placeLeading(n *Node, c *cursor) {
	n.Position = c.pos

	switch {
	case n.Constant:
	case n.Kind == KindSegment && !n.Repeats() && !occursVariable(n):
		p.flow(n.Children, c)
	case n.Variable:
		p.rec.Indeterminate = n.ID
		c.indeterminate = true

		if n.Kind == KindSegment {
			p.stack(n, n.Position, false)
		}
	default:
		if n.Kind == KindSegment {
			p.stack(n, n.Position, false)
		}

		c.pos = addSat(c.pos, n.Span())
	}
}

func (p *preprocessor) placeTrailing(n *Node, c *cursor) {
	if n.Variable {
		p.addError("multiple_indeterminate",
			fmt.Sprintf("a component of indeterminate size may not follow another component of indeterminate size (%q)",
				p.node(p.rec.Indeterminate).Path), n)

		return
	}

	n.Position = c.trailing
	n.Trailing = true

	switch {
	case n.Constant:
	case n.Kind == KindSegment && !n.Repeats():
		p.flow(n.Children, c)
	default:
		if n.Kind == KindSegment {
			p.stack(n, n.Position, true)
		}

		c.trailing = addSat(c.trailing, n.Span())
	}
}

// stack lays out the children of a segment one after another from start.
func (p *preprocessor) stack(seg *Node, start int, trailing bool) {
	pos := start

	for _, id := range seg.Children {
		c := p.node(id)
		c.Position = pos
		c.Trailing = trailing

		if c.Constant {
			continue
		}

		if c.Kind == KindSegment {
			p.stack(c, pos, trailing)
		}

		pos = addSat(pos, c.Span())
	}
}

// finishTrailing moves the trailing components to end-relative positions and
// bounds the indeterminate component.
func (p *preprocessor) finishTrailing(total int) {
	for i := range p.rec.Nodes {
		if n := p.node(NodeID(i)); n.Trailing {
			n.Position -= total
		}
	}

	ind := p.node(p.rec.Indeterminate)
	until := -total

	if d := ind.Decl.Until; d != nil {
		switch {
		case total == 0:
			until = *d
		case *d != until:
			p.addError("until_mismatch",
				fmt.Sprintf("until %d conflicts with the %d units that follow", *d, total), ind)
		}
	}

	ind.Until = until
	ind.HasUntil = true
}

func (p *preprocessor) layoutExplicit() {
	p.rec.Explicit = true

	p.placeExplicit(p.rec.Roots, 0, true)

	var found []*Node

	for i := range p.rec.Nodes {
		n := p.node(NodeID(i))
		n.Trailing = n.Position < 0 && !n.Constant

		if n.Variable && (n.Kind == KindField || occursVariable(n)) {
			found = append(found, n)
		}
	}

	if len(found) > 1 {
		p.addError("multiple_indeterminate",
			fmt.Sprintf("a record may hold one component of indeterminate size, found %q and %q",
				found[0].Path, found[1].Path), found[1])
	}

	if len(found) == 1 {
		ind := found[0]
		p.rec.Indeterminate = ind.ID
		ind.Until = common.Deref(ind.Decl.Until, 0)
		ind.HasUntil = true
	}

	for _, id := range p.rec.Roots {
		n := p.node(id)
		if n.Constant {
			continue
		}

		if n.Position < 0 || n.Span() == Unbounded {
			p.rec.MaxSize = Unbounded
		} else {
			p.rec.MaxSize = max(p.rec.MaxSize, addSat(n.Position, n.Span()))
		}

		if n.Position >= 0 && n.MinOccurs > 0 {
			p.rec.MinSize = max(p.rec.MinSize, n.Position+mulSat(n.MinSize, n.MinOccurs))
		}
	}
}

// placeExplicit resolves declared positions, which are relative to the
// enclosing segment's declared position.
func (p *preprocessor) placeExplicit(ids []NodeID, offset int, top bool) {
	for _, id := range ids {
		n := p.node(id)
		d := n.Decl

		if n.Kind == KindConstant {
			n.Position = offset
			continue
		}

		if d.Position != nil && *d.Position < 0 && !top {
			p.addError("negative_position_in_segment",
				"negative positions are only allowed on components directly in a record", n)
		}

		if n.Kind == KindField {
			n.Position = offset + *d.Position
			continue
		}

		if d.Position != nil {
			base := offset + *d.Position
			p.placeExplicit(n.Children, base, false)
			n.Position = base
		} else {
			p.placeExplicit(n.Children, offset, top)
			n.Position = p.firstChildPosition(n, offset)
		}

		p.spanExplicit(n)
	}
}

func (p *preprocessor) firstChildPosition(seg *Node, def int) int {
	first, ok := def, false

	for _, id := range seg.Children {
		c := p.node(id)
		if c.Constant {
			continue
		}

		if !ok || ComparePosition(c.Position, first) < 0 {
			first, ok = c.Position, true
		}
	}

	return first
}

// spanExplicit sizes a segment as the span of its children.
func (p *preprocessor) spanExplicit(seg *Node) {
	seg.MinSize, seg.MaxSize = 0, 0

	for _, id := range seg.Children {
		c := p.node(id)
		if c.Constant {
			continue
		}

		if c.Position < 0 || c.Span() == Unbounded {
			seg.MaxSize = Unbounded
			continue
		}

		end := addSat(c.Position, c.Span()) - seg.Position
		if seg.MaxSize != Unbounded {
			seg.MaxSize = max(seg.MaxSize, end)
		}

		if c.MinOccurs > 0 {
			seg.MinSize = max(seg.MinSize, c.Position+mulSat(c.MinSize, c.MinOccurs)-seg.Position)
		}
	}

	seg.Variable = seg.Variable || seg.MaxSize == Unbounded
}
