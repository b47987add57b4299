package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cast"

	"record-mapper/internal/common"
	"record-mapper/internal/layout"
	"record-mapper/internal/recordio"
)

// RecordParser reads and writes the values of one kind of record.
type RecordParser struct {
	layout *layout.Record
	// fields is indexed by layout.NodeID and is nil for segments.
	fields []*field
	rids   []*field
	// counted maps an occursRef target to the component it counts.
	counted map[layout.NodeID]layout.NodeID
}

// NewRecordParser builds the parser of a resolved record layout.
func NewRecordParser(rec *layout.Record) (*RecordParser, error) {
	p := &RecordParser{
		layout:  rec,
		fields:  make([]*field, len(rec.Nodes)),
		counted: make(map[layout.NodeID]layout.NodeID),
	}

	for i := range rec.Nodes {
		n := &rec.Nodes[i]

		if n.OccursRef != layout.NoNode {
			p.counted[n.OccursRef] = n.ID
		}

		if n.Kind == layout.KindSegment {
			continue
		}

		f, err := newField(rec, n)
		if err != nil {
			return nil, err
		}

		p.fields[n.ID] = f

		if n.Decl.RID {
			p.rids = append(p.rids, f)
		}
	}

	return p, nil
}

// Name returns the record name.
func (p *RecordParser) Name() string {
	return p.layout.Name
}

// Layout returns the resolved layout the parser was built from.
func (p *RecordParser) Layout() *layout.Record {
	return p.layout
}

// units is the text of one record: tokens, or the characters of a
// fixed-length line.
type units struct {
	tokens []string
	runes  []rune
	fixed  bool
}

func (p *RecordParser) units(tokens []string) units {
	if p.layout.Format != recordio.FormatFixedLength {
		return units{tokens: tokens}
	}

	line, _ := common.First(tokens)

	return units{runes: []rune(line), fixed: true}
}

func (u units) len() int {
	if u.fixed {
		return len(u.runes)
	}

	return len(u.tokens)
}

// slice returns the text of [start, end). A fixed-length field cut short by
// the end of the line yields the characters that are there.
func (u units) slice(start, end int) (string, bool) {
	if start < 0 || start >= u.len() {
		return "", false
	}

	if !u.fixed {
		return u.tokens[start], true
	}

	end = min(max(end, start), len(u.runes))

	return string(u.runes[start:end]), true
}

// Matches reports whether tokens hold a record of this kind: the number of
// tokens fits the layout and every rid field matches.
func (p *RecordParser) Matches(tokens []string) bool {
	u := p.units(tokens)
	total := u.len()

	if !u.fixed && (total < p.layout.MinSize || total > p.layout.MaxSize) {
		return false
	}

	for _, f := range p.rids {
		start := position(f.node.Position, total)

		raw, ok := u.slice(start, start+f.node.MaxSize)
		if !ok || !f.matches(raw) {
			return false
		}
	}

	return true
}

func position(pos, total int) int {
	if pos < 0 {
		return total + pos
	}

	return pos
}

// reader holds the state of one Unmarshal.
type reader struct {
	p     *RecordParser
	u     units
	total int
	// counts holds the values of occursRef targets read so far.
	counts map[layout.NodeID]int
}

// Unmarshal reads the values of a record from its field-text sequence.
func (p *RecordParser) Unmarshal(tokens []string) (Values, error) {
	r := &reader{
		p:      p,
		u:      p.units(tokens),
		counts: make(map[layout.NodeID]int),
	}
	r.total = r.u.len()

	values := Values{}

	for _, id := range p.layout.Roots {
		if err := r.read(p.layout.Node(id), 0, values); err != nil {
			return nil, err
		}
	}

	return values, nil
}

func (r *reader) fail(n *layout.Node, err error) error {
	return &FieldError{Record: r.p.layout.Name, Field: n.Path.String(), Err: err}
}

func (r *reader) read(n *layout.Node, shift int, out Values) error {
	if n.Kind == layout.KindConstant {
		out[n.Name] = r.p.fields[n.ID].constant
		return nil
	}

	start := position(n.Position, r.total) + shift

	count, err := r.count(n, start)
	if err != nil {
		return err
	}

	if n.Kind == layout.KindSegment {
		return r.readSegment(n, start, shift, count, out)
	}

	f := r.p.fields[n.ID]
	list := make([]any, 0, count)

	for k := range count {
		from := start + k*n.MaxSize

		var (
			raw string
			ok  bool
		)

		if n.MaxSize == layout.Unbounded {
			raw, ok = r.u.slice(from, r.total+n.Until)
			ok = ok || from == r.total+n.Until
		} else {
			raw, ok = r.u.slice(from, from+n.MaxSize)
		}

		if !ok {
			return r.fail(n, ErrMissing)
		}

		v, err := f.parse(raw)
		if err != nil {
			return err
		}

		list = append(list, v)
	}

	if _, ok := r.p.counted[n.ID]; ok && len(list) == 1 && list[0] != nil {
		c, err := toCount(list[0])
		if err != nil {
			return r.fail(n, err)
		}

		r.counts[n.ID] = c
	}

	switch {
	case n.Repeats():
		out[n.Name] = list
	case count == 1:
		out[n.Name] = list[0]
	case f.def != nil:
		v, err := f.parse("")
		if err != nil {
			return err
		}

		out[n.Name] = v
	}

	return nil
}

func (r *reader) readSegment(n *layout.Node, start, shift, count int, out Values) error {
	list := make([]Values, 0, count)

	for k := range count {
		sub := Values{}

		for _, id := range n.Children {
			if err := r.read(r.p.layout.Node(id), shift+k*n.MaxSize, sub); err != nil {
				return err
			}
		}

		list = append(list, sub)
	}

	switch {
	case n.Repeats():
		out[n.Name] = list
	case count == 1:
		out[n.Name] = list[0]
	}

	return nil
}

// count returns how many occurrences of n the record holds.
func (r *reader) count(n *layout.Node, start int) (int, error) {
	if n.ID != r.p.layout.Indeterminate {
		switch {
		case start < r.total:
			return n.MaxOccurs, nil
		case n.MinOccurs == 0:
			return 0, nil
		case n.Kind == layout.KindSegment && n.Variable:
			// The segment holds the indeterminate component, which may be empty.
			return 1, nil
		default:
			return 0, r.fail(n, ErrMissing)
		}
	}

	avail := max(0, r.total+n.Until-start)

	var c int

	switch {
	case n.MaxSize == layout.Unbounded:
		c = 1
		if avail == 0 && n.MinOccurs == 0 {
			c = 0
		}

		return c, nil

	case n.OccursRef != layout.NoNode:
		c = r.counts[n.OccursRef]
		if c*n.MaxSize != avail {
			return 0, r.fail(n, fmt.Errorf("%w: %d occurrences need %d units, found %d",
				ErrOccurrences, c, c*n.MaxSize, avail))
		}

	default:
		if n.MaxSize == 0 || avail%n.MaxSize != 0 {
			return 0, r.fail(n, fmt.Errorf("%w: %d units is not a multiple of %d", ErrLength, avail, n.MaxSize))
		}

		c = avail / n.MaxSize
	}

	if c < n.MinOccurs || c > n.MaxOccurs {
		return 0, r.fail(n, fmt.Errorf("%w: found %d, expected %d to %s",
			ErrOccurrences, c, n.MinOccurs, occursString(n.MaxOccurs)))
	}

	return c, nil
}

func occursString(n int) string {
	if n == layout.Unbounded {
		return "unbounded"
	}

	return fmt.Sprint(n)
}

func toCount(v any) (int, error) {
	c, err := cast.ToIntE(v)
	if err != nil {
		return 0, err
	}

	if c < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrOccurrences, c)
	}

	return c, nil
}

// writer holds the state of one Marshal.
type writer struct {
	p      *RecordParser
	root   Values
	total  int
	fixed  bool
	tokens []string
	runes  []rune
	// end is one past the last token written.
	end int
}

// Marshal formats the values of a record into its field-text sequence: one
// token per field, or a single line for fixed-length records.
func (p *RecordParser) Marshal(values Values) ([]string, error) {
	w := &writer{p: p, root: values, fixed: p.layout.Format == recordio.FormatFixedLength}

	total, err := w.size()
	if err != nil {
		return nil, err
	}

	w.total = total

	if w.fixed {
		w.runes = make([]rune, total)
		for i := range w.runes {
			w.runes[i] = ' '
		}
	} else {
		w.tokens = make([]string, total)
	}

	for _, id := range p.layout.SortedChildren(p.layout.Roots) {
		if err := w.write(p.layout.Node(id), 0, values); err != nil {
			return nil, err
		}
	}

	if w.fixed {
		return []string{string(w.runes)}, nil
	}

	return w.tokens[:w.end], nil
}

// size computes the number of units the record needs.
func (w *writer) size() (int, error) {
	rec := w.p.layout

	if rec.Indeterminate != layout.NoNode {
		n := rec.Node(rec.Indeterminate)
		v, _ := w.root.Get(n.Path)

		region, err := w.region(n, v)
		if err != nil {
			return 0, err
		}

		return n.Position + region - n.Until, nil
	}

	lead, tail := 0, 0

	for _, id := range rec.Roots {
		n := rec.Node(id)

		switch {
		case n.Constant:
		case n.Position < 0:
			tail = max(tail, -n.Position)
		default:
			lead = max(lead, n.Position+n.Span())
		}
	}

	return lead + tail, nil
}

// region returns the units the indeterminate component needs for v.
func (w *writer) region(n *layout.Node, v any) (int, error) {
	if n.MaxSize == layout.Unbounded {
		if v == nil && n.MinOccurs == 0 {
			return 0, nil
		}

		text, err := w.p.fields[n.ID].format(v)
		if err != nil {
			return 0, err
		}

		return utf8.RuneCountInString(text), nil
	}

	return max(len(asList(v)), n.MinOccurs) * n.MaxSize, nil
}

func (w *writer) put(start int, text string) {
	if !w.fixed {
		if start >= 0 && start < len(w.tokens) {
			w.tokens[start] = text
			w.end = max(w.end, start+1)
		}

		return
	}

	for i, c := range []rune(text) {
		if at := start + i; at >= 0 && at < len(w.runes) {
			w.runes[at] = c
		}
	}
}

func (w *writer) fail(n *layout.Node, err error) error {
	return &FieldError{Record: w.p.layout.Name, Field: n.Path.String(), Err: err}
}

func (w *writer) write(n *layout.Node, shift int, in Values) error {
	if n.Kind == layout.KindConstant {
		return nil
	}

	v, present := in[n.Name]
	if v == nil {
		present = false
	}

	if !present {
		if c, ok := w.derivedCount(n); ok {
			v, present = c, true
		}
	}

	var list []any

	switch {
	case n.Repeats() || n.ID == w.p.layout.Indeterminate:
		list = asList(v)
		if n.MaxSize == layout.Unbounded && present {
			list = []any{v}
		}
	case present:
		list = []any{v}
	case n.Kind == layout.KindField && w.p.fields[n.ID].def != nil:
		list = []any{nil}
	}

	if len(list) > n.MaxOccurs {
		return w.fail(n, fmt.Errorf("%w: %d values, at most %s allowed",
			ErrOccurrences, len(list), occursString(n.MaxOccurs)))
	}

	for len(list) < n.MinOccurs {
		list = append(list, nil)
	}

	start := position(n.Position, w.total) + shift

	for k, item := range list {
		at := start + k*n.MaxSize
		if n.MaxSize == layout.Unbounded {
			at = start
		}

		if n.Kind == layout.KindSegment {
			sub, err := asValues(item)
			if err != nil {
				return w.fail(n, err)
			}

			for _, id := range w.p.layout.SortedChildren(n.Children) {
				if err := w.write(w.p.layout.Node(id), shift+k*n.MaxSize, sub); err != nil {
					return err
				}
			}

			continue
		}

		text, err := w.p.fields[n.ID].format(item)
		if err != nil {
			return err
		}

		w.put(at, text)
	}

	return nil
}

// derivedCount returns the occurrence count of the component that n counts,
// for an occursRef target written without a value.
func (w *writer) derivedCount(n *layout.Node) (int, bool) {
	id, ok := w.p.counted[n.ID]
	if !ok {
		return 0, false
	}

	v, _ := w.root.Get(w.p.layout.Node(id).Path)

	return len(asList(v)), true
}
