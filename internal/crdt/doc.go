// Package crdt implements a replicated growable array (RGA) over runes. Each
// inserted rune carries a Lamport (seq, site) identifier and the identifier of
// the element it was inserted after; deletes leave tombstones. Replicas that
// have applied the same set of operations hold the same text regardless of
// delivery order.
package crdt

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// ID identifies one inserted element
type ID struct {
	Seq  uint64 `cbor:"1,keyasint"`
	Site string `cbor:"2,keyasint"`
}

// IsZero reports whether id is the document head
func (id ID) IsZero() bool {
	return id.Seq == 0 && id.Site == ""
}

// after orders concurrent siblings: the larger ID is placed first
func (id ID) after(other ID) bool {
	if id.Seq != other.Seq {
		return id.Seq > other.Seq
	}
	return id.Site > other.Site
}

// OpKind distinguishes inserts from deletes
type OpKind uint8

const (
	OpInsert OpKind = 1
	OpDelete OpKind = 2
)

// Op is a single replicated operation
type Op struct {
	Kind OpKind `cbor:"1,keyasint"`

	// ID is the new element for inserts and the target for deletes
	ID ID `cbor:"2,keyasint"`

	// Origin is the element the insert was placed after; zero is the head
	Origin ID `cbor:"3,keyasint,omitempty"`

	Value string `cbor:"4,keyasint,omitempty"`
}

// Update is a batch of operations produced by one local change or a state sync
type Update struct {
	Ops []Op `cbor:"1,keyasint"`
}

// Empty reports whether the update carries no operations
func (u Update) Empty() bool {
	return len(u.Ops) == 0
}

type element struct {
	id      ID
	origin  ID
	value   string
	deleted bool

	// pos is the element's slice position as of the last time it was indexed
	pos int
}

// Doc is one replica of a shared text
type Doc struct {
	mu      sync.Mutex
	site    string
	clock   uint64
	elems   []*element
	byID    map[ID]*element
	deletes map[ID]bool
	pending []Op

	// staleFrom is the lowest slice position whose element may carry an
	// outdated pos
	staleFrom int
	textSize  int
}

// NewDoc creates an empty replica. site must be unique among peers.
func NewDoc(site string) *Doc {
	return &Doc{
		site:    site,
		byID:    make(map[ID]*element),
		deletes: make(map[ID]bool),
	}
}

// Site returns the replica's site identifier
func (d *Doc) Site() string {
	return d.site
}

// Text returns the visible contents
func (d *Doc) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text()
}

func (d *Doc) text() string {
	var b strings.Builder
	b.Grow(d.textSize)
	for _, e := range d.elems {
		if !e.deleted {
			b.WriteString(e.value)
		}
	}
	return b.String()
}

// Len returns the number of visible runes
func (d *Doc) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, e := range d.elems {
		if !e.deleted {
			n++
		}
	}
	return n
}

// Insert places text before the visible rune at pos and returns the update to
// broadcast
func (d *Doc) Insert(pos int, text string) Update {
	d.mu.Lock()
	defer d.mu.Unlock()

	origin := d.visibleID(pos - 1)
	return d.insertLocal(origin, text)
}

// Delete removes count visible runes starting at pos
func (d *Doc) Delete(pos, count int) Update {
	d.mu.Lock()
	defer d.mu.Unlock()

	var update Update
	visible := 0
	for _, e := range d.elems {
		if e.deleted {
			continue
		}
		if visible >= pos && visible < pos+count {
			d.tombstone(e)
			update.Ops = append(update.Ops, Op{Kind: OpDelete, ID: e.id})
		}
		visible++
	}
	return update
}

// Replace deletes everything then inserts text. Character level merging is
// left to the operation log.
func (d *Doc) Replace(text string) Update {
	d.mu.Lock()
	defer d.mu.Unlock()

	var update Update
	for _, e := range d.elems {
		if e.deleted {
			continue
		}
		d.tombstone(e)
		update.Ops = append(update.Ops, Op{Kind: OpDelete, ID: e.id})
	}

	inserted := d.insertLocal(ID{}, text)
	update.Ops = append(update.Ops, inserted.Ops...)
	return update
}

// insertLocal chains every rune of text after origin and places the chain
// with a single splice
func (d *Doc) insertLocal(origin ID, text string) Update {
	update := Update{Ops: make([]Op, 0, utf8.RuneCountInString(text))}
	for _, r := range text {
		d.clock++
		op := Op{
			Kind:   OpInsert,
			ID:     ID{Seq: d.clock, Site: d.site},
			Origin: origin,
			Value:  string(r),
		}
		update.Ops = append(update.Ops, op)
		origin = op.ID
	}
	d.insertRun(update.Ops)
	return update
}

// Apply merges a remote update. It reports whether the visible text changed.
// Operations are idempotent; those whose dependencies have not arrived yet are
// held until they can be placed.
func (d *Doc) Apply(update Update) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	before := d.text()

	queue := append(d.pending, update.Ops...)
	d.pending = nil
	for {
		var deferred []Op
		progressed := false
		for i := 0; i < len(queue); {
			op := queue[i]
			if !d.ready(op) {
				deferred = append(deferred, op)
				i++
				continue
			}
			progressed = true

			end := i + 1
			if op.Kind == OpInsert && d.byID[op.ID] == nil {
				end = d.chainEnd(queue, i)
			}
			for _, placed := range queue[i:end] {
				d.observe(placed.ID)
			}
			if end-i > 1 {
				d.insertRun(queue[i:end])
			} else {
				d.apply(op)
			}
			i = end
		}
		queue = deferred
		if !progressed || len(queue) == 0 {
			break
		}
	}
	d.pending = queue

	return d.text() != before
}

// Pending returns the number of operations waiting on missing dependencies
func (d *Doc) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// State returns every operation needed to rebuild this replica. Inserts are
// listed in document order, which always places an origin before its children.
func (d *Doc) State() Update {
	d.mu.Lock()
	defer d.mu.Unlock()

	update := Update{Ops: make([]Op, 0, len(d.elems))}
	var deletes []Op
	for _, e := range d.elems {
		update.Ops = append(update.Ops, Op{Kind: OpInsert, ID: e.id, Origin: e.origin, Value: e.value})
		if e.deleted {
			deletes = append(deletes, Op{Kind: OpDelete, ID: e.id})
		}
	}
	update.Ops = append(update.Ops, deletes...)
	return update
}

func (d *Doc) ready(op Op) bool {
	switch op.Kind {
	case OpInsert:
		if d.byID[op.ID] != nil || op.Origin.IsZero() {
			return true
		}
		return d.byID[op.Origin] != nil
	case OpDelete:
		return d.byID[op.ID] != nil
	}
	// Unknown kinds are dropped
	return true
}

func (d *Doc) observe(id ID) {
	if id.Seq > d.clock {
		d.clock = id.Seq
	}
}

// chainEnd returns the end of the run of new inserts starting at queue[i]
// where each insert originates at the one before it
func (d *Doc) chainEnd(queue []Op, i int) int {
	end := i + 1
	for end < len(queue) {
		op := queue[end]
		if op.Kind != OpInsert || op.Origin != queue[end-1].ID || op.ID == op.Origin || d.byID[op.ID] != nil {
			break
		}
		end++
	}
	return end
}

func (d *Doc) apply(op Op) {
	switch op.Kind {
	case OpInsert:
		d.insertRun([]Op{op})
	case OpDelete:
		if e := d.byID[op.ID]; e != nil {
			d.tombstone(e)
		}
	}
}

// insertRun places a chain of inserts, each originating at the one before it.
// The result matches placing them one at a time: the chain stays contiguous
// until an existing element sorts ahead of the next insert.
func (d *Doc) insertRun(ops []Op) {
	for len(ops) > 0 {
		if d.byID[ops[0].ID] != nil {
			ops = ops[1:]
			continue
		}

		pos := 0
		if !ops[0].Origin.IsZero() {
			pos = d.position(d.byID[ops[0].Origin]) + 1
		}
		// Skip concurrent siblings that sort ahead of this one
		for pos < len(d.elems) && d.elems[pos].id.after(ops[0].ID) {
			pos++
		}

		n := 1
		for n < len(ops) && d.byID[ops[n].ID] == nil &&
			(pos == len(d.elems) || !d.elems[pos].id.after(ops[n].ID)) {
			n++
		}

		run := make([]*element, n)
		for i, op := range ops[:n] {
			e := &element{id: op.ID, origin: op.Origin, value: op.Value, pos: pos + i}
			if d.deletes[op.ID] {
				e.deleted = true
			}
			run[i] = e
			d.byID[op.ID] = e
			d.textSize += len(op.Value)
		}
		d.splice(pos, run)
		ops = ops[n:]
	}
}

// splice inserts run at pos. Elements after the run keep their old pos until
// the next lookup that needs them.
func (d *Doc) splice(pos int, run []*element) {
	tail := len(d.elems)
	d.elems = append(d.elems, run...)
	copy(d.elems[pos+len(run):], d.elems[pos:tail])
	copy(d.elems[pos:], run)
	if tail > pos {
		d.staleFrom = min(d.staleFrom, pos+len(run))
	}
}

// position returns e's current slice position, reindexing shifted elements
// when e's recorded position is out of date
func (d *Doc) position(e *element) int {
	if e.pos < len(d.elems) && d.elems[e.pos] == e {
		return e.pos
	}
	for i := d.staleFrom; i < len(d.elems); i++ {
		d.elems[i].pos = i
	}
	d.staleFrom = len(d.elems)
	return e.pos
}

func (d *Doc) tombstone(e *element) {
	d.deletes[e.id] = true
	e.deleted = true
}

func (d *Doc) visibleID(pos int) ID {
	if pos < 0 {
		return ID{}
	}
	visible := 0
	var last ID
	for _, e := range d.elems {
		if e.deleted {
			continue
		}
		last = e.id
		if visible == pos {
			return e.id
		}
		visible++
	}
	return last
}
