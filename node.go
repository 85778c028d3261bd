package arbor

import (
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// --- Identity ---

// Trees may be created on different goroutines even though each tree is
// used from one.
var treeIDCounter atomic.Uint32

func nextTreeID() uint32 {
	return treeIDCounter.Add(1)
}

// NodeID is a stable handle to a node. It stays valid across unrelated
// mutations and is never reused while the node is live: freeing a slot bumps
// its generation, so handles from a removed node or a cleared tree are
// detected as stale. The zero NodeID refers to no node.
type NodeID struct {
	tree  uint32
	index uint32
	gen   uint32
}

// IsZero reports whether id refers to no node.
func (id NodeID) IsZero() bool {
	return id.tree == 0
}

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(none)"
	}
	return fmt.Sprintf("node(%d.%d@%d)", id.tree, id.index, id.gen)
}

// --- Storage ---

type nodeSlot struct {
	gen  uint32
	live bool

	name     string
	style    Style
	layout   Layout
	cache    layoutCache
	parent   NodeID
	children []NodeID

	// Render/hit-test translation. Neither participates in layout caching.
	offset Vec2
	scroll Vec2

	context    any
	entityID   uint32
	recomputes int
}

// treeObserver is notified when nodes leave the tree.
type treeObserver interface {
	nodeRemoved(id NodeID)
	treeCleared()
}

// Tree is the node store: stable-keyed nodes holding style, cached layout and
// adjacency. Child order is paint order and hit-test precedence. The root is
// created with the tree and can never be detached.
//
// Callers must not introduce cycles; AddChild only checks for them in debug
// mode.
type Tree struct {
	id     uint32
	slots  []nodeSlot
	free   []uint32
	root   NodeID
	engine layoutEngine

	observers []treeObserver
	log       *log.Logger
	debug     bool
}

// NewTree creates a tree holding a single root node with DefaultStyle.
func NewTree() *Tree {
	t := &Tree{id: nextTreeID(), log: defaultLogger()}
	t.engine.init(t)
	t.root = t.AddNode(DefaultStyle())
	t.slot(t.root).name = "root"
	return t
}

// Root returns the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of live nodes, including the root.
func (t *Tree) Len() int {
	return len(t.slots) - len(t.free)
}

// AddNode creates a detached node with the given style.
func (t *Tree) AddNode(style Style) NodeID {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, nodeSlot{})
	}
	s := &t.slots[idx]
	s.gen++
	s.live = true
	s.style = style
	return NodeID{tree: t.id, index: idx, gen: s.gen}
}

// AddChild appends child to parent's children and marks parent dirty.
// Panics if child already has a parent, is the root, or is parent itself.
func (t *Tree) AddChild(parent, child NodeID) {
	ps := t.slot(parent)
	cs := t.slot(child)
	if child == t.root {
		panic("arbor: the root cannot be a child")
	}
	if parent == child {
		panic("arbor: node cannot be its own child")
	}
	if !cs.parent.IsZero() {
		panic(fmt.Sprintf("arbor: %v already has a parent", child))
	}
	if t.debug && t.isAncestor(child, parent) {
		panic("arbor: adding child would create a cycle")
	}
	cs.parent = parent
	ps.children = append(ps.children, child)
	t.MarkDirty(parent)
	if t.debug {
		t.debugCheckTreeDepth(child)
		t.debugCheckChildCount(parent)
	}
}

// Style returns a copy of the node's style.
func (t *Tree) Style(id NodeID) Style {
	return t.slot(id).style
}

// SetStyle replaces the node's style and marks it dirty.
func (t *Tree) SetStyle(id NodeID, style Style) {
	t.slot(id).style = style
	t.MarkDirty(id)
}

// UpdateStyle applies fn to the node's style and marks it dirty.
func (t *Tree) UpdateStyle(id NodeID, fn func(*Style)) {
	fn(&t.slot(id).style)
	t.MarkDirty(id)
}

// Children returns the ordered child list. The returned slice MUST NOT be
// mutated by the caller.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.slot(id).children
}

// Parent returns the node's parent, or false for the root and detached nodes.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.slot(id).parent
	return p, !p.IsZero()
}

// Contains reports whether id refers to a live node of this tree. Unlike
// every other accessor it never panics.
func (t *Tree) Contains(id NodeID) bool {
	if id.tree != t.id || int(id.index) >= len(t.slots) {
		return false
	}
	s := &t.slots[id.index]
	return s.live && s.gen == id.gen
}

// SetName attaches a debug name to the node.
func (t *Tree) SetName(id NodeID, name string) {
	t.slot(id).name = name
}

// Name returns the node's debug name.
func (t *Tree) Name(id NodeID) string {
	return t.slot(id).name
}

// SetContext attaches an application value that the measure hook and
// handlers can read back with Context.
func (t *Tree) SetContext(id NodeID, ctx any) {
	t.slot(id).context = ctx
}

// Context returns the value attached with SetContext.
func (t *Tree) Context(id NodeID) any {
	return t.slot(id).context
}

// SetEntityID links the node to an ECS entity for the EntityStore bridge.
func (t *Tree) SetEntityID(id NodeID, entity uint32) {
	t.slot(id).entityID = entity
}

// EntityID returns the ECS entity linked to the node, or 0.
func (t *Tree) EntityID(id NodeID) uint32 {
	return t.slot(id).entityID
}

// MarkDirty invalidates the node's layout cache and every ancestor's up to the
// root, because container sizes can depend on content. The walk stops early at
// a node whose cache is already invalid. Siblings keep their caches.
func (t *Tree) MarkDirty(id NodeID) {
	for cur := id; !cur.IsZero(); {
		s := t.slot(cur)
		if !s.cache.clear() {
			return
		}
		cur = s.parent
	}
}

// Remove detaches id from its parent and frees it and its whole subtree.
// Handles to the removed nodes become stale. Panics on the root.
func (t *Tree) Remove(id NodeID) {
	if id == t.root {
		panic("arbor: cannot remove the root")
	}
	s := t.slot(id)
	if p := s.parent; !p.IsZero() {
		ps := t.slot(p)
		for i, c := range ps.children {
			if c == id {
				copy(ps.children[i:], ps.children[i+1:])
				ps.children[len(ps.children)-1] = NodeID{}
				ps.children = ps.children[:len(ps.children)-1]
				break
			}
		}
		t.MarkDirty(p)
	}

	removed := t.collectSubtree(id, nil)
	for _, r := range removed {
		for _, o := range t.observers {
			o.nodeRemoved(r)
		}
	}
	for _, r := range removed {
		t.freeSlot(r.index)
	}
}

// Clear frees every node and recreates the root. All previously issued
// handles, including the old root, become stale.
func (t *Tree) Clear() {
	for i := range t.slots {
		if t.slots[i].live {
			t.slots[i].gen++
			t.slots[i].live = false
		}
		t.slots[i] = nodeSlot{gen: t.slots[i].gen}
	}
	t.free = t.free[:0]
	for i := len(t.slots) - 1; i >= 0; i-- {
		t.free = append(t.free, uint32(i))
	}
	for _, o := range t.observers {
		o.treeCleared()
	}
	t.engine.stats = LayoutStats{}
	t.root = t.AddNode(DefaultStyle())
	t.slot(t.root).name = "root"
}

// Walk visits id and its descendants depth-first in child order. Returning
// false from fn skips that node's children.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.slot(id).children {
		t.Walk(c, fn)
	}
}

// --- Helpers ---

// slot resolves a handle, panicking on stale or foreign ids. Continuing with
// such a handle could silently corrupt an unrelated node in a reused slot.
func (t *Tree) slot(id NodeID) *nodeSlot {
	if id.IsZero() {
		panic("arbor: zero NodeID")
	}
	if id.tree != t.id {
		panic(fmt.Sprintf("arbor: %v belongs to another tree", id))
	}
	if int(id.index) >= len(t.slots) {
		panic(fmt.Sprintf("arbor: %v out of range", id))
	}
	s := &t.slots[id.index]
	if !s.live || s.gen != id.gen {
		panic(fmt.Sprintf("arbor: stale %v", id))
	}
	return s
}

func (t *Tree) freeSlot(idx uint32) {
	gen := t.slots[idx].gen
	t.slots[idx] = nodeSlot{gen: gen + 1}
	t.free = append(t.free, idx)
}

func (t *Tree) collectSubtree(id NodeID, buf []NodeID) []NodeID {
	buf = append(buf, id)
	for _, c := range t.slot(id).children {
		buf = t.collectSubtree(c, buf)
	}
	return buf
}

// isAncestor reports whether candidate is node or one of its ancestors.
func (t *Tree) isAncestor(candidate, node NodeID) bool {
	for p := node; !p.IsZero(); p = t.slot(p).parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (t *Tree) depth(id NodeID) int {
	d := 0
	for p := id; !p.IsZero(); p = t.slot(p).parent {
		d++
	}
	return d
}

func (t *Tree) addObserver(o treeObserver) {
	t.observers = append(t.observers, o)
}
