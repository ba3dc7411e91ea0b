// Package rbmap provides an ordered map whose structural links are embedded
// in the records being stored. Records live in storage owned by the caller
// (typically a fixed-capacity arena) and are addressed by small integer
// references, so linking an entry into the map never allocates. This is the
// substrate for both the test-case catalog and the custom-type registry.
package rbmap

import "errors"

// Ref identifies a record within the arena that owns it.
type Ref int32

// None is the null reference.
const None Ref = -1

const (
	red   uint8 = 0
	black uint8 = 1
)

// ErrDuplicate is returned by Insert when an entry with an equal key is
// already linked into the map.
var ErrDuplicate = errors.New("rbmap: duplicate key")

// Node holds the structural links for one entry. Embed it in the record
// being stored; its fields are managed entirely by Map.
type Node struct {
	parent Ref
	left   Ref
	right  Ref
	color  uint8
}

// NodeFunc resolves a reference to the Node embedded in the record.
type NodeFunc func(Ref) *Node

// CompareFunc orders two stored records by reference. It must induce a
// strict weak ordering over all linked records.
type CompareFunc func(a, b Ref) int

// Map is a red-black tree over records held in external storage.
type Map struct {
	root Ref
	size int
	node NodeFunc
	cmp  CompareFunc
}

// New returns an empty map that resolves references through node and orders
// entries through cmp.
func New(node NodeFunc, cmp CompareFunc) *Map {
	return &Map{root: None, node: node, cmp: cmp}
}

// Len returns the number of linked entries.
func (m *Map) Len() int { return m.size }

// Insert links ref into the map. The referenced record's Node fields are
// overwritten. O(log n), no allocation.
func (m *Map) Insert(ref Ref) error {
	n := m.node(ref)
	*n = Node{parent: None, left: None, right: None, color: red}

	parent := None
	cur := m.root
	var less bool
	for cur != None {
		c := m.cmp(ref, cur)
		if c == 0 {
			return ErrDuplicate
		}
		parent = cur
		less = c < 0
		if less {
			cur = m.node(cur).left
		} else {
			cur = m.node(cur).right
		}
	}

	n.parent = parent
	switch {
	case parent == None:
		m.root = ref
	case less:
		m.node(parent).left = ref
	default:
		m.node(parent).right = ref
	}

	m.fixInsert(ref)
	m.size++
	return nil
}

// Find locates the entry for which pred returns zero. pred receives a
// candidate entry and must return a negative value when the sought key sorts
// before it, positive when after. Returns None when no entry matches.
func (m *Map) Find(pred func(Ref) int) Ref {
	cur := m.root
	for cur != None {
		c := pred(cur)
		if c == 0 {
			return cur
		}
		if c < 0 {
			cur = m.node(cur).left
		} else {
			cur = m.node(cur).right
		}
	}
	return None
}

// Begin returns the first entry in key order, or None when the map is empty.
func (m *Map) Begin() Ref {
	if m.root == None {
		return None
	}
	return m.leftmost(m.root)
}

// Next returns the in-order successor of ref, or None at the end.
func (m *Map) Next(ref Ref) Ref {
	n := m.node(ref)
	if n.right != None {
		return m.leftmost(n.right)
	}
	parent := n.parent
	for parent != None && ref == m.node(parent).right {
		ref = parent
		parent = m.node(parent).parent
	}
	return parent
}

func (m *Map) leftmost(ref Ref) Ref {
	for m.node(ref).left != None {
		ref = m.node(ref).left
	}
	return ref
}

func (m *Map) fixInsert(ref Ref) {
	for {
		parent := m.node(ref).parent
		if parent == None || m.node(parent).color == black {
			break
		}
		// A red parent always has a grandparent: the root is black.
		grand := m.node(parent).parent
		if parent == m.node(grand).left {
			uncle := m.node(grand).right
			if uncle != None && m.node(uncle).color == red {
				m.node(parent).color = black
				m.node(uncle).color = black
				m.node(grand).color = red
				ref = grand
				continue
			}
			if ref == m.node(parent).right {
				ref = parent
				m.rotateLeft(ref)
				parent = m.node(ref).parent
			}
			m.node(parent).color = black
			m.node(grand).color = red
			m.rotateRight(grand)
		} else {
			uncle := m.node(grand).left
			if uncle != None && m.node(uncle).color == red {
				m.node(parent).color = black
				m.node(uncle).color = black
				m.node(grand).color = red
				ref = grand
				continue
			}
			if ref == m.node(parent).left {
				ref = parent
				m.rotateRight(ref)
				parent = m.node(ref).parent
			}
			m.node(parent).color = black
			m.node(grand).color = red
			m.rotateLeft(grand)
		}
	}
	m.node(m.root).color = black
}

func (m *Map) rotateLeft(x Ref) {
	y := m.node(x).right
	m.node(x).right = m.node(y).left
	if m.node(y).left != None {
		m.node(m.node(y).left).parent = x
	}
	m.node(y).parent = m.node(x).parent
	m.replaceChild(x, y)
	m.node(y).left = x
	m.node(x).parent = y
}

func (m *Map) rotateRight(x Ref) {
	y := m.node(x).left
	m.node(x).left = m.node(y).right
	if m.node(y).right != None {
		m.node(m.node(y).right).parent = x
	}
	m.node(y).parent = m.node(x).parent
	m.replaceChild(x, y)
	m.node(y).right = x
	m.node(x).parent = y
}

func (m *Map) replaceChild(old, new Ref) {
	parent := m.node(old).parent
	switch {
	case parent == None:
		m.root = new
	case m.node(parent).left == old:
		m.node(parent).left = new
	default:
		m.node(parent).right = new
	}
}
