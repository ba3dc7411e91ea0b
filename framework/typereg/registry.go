// Package typereg holds comparison and dump functions for the value types
// used in assertions: a registry for user-defined types plus hard-wired
// support for the primitive built-ins, and the dispatcher that resolves a
// type name to its functions and formats failure diagnostics.
package typereg

import (
	"fmt"
	"io"
	"strings"

	"github.com/microunit/microunit/framework/rbmap"
)

// CompareFunc orders two values of the registered type: negative, zero, or
// positive as a sorts before, equal to, or after b.
type CompareFunc func(a, b any) int

// DumpFunc renders a value of the registered type for failure diagnostics.
type DumpFunc func(w io.Writer, v any) (int, error)

// ErrRegistryFull is returned by Register once the fixed capacity is
// exhausted.
var ErrRegistryFull = fmt.Errorf("typereg: capacity exhausted")

// ErrUnknownType is returned when a type name resolves to neither a
// registered entry nor a built-in primitive.
var ErrUnknownType = fmt.Errorf("typereg: unknown type")

// Info describes one registered type. The registrant owns the Info; the
// registry only links it.
type Info struct {
	node rbmap.Node

	Name    string
	Compare CompareFunc
	Dump    DumpFunc
}

// Registry is an ordered map of type entries keyed by type name. Built-in
// primitives are handled by the dispatcher directly and never stored here.
type Registry struct {
	arena []*Info
	tree  *rbmap.Map
}

// NewRegistry returns an empty registry holding at most capacity entries.
func NewRegistry(capacity int) *Registry {
	r := &Registry{arena: make([]*Info, 0, capacity)}
	r.tree = rbmap.New(r.nodeOf, r.compare)
	return r
}

func (r *Registry) nodeOf(ref rbmap.Ref) *rbmap.Node { return &r.arena[ref].node }

func (r *Registry) compare(a, b rbmap.Ref) int {
	return strings.Compare(r.arena[a].Name, r.arena[b].Name)
}

// Register links info into the registry. Registration is idempotent: the
// first registration of a name wins and later ones are silently ignored, so
// "register once" helpers may be called from any number of places.
func (r *Registry) Register(info *Info) error {
	if _, ok := r.Resolve(info.Name); ok {
		return nil
	}
	if len(r.arena) == cap(r.arena) {
		return ErrRegistryFull
	}
	r.arena = append(r.arena, info)
	if err := r.tree.Insert(rbmap.Ref(len(r.arena) - 1)); err != nil {
		// Unreachable: Resolve above already rejected duplicates.
		r.arena = r.arena[:len(r.arena)-1]
		return err
	}
	return nil
}

// Resolve returns the entry registered under name, if any.
func (r *Registry) Resolve(name string) (*Info, bool) {
	ref := r.tree.Find(func(cur rbmap.Ref) int {
		return strings.Compare(name, r.arena[cur].Name)
	})
	if ref == rbmap.None {
		return nil, false
	}
	return r.arena[ref], true
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return r.tree.Len() }
