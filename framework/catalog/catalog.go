// Package catalog is the ordered store of registered test-case records.
// Records are owned by their registrants and only linked into the catalog;
// the catalog itself has a fixed capacity chosen at construction and never
// allocates per entry, so registration is safe during process init.
package catalog

import (
	"fmt"
	"strings"

	"github.com/microunit/microunit/framework/rbmap"
)

// Mask bits recorded on a Record as a run progresses.
const (
	MaskFailed   uint8 = 1 << 0
	MaskSkipped  uint8 = 1 << 1
	MaskExecuted uint8 = 1 << 2
)

// ErrCatalogFull is returned by Insert once the fixed capacity is exhausted.
var ErrCatalogFull = fmt.Errorf("catalog: capacity exhausted")

// Param carries the parameterization slot of one expanded case record. Data
// references the whole value array shared by the sibling records; Index
// selects this record's value.
type Param struct {
	TypeName string
	DataText string
	Data     any
	Index    int
}

// Record is one registered test case. Setup and Teardown are optional and
// shared by every case of the same fixture; Body is required. Mask and
// RandKey are run-time state owned by the engine.
type Record struct {
	node rbmap.Node

	Fixture string
	Name    string

	Setup    func() error
	Teardown func() error
	Body     func(data any, index int)

	Mask    uint8
	RandKey uint64

	Param *Param
}

// FullName renders "fixture.case", with a "/index" suffix for parameterized
// records.
func (r *Record) FullName() string {
	if r.Param != nil {
		return fmt.Sprintf("%s.%s/%d", r.Fixture, r.Name, r.Param.Index)
	}
	return r.Fixture + "." + r.Name
}

func (r *Record) paramIndex() int {
	if r.Param == nil {
		return -1
	}
	return r.Param.Index
}

// Catalog is an ordered map of records keyed by (fixture, case, index).
type Catalog struct {
	arena []*Record
	tree  *rbmap.Map
}

// New returns an empty catalog that can hold at most capacity records.
func New(capacity int) *Catalog {
	c := &Catalog{arena: make([]*Record, 0, capacity)}
	c.tree = rbmap.New(c.nodeOf, c.compare)
	return c
}

func (c *Catalog) nodeOf(ref rbmap.Ref) *rbmap.Node { return &c.arena[ref].node }

func (c *Catalog) compare(a, b rbmap.Ref) int {
	ra, rb := c.arena[a], c.arena[b]
	if d := strings.Compare(ra.Fixture, rb.Fixture); d != 0 {
		return d
	}
	if d := strings.Compare(ra.Name, rb.Name); d != 0 {
		return d
	}
	return ra.paramIndex() - rb.paramIndex()
}

// Insert links rec into the catalog. A duplicate (fixture, case, index) key
// or an exhausted capacity is a registration error the caller must treat as
// fatal: registration runs exactly once per declared case.
func (c *Catalog) Insert(rec *Record) error {
	if len(c.arena) == cap(c.arena) {
		return ErrCatalogFull
	}
	c.arena = append(c.arena, rec)
	if err := c.tree.Insert(rbmap.Ref(len(c.arena) - 1)); err != nil {
		c.arena = c.arena[:len(c.arena)-1]
		return fmt.Errorf("catalog: %s: %w", rec.FullName(), err)
	}
	return nil
}

// Len returns the number of registered records.
func (c *Catalog) Len() int { return c.tree.Len() }

// Do calls fn for every record in catalog order (grouped by fixture, cases
// in lexical order, parameter indices ascending) until fn returns false.
func (c *Catalog) Do(fn func(*Record) bool) {
	for ref := c.tree.Begin(); ref != rbmap.None; ref = c.tree.Next(ref) {
		if !fn(c.arena[ref]) {
			return
		}
	}
}

// Records returns the records in catalog order. The returned slice is owned
// by the caller; the records are not copied.
func (c *Catalog) Records() []*Record {
	out := make([]*Record, 0, c.tree.Len())
	c.Do(func(r *Record) bool {
		out = append(out, r)
		return true
	})
	return out
}

// ExpandParameterized materializes the record table of a parameterized
// group: one record per value, all sharing the same stage functions and the
// same value array, each carrying its own index. count must match the length
// of the array data references.
func ExpandParameterized(
	fixture, name string,
	setup, teardown func() error,
	body func(data any, index int),
	typeName, dataText string,
	data any, count int,
) []*Record {
	records := make([]*Record, count)
	for i := range records {
		records[i] = &Record{
			Fixture:  fixture,
			Name:     name,
			Setup:    setup,
			Teardown: teardown,
			Body:     body,
			Param: &Param{
				TypeName: typeName,
				DataText: dataText,
				Data:     data,
				Index:    i,
			},
		}
	}
	return records
}
