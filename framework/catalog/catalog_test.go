package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microunit/microunit/framework/rbmap"
)

func noopBody(any, int) {}

func makeRecord(fixture, name string) *Record {
	return &Record{Fixture: fixture, Name: name, Body: noopBody}
}

func TestInsertOrdersByFixtureThenName(t *testing.T) {
	c := New(16)
	for _, r := range []*Record{
		makeRecord("zeta", "a"),
		makeRecord("alpha", "second"),
		makeRecord("mid", "x"),
		makeRecord("alpha", "first"),
	} {
		require.NoError(t, c.Insert(r))
	}

	var names []string
	c.Do(func(r *Record) bool {
		names = append(names, r.FullName())
		return true
	})
	assert.Equal(t, []string{"alpha.first", "alpha.second", "mid.x", "zeta.a"}, names)
}

func TestInsertDuplicateKey(t *testing.T) {
	c := New(16)
	require.NoError(t, c.Insert(makeRecord("f", "case")))
	err := c.Insert(makeRecord("f", "case"))
	require.Error(t, err)
	assert.ErrorIs(t, err, rbmap.ErrDuplicate)
	assert.Contains(t, err.Error(), "f.case")
	assert.Equal(t, 1, c.Len())
}

func TestInsertCapacity(t *testing.T) {
	c := New(2)
	require.NoError(t, c.Insert(makeRecord("f", "a")))
	require.NoError(t, c.Insert(makeRecord("f", "b")))
	assert.ErrorIs(t, c.Insert(makeRecord("f", "c")), ErrCatalogFull)
	assert.Equal(t, 2, c.Len())
}

func TestFullName(t *testing.T) {
	plain := makeRecord("fix", "case")
	assert.Equal(t, "fix.case", plain.FullName())

	param := makeRecord("fix", "case")
	param.Param = &Param{Index: 2}
	assert.Equal(t, "fix.case/2", param.FullName())
}

func TestExpandParameterized(t *testing.T) {
	values := []int{3, 5, 8}
	records := ExpandParameterized(
		"fix", "case", nil, nil, noopBody,
		"int", "3, 5, 8", values, len(values),
	)
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, "fix", rec.Fixture)
		assert.Equal(t, "case", rec.Name)
		require.NotNil(t, rec.Param)
		assert.Equal(t, i, rec.Param.Index)
		// All siblings share the one value slice.
		assert.Equal(t, values, rec.Param.Data)
		assert.Equal(t, "int", rec.Param.TypeName)
	}
}

func TestParameterizedRecordsOrderByIndex(t *testing.T) {
	c := New(16)
	records := ExpandParameterized(
		"fix", "case", nil, nil, noopBody,
		"int", "1, 2, 3", []int{1, 2, 3}, 3,
	)
	// Insert out of order; iteration must come back index-ascending.
	require.NoError(t, c.Insert(records[2]))
	require.NoError(t, c.Insert(records[0]))
	require.NoError(t, c.Insert(records[1]))

	var names []string
	c.Do(func(r *Record) bool {
		names = append(names, r.FullName())
		return true
	})
	assert.Equal(t, []string{"fix.case/0", "fix.case/1", "fix.case/2"}, names)
}

func TestRecordsReturnsStableSequence(t *testing.T) {
	c := New(16)
	require.NoError(t, c.Insert(makeRecord("b", "x")))
	require.NoError(t, c.Insert(makeRecord("a", "y")))

	records := c.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "a.y", records[0].FullName())
	assert.Equal(t, "b.x", records[1].FullName())
}
