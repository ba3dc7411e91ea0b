package microunit

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/microunit/microunit/framework/catalog"
	"github.com/microunit/microunit/framework/typereg"
)

// Fixture names a group of cases sharing setup and teardown. Both stage
// functions are optional. Setup runs once before each contiguous batch of
// the fixture's cases and teardown once after it; a setup error skips the
// batch, a teardown error aborts the run.
type Fixture struct {
	Name     string
	Setup    func() error
	Teardown func() error
}

// AddTest registers a case with no setup or teardown. Registration is
// intended to happen during process init, before RunTests.
func AddTest(fixture, name string, body func()) {
	RegisterCase(&catalog.Record{
		Fixture: fixture,
		Name:    name,
		Body:    func(any, int) { body() },
	})
}

// AddFixtureTest registers a case under fx, sharing its setup and teardown
// with the fixture's other cases.
func AddFixtureTest(fx Fixture, name string, body func()) {
	RegisterCase(&catalog.Record{
		Fixture:  fx.Name,
		Name:     name,
		Setup:    fx.Setup,
		Teardown: fx.Teardown,
		Body:     func(any, int) { body() },
	})
}

// AddParamTest registers one case per value: sibling records named
// "fixture.name/0" through "fixture.name/N-1", all sharing the same body
// and the same value slice, each invoked with its own index.
func AddParamTest[T any](fx Fixture, name string, body func(values []T, index int), values ...T) {
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = fmt.Sprint(v)
	}
	records := catalog.ExpandParameterized(
		fx.Name, name,
		fx.Setup, fx.Teardown,
		func(data any, index int) { body(data.([]T), index) },
		typeNameOf[T](), strings.Join(texts, ", "),
		values, len(values),
	)
	for _, rec := range records {
		RegisterCase(rec)
	}
}

// AddType registers comparison (and optionally dump) support for T, keyed
// by T's type name, so values of T can be used in assertions. First
// registration of a type wins.
func AddType[T any](compare func(a, b T) int, dump func(w io.Writer, v T) (int, error)) {
	info := &typereg.Info{
		Name: typeNameOf[T](),
		Compare: func(a, b any) int {
			return compare(a.(T), b.(T))
		},
	}
	if dump != nil {
		info.Dump = func(w io.Writer, v any) (int, error) {
			return dump(w, v.(T))
		}
	}
	RegisterType(info)
}

func typeNameOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
