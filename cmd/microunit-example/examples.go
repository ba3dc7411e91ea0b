package main

import (
	"fmt"
	"io"

	"github.com/microunit/microunit"
)

type point struct{ X, Y int }

func comparePoints(a, b point) int {
	if d := a.X - b.X; d != 0 {
		return d
	}
	return a.Y - b.Y
}

func dumpPoint(w io.Writer, p point) (int, error) {
	return fmt.Fprintf(w, "(%d, %d)", p.X, p.Y)
}

var stackState []int

func init() {
	microunit.AddType[point](comparePoints, dumpPoint)

	microunit.AddTest("arith", "addition", func() {
		microunit.AssertEqual(2+2, 4)
	})
	microunit.AddTest("arith", "float_accumulation", func() {
		sum := 0.0
		for i := 0; i < 10; i++ {
			sum += 0.1
		}
		microunit.AssertEqual(sum, 1.0)
	})

	microunit.AddTest("geometry", "point_ordering", func() {
		microunit.AssertEqual(point{1, 2}, point{1, 2})
		microunit.AssertLess(point{1, 2}, point{2, 0})
	})

	stack := microunit.Fixture{
		Name: "stack",
		Setup: func() error {
			stackState = stackState[:0]
			return nil
		},
		Teardown: func() error {
			stackState = nil
			return nil
		},
	}
	microunit.AddFixtureTest(stack, "push_pop", func() {
		stackState = append(stackState, 7)
		microunit.AssertEqual(len(stackState), 1)
		top := stackState[len(stackState)-1]
		stackState = stackState[:len(stackState)-1]
		microunit.AssertEqual(top, 7)
	})
	microunit.AddParamTest(stack, "push_many", func(values []int, index int) {
		for _, v := range values[:index+1] {
			stackState = append(stackState, v)
		}
		microunit.AssertEqual(len(stackState), index+1)
	}, 3, 5, 8)
}
