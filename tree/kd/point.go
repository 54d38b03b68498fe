package kd

import (
	"fmt"

	"go.lepak.sg/kdtree/tree"
	"golang.org/x/exp/constraints"
)

// Point is a position in the plane. Points are plain values: two points
// with the same coordinates are the same point.
type Point[T constraints.Ordered] struct {
	X, Y T
}

// Pt is shorthand for Point[T]{X: x, Y: y}.
func Pt[T constraints.Ordered](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

func (p Point[T]) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

// Compare orders p relative to q by their keys on axis a.
// On Even the key is (X, Y), on Odd it is (Y, X).
func (p Point[T]) Compare(q Point[T], a Axis) tree.Order {
	switch a {
	case Even:
		return tree.Compare(p.X, q.X).Then(tree.Compare(p.Y, q.Y))
	case Odd:
		return tree.Compare(p.Y, q.Y).Then(tree.Compare(p.X, q.X))
	default:
		panic(fmt.Errorf("%w: %d", ErrInvalidAxis, a))
	}
}

// In reports whether p lies inside r, bounds included.
func (p Point[T]) In(r Rect[T]) bool {
	return r.X1 <= p.X && p.X <= r.X2 && r.Y1 <= p.Y && p.Y <= r.Y2
}

// Rect is the closed window [X1, X2] × [Y1, Y2].
// A Rect with X1 > X2 or Y1 > Y2 contains nothing.
type Rect[T constraints.Ordered] struct {
	X1, X2, Y1, Y2 T
}

func (r Rect[T]) String() string {
	return fmt.Sprintf("[%v, %v]×[%v, %v]", r.X1, r.X2, r.Y1, r.Y2)
}

// Axis is the discriminant of a node. It alternates with depth,
// starting from Even at the root.
type Axis int

const (
	Even Axis = iota
	Odd
)

// Next returns the axis used by the children of a node on a.
func (a Axis) Next() Axis {
	switch a {
	case Even:
		return Odd
	case Odd:
		return Even
	default:
		panic(fmt.Errorf("%w: %d", ErrInvalidAxis, a))
	}
}

func (a Axis) String() string {
	switch a {
	case Even:
		return "even"
	case Odd:
		return "odd"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}
