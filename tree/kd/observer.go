package kd

import (
	"fmt"

	"go.lepak.sg/kdtree/tree"
	"golang.org/x/exp/constraints"
)

// Direction tells on which side of its parent, in the plane,
// a node was attached.
type Direction int

const (
	// Infinite marks the root, which splits the whole plane.
	Infinite Direction = iota
	// Left and Right are the sides of a parent on the Even axis.
	Left
	Right
	// Down and Up are the sides of a parent on the Odd axis.
	Down
	Up
	// Both is reserved for decorations spanning both sides of a split.
	// Trees never emit it.
	Both
)

func (d Direction) String() string {
	switch d {
	case Infinite:
		return "infinite"
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	case Up:
		return "up"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Event describes one node attachment.
// Parent is the zero Point when Direction is Infinite.
type Event[T constraints.Ordered] struct {
	Direction Direction
	Point     Point[T]
	Parent    Point[T]
	// Axis of the attached node.
	Axis Axis
}

// Observer receives an Event for every node attached to a Tree,
// in the order the nodes are attached. Attached runs synchronously
// inside the tree operation and must not call back into the tree.
type Observer[T constraints.Ordered] interface {
	Attached(Event[T])
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[T constraints.Ordered] func(Event[T])

func (f ObserverFunc[T]) Attached(e Event[T]) {
	f(e)
}

// attached notifies the observer that child was attached to parent on
// the side given by side (Less for left, Greater for right).
// parent is nil for the root.
func (t *Tree[T]) attached(parent, child *Node[T], side tree.Order) {
	if t.observer == nil {
		return
	}

	e := Event[T]{
		Direction: Infinite,
		Point:     child.point,
		Axis:      child.axis,
	}

	if parent != nil {
		e.Parent = parent.point
		e.Direction = direction(parent.axis, side)
	}

	t.observer.Attached(e)
}

func direction(a Axis, side tree.Order) Direction {
	switch {
	case a == Even && side == tree.Less:
		return Left
	case a == Even:
		return Right
	case a == Odd && side == tree.Less:
		return Down
	case a == Odd:
		return Up
	default:
		panic("unreachable")
	}
}
