package kd

import (
	"golang.org/x/exp/constraints"
)

// PreOrder is an iterator over the points of a tree, visiting each
// node before its left subtree and its left subtree before its right.
// It keeps an explicit stack of nodes still to visit.
//
// Next must always be called before Item, even for
// the first round of iteration.
// If Next returns false, Item must not be called.
//
// The usual usage looks like this:
//	i := tr.Iterator()
//	for i.Next() {
//		p := i.Item()
//		... do stuff with p, or break ...
//	}
type PreOrder[T constraints.Ordered] struct {
	stack []*Node[T]
	cur   *Node[T]
}

// Iterator returns a pre-order iterator over the tree.
// The tree must not be modified while the iterator is in use.
func (t *Tree[T]) Iterator() *PreOrder[T] {
	i := &PreOrder[T]{}
	if t.root != nil {
		i.stack = append(i.stack, t.root)
	}
	return i
}

func (i *PreOrder[T]) Next() bool {
	if len(i.stack) == 0 {
		i.cur = nil
		return false
	}

	i.cur = i.stack[len(i.stack)-1]
	i.stack = i.stack[:len(i.stack)-1]

	// right first so that left is popped first
	if i.cur.right != nil {
		i.stack = append(i.stack, i.cur.right)
	}
	if i.cur.left != nil {
		i.stack = append(i.stack, i.cur.left)
	}

	return true
}

func (i *PreOrder[T]) Item() Point[T] {
	return i.cur.point
}

// Node returns the node of the current item.
func (i *PreOrder[T]) Node() *Node[T] {
	return i.cur
}

// Points returns all points in the tree in pre-order.
func (t *Tree[T]) Points() []Point[T] {
	var points []Point[T]
	for i := t.Iterator(); i.Next(); {
		points = append(points, i.Item())
	}
	return points
}
