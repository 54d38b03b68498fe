// Package kd implements a 2-dimensional kd-tree.
//
// Nodes split the plane alternately by x and by y. A node on the Even
// axis orders points by (x, y), a node on the Odd axis by (y, x).
// Points strictly less than a node on its axis are stored to the left
// of it, all others to the right.
package kd

import (
	"errors"
	"fmt"
	"strings"

	"go.lepak.sg/kdtree/tree"
	"golang.org/x/exp/constraints"
)

var (
	// ErrAlreadyConstructed is returned by a constructor called on a
	// tree that already has a root.
	ErrAlreadyConstructed = errors.New("tree already constructed")
	// ErrEmptyInput is returned by a constructor called with no points.
	ErrEmptyInput = errors.New("no points to construct from")
	// ErrDuplicatePoint is returned by a constructor given the same
	// point twice.
	ErrDuplicatePoint = errors.New("duplicate point")
	// ErrInvalidPoint is returned by a constructor given a point that
	// cannot be ordered, such as one with a NaN coordinate.
	ErrInvalidPoint = errors.New("invalid point")
	// ErrNotConstructed is returned by operations that need a root.
	ErrNotConstructed = errors.New("tree not constructed")
	// ErrInvalidAxis means a node carries an axis other than Even or Odd.
	// It signals a bug in this package, not a caller error.
	ErrInvalidAxis = errors.New("invalid axis")
)

// Node is a node of a Tree. Nodes are read-only to clients.
type Node[T constraints.Ordered] struct {
	point       Point[T]
	axis        Axis
	left, right *Node[T]
}

func nodeOf[T constraints.Ordered](p Point[T], a Axis) *Node[T] {
	return &Node[T]{
		point: p,
		axis:  a,
	}
}

func (n *Node[T]) Point() Point[T] { return n.point }
func (n *Node[T]) Axis() Axis      { return n.axis }

// Left returns the left child, or nil.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right returns the right child, or nil.
func (n *Node[T]) Right() *Node[T] { return n.right }

func (n *Node[T]) String() string {
	return fmt.Sprintf("Node [%v, %v]", n.point, n.axis)
}

// Tree is a 2-dimensional kd-tree. It is safe for concurrent reads
// (Get, Query, iterating, etc) but not for concurrent reads and writes
// (constructing, inserting).
//
// The zero Tree may be used immediately. A Tree is built exactly once
// by one of the Construct methods; afterwards points can only be added
// with Insert. Removal and rebalancing are not supported.
//
// Invariants:
//  - At any node N on axis A, every point in the subtree rooted at
//    N.Left has an A-key less than N's A-key
//  - At any node N on axis A, every point in the subtree rooted at
//    N.Right has an A-key greater than or equal to N's A-key
//  - Children are on the opposite axis of their parent, the root is Even
type Tree[T constraints.Ordered] struct {
	root     *Node[T]
	observer Observer[T]
}

// Option configures a Tree created with New.
type Option[T constraints.Ordered] func(*Tree[T])

// WithObserver makes the tree report every node attachment to o.
func WithObserver[T constraints.Ordered](o Observer[T]) Option[T] {
	return func(t *Tree[T]) {
		t.observer = o
	}
}

// New creates an empty Tree.
func New[T constraints.Ordered](opts ...Option[T]) *Tree[T] {
	t := &Tree[T]{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the root node, or nil if the tree is not constructed.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Insert adds p to a constructed tree and returns the new leaf.
// A point equal to one already stored is added again, to the right
// of the stored one.
func (t *Tree[T]) Insert(p Point[T]) (*Node[T], error) {
	if t.root == nil {
		return nil, fmt.Errorf("insert %v: %w", p, ErrNotConstructed)
	}
	return t.insert(t.root, p), nil
}

// insert descends from n to the leaf position for p, attaches a new
// node there and returns it.
func (t *Tree[T]) insert(n *Node[T], p Point[T]) *Node[T] {
	for {
		switch p.Compare(n.point, n.axis) {
		case tree.Less:
			if n.left == nil {
				n.left = nodeOf(p, n.axis.Next())
				t.attached(n, n.left, tree.Less)
				return n.left
			}
			n = n.left
		case tree.Equal, tree.Greater:
			if n.right == nil {
				n.right = nodeOf(p, n.axis.Next())
				t.attached(n, n.right, tree.Greater)
				return n.right
			}
			n = n.right
		default:
			panic("unreachable")
		}
	}
}

// setRoot installs the root of a freshly constructed tree.
func (t *Tree[T]) setRoot(p Point[T]) *Node[T] {
	t.root = nodeOf(p, Even)
	t.attached(nil, t.root, tree.Equal)
	return t.root
}

// Get finds the node holding p.
func (t *Tree[T]) Get(p Point[T]) (*Node[T], bool) {
	n := t.root

	for n != nil {
		if n.point == p {
			return n, true
		}
		switch p.Compare(n.point, n.axis) {
		case tree.Less:
			n = n.left
		case tree.Greater, tree.Equal:
			n = n.right
		default:
			panic("unreachable")
		}
	}

	return nil, false
}

// Contains reports whether p is stored in the tree.
func (t *Tree[T]) Contains(p Point[T]) bool {
	_, ok := t.Get(p)
	return ok
}

// Query returns every stored point inside [x1, x2] × [y1, y2], bounds
// included, in no particular order.
func (t *Tree[T]) Query(x1, x2, y1, y2 T) ([]Point[T], error) {
	return t.QueryRect(Rect[T]{X1: x1, X2: x2, Y1: y1, Y2: y2})
}

// QueryRect is Query taking the window as a Rect.
func (t *Tree[T]) QueryRect(r Rect[T]) ([]Point[T], error) {
	if t.root == nil {
		return nil, fmt.Errorf("query %v: %w", r, ErrNotConstructed)
	}

	var result []Point[T]
	stack := []*Node[T]{t.root}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// lo and hi bound the window on the node's axis,
		// c is the node's coordinate on that axis.
		var lo, hi, c T
		switch n.axis {
		case Even:
			lo, hi, c = r.X1, r.X2, n.point.X
		case Odd:
			lo, hi, c = r.Y1, r.Y2, n.point.Y
		default:
			return nil, fmt.Errorf("query %v at %v: %w", r, n, ErrInvalidAxis)
		}

		if lo > c {
			// window is entirely above the split
			if n.right != nil {
				stack = append(stack, n.right)
			}
		} else if hi < c {
			// window is entirely below the split
			if n.left != nil {
				stack = append(stack, n.left)
			}
		} else {
			if n.point.In(r) {
				result = append(result, n.point)
			}
			if n.left != nil {
				stack = append(stack, n.left)
			}
			if n.right != nil {
				stack = append(stack, n.right)
			}
		}
	}

	return result, nil
}

// Size returns the number of nodes in the tree, 0 if it is not
// constructed.
func (t *Tree[T]) Size() int {
	size := 0
	for i := t.Iterator(); i.Next(); {
		size++
	}
	return size
}

// Height returns the number of nodes on the longest path from the
// root to a leaf, 0 if the tree is not constructed.
func (t *Tree[T]) Height() int {
	height := 0
	var stack []depthFrame[T]
	if t.root != nil {
		stack = append(stack, depthFrame[T]{t.root, 1})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > height {
			height = f.depth
		}
		if f.n.left != nil {
			stack = append(stack, depthFrame[T]{f.n.left, f.depth + 1})
		}
		if f.n.right != nil {
			stack = append(stack, depthFrame[T]{f.n.right, f.depth + 1})
		}
	}

	return height
}

type depthFrame[T constraints.Ordered] struct {
	n     *Node[T]
	depth int
}

// Levels returns the points of the tree level by level, starting with
// the root. Points on one level are ordered left to right.
func (t *Tree[T]) Levels() [][]Point[T] {
	var levels [][]Point[T]

	level := []*Node[T]{}
	if t.root != nil {
		level = append(level, t.root)
	}

	for len(level) > 0 {
		points := make([]Point[T], len(level))
		var next []*Node[T]
		for i, n := range level {
			points[i] = n.point
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		levels = append(levels, points)
		level = next
	}

	return levels
}

// String returns a string representation of the tree.
// A tree with height 3 could look like this:
//	(5, 4)
//	├─L─(2, 3)
//	│   └─R─(4, 7)
//	└─R─(7, 2)
//	    ├─L─(8, 1)
//	    └─R─(9, 6)
func (t *Tree[T]) String() string {
	var sb strings.Builder

	if t.root == nil {
		return ""
	}

	printvisit(&sb, t.root, "", "", true, false)

	return sb.String()
}

const (
	treeMidBranch    = "├─"
	treeLastBranch   = "└─"
	treeLeftBranch   = "L─"
	treeRightBranch  = "R─"
	treeMidContinue  = "│   "
	treeLastContinue = "    "
)

func printvisit[T constraints.Ordered](
	sb *strings.Builder, n *Node[T], prefix, branch string, initial, isMid bool) {
	if !initial {
		sb.WriteString(prefix)
		if isMid {
			prefix += treeMidContinue
			sb.WriteString(treeMidBranch)
		} else {
			prefix += treeLastContinue
			sb.WriteString(treeLastBranch)
		}
		sb.WriteString(branch)
	}
	sb.WriteString(n.point.String())
	sb.WriteRune('\n')

	if n.left != nil {
		printvisit(sb, n.left, prefix, treeLeftBranch, false, n.right != nil)
	}

	if n.right != nil {
		printvisit(sb, n.right, prefix, treeRightBranch, false, false)
	}
}
