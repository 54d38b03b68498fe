package kd

import (
	"fmt"

	"go.lepak.sg/kdtree/tree"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// ConstructBalanced builds a tree of minimal height from points.
// At every level the lower median on the level's axis becomes the node,
// and the remaining points are split into the two halves below it.
// Both sort orders are kept as index lists into points, so each split
// is a slice of one list and a single scan of the other.
//
// points is not modified. It must be non-empty and free of duplicates.
func (t *Tree[T]) ConstructBalanced(points []Point[T]) error {
	if err := t.checkConstruct(points); err != nil {
		return err
	}

	xi := make([]int, len(points))
	for i := range xi {
		xi[i] = i
	}
	yi := slices.Clone(xi)

	slices.SortFunc(xi, func(a, b int) bool {
		return points[a].Compare(points[b], Even) == tree.Less
	})
	slices.SortFunc(yi, func(a, b int) bool {
		return points[a].Compare(points[b], Odd) == tree.Less
	})

	for i := 1; i < len(xi); i++ {
		if points[xi[i-1]] == points[xi[i]] {
			return fmt.Errorf("%w: %v", ErrDuplicatePoint, points[xi[i]])
		}
	}

	t.build(indexPartition[T]{points: points, xi: xi, yi: yi})

	return nil
}

// ConstructBalancedFilter builds the same tree as ConstructBalanced.
// Instead of index lists it keeps two sorted point lists and derives
// each half of the other axis' list by filtering it against the half
// just cut from the current axis' list. This costs a linear membership
// test per point per level, so it is much slower on large inputs.
//
// points is not modified. It must be non-empty and free of duplicates.
func (t *Tree[T]) ConstructBalancedFilter(points []Point[T]) error {
	xs, ys, err := t.sorted(points)
	if err != nil {
		return err
	}

	t.build(filterPartition[T]{xs: xs, ys: ys})

	return nil
}

// ConstructUnbalanced builds a tree quickly by inserting points in
// median order: the root is the lower median by x, then the lower
// median of the remaining points by y, then by x again, and so on,
// each inserted from the root. The result is usually close to
// balanced but its height is not guaranteed to be minimal.
//
// points is not modified. It must be non-empty and free of duplicates.
func (t *Tree[T]) ConstructUnbalanced(points []Point[T]) error {
	xs, ys, err := t.sorted(points)
	if err != nil {
		return err
	}

	var p Point[T]
	p, xs = removeAt(xs, medianIndex(len(xs)))
	ys = removeSorted(ys, p, Odd)
	t.setRoot(p)

	for a := Odd; len(xs) > 0; a = a.Next() {
		switch a {
		case Even:
			p, xs = removeAt(xs, medianIndex(len(xs)))
			ys = removeSorted(ys, p, Odd)
		case Odd:
			p, ys = removeAt(ys, medianIndex(len(ys)))
			xs = removeSorted(xs, p, Even)
		default:
			panic("unreachable")
		}

		t.insert(t.root, p)
	}

	return nil
}

func (t *Tree[T]) checkConstruct(points []Point[T]) error {
	if t.root != nil {
		return ErrAlreadyConstructed
	}
	if len(points) == 0 {
		return ErrEmptyInput
	}
	for _, p := range points {
		// only a NaN coordinate makes a point unequal to itself
		if p != p {
			return fmt.Errorf("%w: %v", ErrInvalidPoint, p)
		}
	}
	return nil
}

// sorted returns copies of points sorted on the Even and Odd axis.
func (t *Tree[T]) sorted(points []Point[T]) (xs, ys []Point[T], err error) {
	if err = t.checkConstruct(points); err != nil {
		return
	}

	xs, ys = slices.Clone(points), slices.Clone(points)
	slices.SortFunc(xs, func(a, b Point[T]) bool {
		return a.Compare(b, Even) == tree.Less
	})
	slices.SortFunc(ys, func(a, b Point[T]) bool {
		return a.Compare(b, Odd) == tree.Less
	})

	for i := 1; i < len(xs); i++ {
		if xs[i-1] == xs[i] {
			return nil, nil, fmt.Errorf("%w: %v", ErrDuplicatePoint, xs[i])
		}
	}

	return
}

// medianIndex is the index of the lower median of n sorted items.
func medianIndex(n int) int {
	return (n - 1) / 2
}

func removeAt[T constraints.Ordered](s []Point[T], i int) (Point[T], []Point[T]) {
	p := s[i]
	return p, slices.Delete(s, i, i+1)
}

// removeSorted removes p from s, which is sorted on axis a.
func removeSorted[T constraints.Ordered](s []Point[T], p Point[T], a Axis) []Point[T] {
	i, ok := slices.BinarySearchFunc(s, p, func(l, r Point[T]) int {
		return int(l.Compare(r, a))
	})
	if !ok {
		panic(fmt.Sprintf("point %v missing from %v list", p, a))
	}
	return slices.Delete(s, i, i+1)
}

// partition is a set of points that are still to be placed in the
// tree, kept sorted on both axes.
type partition[T constraints.Ordered] interface {
	len() int
	// split picks the lower median on axis a and divides the
	// remaining points into those below and above it on a.
	// Both halves stay sorted on both axes.
	split(a Axis) (median Point[T], low, high partition[T])
}

type buildFrame[T constraints.Ordered] struct {
	part   partition[T]
	parent *Node[T]
}

// build places the points of root into the empty tree t.
// Nodes are attached in pre-order, low half first.
func (t *Tree[T]) build(root partition[T]) {
	median, low, high := root.split(Even)
	n := t.setRoot(median)

	stack := []buildFrame[T]{{high, n}, {low, n}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.part.len() == 0 {
			continue
		}

		median, low, high := f.part.split(f.parent.axis.Next())
		n := t.insert(f.parent, median)

		stack = append(stack, buildFrame[T]{high, n}, buildFrame[T]{low, n})
	}
}

// indexPartition holds positions into points, sorted by x in xi and
// by y in yi.
type indexPartition[T constraints.Ordered] struct {
	points []Point[T]
	xi, yi []int
}

func (p indexPartition[T]) len() int {
	return len(p.xi)
}

func (p indexPartition[T]) split(a Axis) (Point[T], partition[T], partition[T]) {
	var own, other []int
	switch a {
	case Even:
		own, other = p.xi, p.yi
	case Odd:
		own, other = p.yi, p.xi
	default:
		panic(fmt.Errorf("%w: %d", ErrInvalidAxis, a))
	}

	m := medianIndex(len(own))
	median := p.points[own[m]]

	lowOwn, highOwn := own[:m:m], own[m+1:]
	lowOther := make([]int, 0, len(lowOwn))
	highOther := make([]int, 0, len(highOwn))
	for _, i := range other {
		switch p.points[i].Compare(median, a) {
		case tree.Less:
			lowOther = append(lowOther, i)
		case tree.Greater:
			highOther = append(highOther, i)
		}
		// the median itself goes to neither half
	}

	if a == Even {
		return median,
			indexPartition[T]{points: p.points, xi: lowOwn, yi: lowOther},
			indexPartition[T]{points: p.points, xi: highOwn, yi: highOther}
	}
	return median,
		indexPartition[T]{points: p.points, xi: lowOther, yi: lowOwn},
		indexPartition[T]{points: p.points, xi: highOther, yi: highOwn}
}

// filterPartition holds the points themselves, sorted by x in xs and
// by y in ys.
type filterPartition[T constraints.Ordered] struct {
	xs, ys []Point[T]
}

func (p filterPartition[T]) len() int {
	return len(p.xs)
}

func (p filterPartition[T]) split(a Axis) (Point[T], partition[T], partition[T]) {
	var own, other []Point[T]
	switch a {
	case Even:
		own, other = p.xs, p.ys
	case Odd:
		own, other = p.ys, p.xs
	default:
		panic(fmt.Errorf("%w: %d", ErrInvalidAxis, a))
	}

	m := medianIndex(len(own))
	median := own[m]

	lowOwn, highOwn := own[:m:m], own[m+1:]
	lowOther, highOther := filter(other, lowOwn), filter(other, highOwn)

	if a == Even {
		return median,
			filterPartition[T]{xs: lowOwn, ys: lowOther},
			filterPartition[T]{xs: highOwn, ys: highOther}
	}
	return median,
		filterPartition[T]{xs: lowOther, ys: lowOwn},
		filterPartition[T]{xs: highOther, ys: highOwn}
}

// filter returns the points of s that are also in members, in the
// order of s.
func filter[T constraints.Ordered](s, members []Point[T]) []Point[T] {
	out := make([]Point[T], 0, len(members))
	for _, p := range s {
		if slices.Contains(members, p) {
			out = append(out, p)
		}
	}
	return out
}
