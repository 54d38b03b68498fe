package tree

import (
	"golang.org/x/exp/constraints"
)

// Order is the result of comparing two keys.
type Order int

const (
	Less Order = iota - 1
	Equal
	Greater
)

// Compare orders l relative to r.
func Compare[T constraints.Ordered](l, r T) Order {
	if l < r {
		return Less
	} else if l > r {
		return Greater
	} else {
		return Equal
	}
}

// Then chains two comparisons lexicographically: o decides unless
// it is Equal, in which case next does.
//
// Comparing pairs looks like this:
//	tree.Compare(a1, b1).Then(tree.Compare(a2, b2))
func (o Order) Then(next Order) Order {
	if o != Equal {
		return o
	}
	return next
}

func (o Order) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	default:
		return "Order(?)"
	}
}
