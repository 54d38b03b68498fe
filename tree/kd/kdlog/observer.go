// Package kdlog reports kd-tree attachment events to a zap logger.
package kdlog

import (
	"go.lepak.sg/kdtree/tree/kd"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

var _ kd.Observer[int] = (*Observer[int])(nil)

// Observer logs every node attachment at debug level.
type Observer[T constraints.Ordered] struct {
	logger *zap.Logger
	count  int
}

// New returns an Observer writing to logger. A nil logger discards
// everything.
func New[T constraints.Ordered](logger *zap.Logger) *Observer[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Observer[T]{logger: logger}
}

func (o *Observer[T]) Attached(e kd.Event[T]) {
	o.count++

	fields := []zap.Field{
		zap.Stringer("direction", e.Direction),
		zap.Stringer("point", e.Point),
		zap.Stringer("axis", e.Axis),
	}
	if e.Direction != kd.Infinite {
		fields = append(fields, zap.Stringer("parent", e.Parent))
	}

	o.logger.Debug("node attached", fields...)
}

// Count returns the number of events seen so far.
func (o *Observer[T]) Count() int {
	return o.count
}
