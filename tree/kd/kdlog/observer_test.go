package kdlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lepak.sg/kdtree/tree/kd"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := New[int](zap.New(core))

	tr := kd.New(kd.WithObserver[int](obs))
	require.NoError(t, tr.ConstructBalanced([]kd.Point[int]{
		kd.Pt(2, 3), kd.Pt(5, 4), kd.Pt(9, 6),
	}))

	assert.Equal(t, 3, obs.Count())

	entries := logs.All()
	require.Len(t, entries, 3)

	root := entries[0]
	assert.Equal(t, "node attached", root.Message)
	assert.Equal(t, zapcore.DebugLevel, root.Level)
	assert.Equal(t, map[string]interface{}{
		"direction": "infinite",
		"point":     "(5, 4)",
		"axis":      "even",
	}, root.ContextMap())

	assert.Equal(t, map[string]interface{}{
		"direction": "left",
		"point":     "(2, 3)",
		"axis":      "odd",
		"parent":    "(5, 4)",
	}, entries[1].ContextMap())

	assert.Equal(t, map[string]interface{}{
		"direction": "right",
		"point":     "(9, 6)",
		"axis":      "odd",
		"parent":    "(5, 4)",
	}, entries[2].ContextMap())
}

func TestObserver_Level(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := New[int](zap.New(core))

	tr := kd.New(kd.WithObserver[int](obs))
	require.NoError(t, tr.ConstructUnbalanced([]kd.Point[int]{kd.Pt(1, 1)}))

	assert.Equal(t, 1, obs.Count())
	assert.Zero(t, logs.Len())
}

func TestObserver_NilLogger(t *testing.T) {
	obs := New[float64](nil)

	assert.NotPanics(t, func() {
		obs.Attached(kd.Event[float64]{Point: kd.Pt(1.5, 2.5)})
	})
	assert.Equal(t, 1, obs.Count())
}
