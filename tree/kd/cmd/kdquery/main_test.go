package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lepak.sg/kdtree/tree/kd"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sample = `
points = [[2, 3], [5, 4], [9, 6], [4, 7], [8, 1], [7, 2]]

[[query]]
x1 = 0
x2 = 6
y1 = 0
y2 = 10

[[query]]
x1 = 7
x2 = 9
y1 = 1
y2 = 2
`

func TestParseScenario(t *testing.T) {
	sc, err := parseScenario(sample)
	require.NoError(t, err)

	points, err := sc.points()
	require.NoError(t, err)
	assert.Equal(t, []kd.Point[int64]{
		kd.Pt[int64](2, 3), kd.Pt[int64](5, 4), kd.Pt[int64](9, 6),
		kd.Pt[int64](4, 7), kd.Pt[int64](8, 1), kd.Pt[int64](7, 2),
	}, points)

	assert.Equal(t, []kd.Rect[int64]{
		{X1: 0, X2: 6, Y1: 0, Y2: 10},
		{X1: 7, X2: 9, Y1: 1, Y2: 2},
	}, sc.rects())
}

func TestParseScenario_Bad(t *testing.T) {
	_, err := parseScenario("points = [[1, 2]")
	assert.Error(t, err)

	sc, err := parseScenario("points = [[1, 2, 3]]")
	require.NoError(t, err)
	_, err = sc.points()
	assert.EqualError(t, err, "point 0: want 2 coordinates, got 3")

	sc, err = parseScenario("")
	require.NoError(t, err)
	_, err = sc.points()
	assert.EqualError(t, err, "scenario has no points")
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	sc, err := loadScenario(path)
	require.NoError(t, err)
	assert.Len(t, sc.Points, 6)
	assert.Len(t, sc.Queries, 2)

	fromFile, err := loadScenario(filepath.Join("testdata", "scenario.toml"))
	require.NoError(t, err)
	assert.Equal(t, sc, fromFile)

	_, err = loadScenario(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("KDQUERY_BUILD", "unbalanced")
	t.Setenv("KDQUERY_WORKERS", "2")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, &config{Build: "unbalanced", LogLevel: "info", Workers: 2}, cfg)

	t.Setenv("KDQUERY_WORKERS", "many")
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestConfig_Logger(t *testing.T) {
	logger, err := (&config{LogLevel: "debug"}).logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = (&config{LogLevel: "loud"}).logger()
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	sc, err := parseScenario(sample)
	require.NoError(t, err)

	for _, mode := range []string{buildBalanced, buildFilter, buildUnbalanced} {
		t.Run(mode, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			cfg := &config{Build: mode, Workers: 2}

			tr, results, err := execute(context.Background(), cfg, sc, zap.New(core))
			require.NoError(t, err)

			assert.Equal(t, 6, tr.Size())
			require.Len(t, results, 2)
			assert.ElementsMatch(t, []kd.Point[int64]{
				kd.Pt[int64](2, 3), kd.Pt[int64](4, 7), kd.Pt[int64](5, 4),
			}, results[0])
			assert.ElementsMatch(t, []kd.Point[int64]{
				kd.Pt[int64](7, 2), kd.Pt[int64](8, 1),
			}, results[1])

			assert.Equal(t, 6, logs.FilterMessage("node attached").Len())
			assert.Equal(t, 1, logs.FilterMessage("tree constructed").Len())
			assert.Equal(t, 1, logs.FilterMessage("queries done").Len())
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	sc, err := parseScenario("points = [[1, 1], [1, 1]]")
	require.NoError(t, err)

	_, _, err = execute(context.Background(), &config{Build: "sideways"}, sc, zap.NewNop())
	assert.EqualError(t, err, `unknown build mode "sideways"`)

	_, _, err = execute(context.Background(), &config{Build: buildBalanced}, sc, zap.NewNop())
	assert.ErrorIs(t, err, kd.ErrDuplicatePoint)
}
