package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"go.lepak.sg/kdtree/tree/kd"
)

// scenario is the TOML input of kdquery:
//
//	points = [[2, 3], [5, 4], [9, 6]]
//
//	[[query]]
//	x1 = 0
//	x2 = 6
//	y1 = 0
//	y2 = 10
type scenario struct {
	Points  [][]int64 `toml:"points"`
	Queries []query   `toml:"query"`
}

type query struct {
	X1 int64 `toml:"x1"`
	X2 int64 `toml:"x2"`
	Y1 int64 `toml:"y1"`
	Y2 int64 `toml:"y2"`
}

func loadScenario(path string) (*scenario, error) {
	sc := &scenario{}
	if _, err := toml.DecodeFile(path, sc); err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return sc, nil
}

func parseScenario(data string) (*scenario, error) {
	sc := &scenario{}
	if _, err := toml.Decode(data, sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return sc, nil
}

func (sc *scenario) points() ([]kd.Point[int64], error) {
	if len(sc.Points) == 0 {
		return nil, errors.New("scenario has no points")
	}

	out := make([]kd.Point[int64], len(sc.Points))
	for i, xy := range sc.Points {
		if len(xy) != 2 {
			return nil, fmt.Errorf("point %d: want 2 coordinates, got %d", i, len(xy))
		}
		out[i] = kd.Pt(xy[0], xy[1])
	}
	return out, nil
}

func (sc *scenario) rects() []kd.Rect[int64] {
	out := make([]kd.Rect[int64], len(sc.Queries))
	for i, q := range sc.Queries {
		out[i] = kd.Rect[int64]{X1: q.X1, X2: q.X2, Y1: q.Y1, Y2: q.Y2}
	}
	return out
}
