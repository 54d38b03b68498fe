package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.lepak.sg/kdtree/tree/kd"
	"go.lepak.sg/kdtree/tree/kd/kdlog"
	"go.uber.org/zap"
)

var (
	file  = flag.String("f", "", "scenario file (TOML)")
	build = flag.String("b", "", "build mode: balanced, filter or unbalanced (default $KDQUERY_BUILD)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *build != "" {
		cfg.Build = *build
	}

	logger, err := cfg.logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(context.Background(), cfg, *file, logger); err != nil {
		logger.Fatal("kdquery failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config, path string, logger *zap.Logger) error {
	if path == "" {
		return errors.New("no scenario file, use -f")
	}

	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	tr, results, err := execute(ctx, cfg, sc, logger)
	if err != nil {
		return err
	}

	fmt.Println("tree:")
	fmt.Print(tr.String())
	fmt.Println("size:", tr.Size(), "height:", tr.Height())

	for i, r := range sc.rects() {
		fmt.Printf("query %v: %v\n", r, results[i])
	}

	return nil
}

// execute builds the scenario's tree and runs its queries.
func execute(
	ctx context.Context, cfg *config, sc *scenario, logger *zap.Logger,
) (*kd.Tree[int64], [][]kd.Point[int64], error) {
	construct, err := cfg.constructor()
	if err != nil {
		return nil, nil, err
	}

	points, err := sc.points()
	if err != nil {
		return nil, nil, err
	}

	obs := kdlog.New[int64](logger)
	tr := kd.New(kd.WithObserver[int64](obs))

	start := time.Now()
	if err := construct(tr, points); err != nil {
		return nil, nil, fmt.Errorf("construct %s: %w", cfg.Build, err)
	}
	logger.Info("tree constructed",
		zap.String("build", cfg.Build),
		zap.Int("points", len(points)),
		zap.Int("attached", obs.Count()),
		zap.Int("height", tr.Height()),
		zap.Duration("took", time.Since(start)))

	rects := sc.rects()
	start = time.Now()
	results, err := tr.QueryMany(ctx, rects, cfg.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	logger.Info("queries done",
		zap.Int("queries", len(rects)),
		zap.Int("workers", cfg.Workers),
		zap.Duration("took", time.Since(start)))

	return tr, results, nil
}
