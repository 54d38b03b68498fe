package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.lepak.sg/kdtree/tree/kd"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	buildBalanced   = "balanced"
	buildFilter     = "filter"
	buildUnbalanced = "unbalanced"
)

// config is read from KDQUERY_* environment variables.
type config struct {
	Build    string `envconfig:"BUILD" default:"balanced"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Workers  int    `envconfig:"WORKERS" default:"4"`
}

func loadConfig() (*config, error) {
	cfg := &config{}
	if err := envconfig.Process("kdquery", cfg); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	return cfg, nil
}

func (c *config) constructor() (func(*kd.Tree[int64], []kd.Point[int64]) error, error) {
	switch c.Build {
	case buildBalanced:
		return (*kd.Tree[int64]).ConstructBalanced, nil
	case buildFilter:
		return (*kd.Tree[int64]).ConstructBalancedFilter, nil
	case buildUnbalanced:
		return (*kd.Tree[int64]).ConstructUnbalanced, nil
	default:
		return nil, fmt.Errorf("unknown build mode %q", c.Build)
	}
}

func (c *config) logger() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build()
}
