// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mtreilly/arc-planner/internal/cmd"
	"github.com/mtreilly/arc-planner/internal/config"
	"github.com/mtreilly/arc-planner/internal/events"
	"github.com/mtreilly/arc-planner/internal/planner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-planner: failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	deps := &cmd.Deps{
		Config: cfg,
		Store:  planner.NewPreferenceStore(cfg.Vault, log),
		Alloc:  planner.NewAllocator(log),
		Bus:    events.NewBus(),
		Log:    log,
	}

	root := cmd.NewRootCmd(deps)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a console logger at the configured level. Logging is
// diagnostic only, so a broken config degrades to a no-op logger rather than
// aborting.
func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	log, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
