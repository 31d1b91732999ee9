// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/SoftbearStudios/biomegen/cloud"
	"github.com/SoftbearStudios/biomegen/config"
	"github.com/SoftbearStudios/biomegen/export"
	"github.com/SoftbearStudios/biomegen/generator"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/SoftbearStudios/biomegen/logger"
	"github.com/SoftbearStudios/biomegen/terrain/noise"
	"go.uber.org/zap"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"
)

func main() {
	var (
		cpuProfile string
		history    bool
	)
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.BoolVar(&history, "history", false, "list published generations instead of generating")
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.File, os.Stderr)
	defer logger.Sync()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			logger.Fatal("could not create CPU profile", zap.Error(err))
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal("could not start CPU profile", zap.Error(err))
		}
		defer pprof.StopCPUProfile()
	}

	if history {
		err = listHistory(cfg)
	} else {
		err = run(cfg)
	}
	if err != nil {
		logger.Error("failed", zap.Error(err))
		pprof.StopCPUProfile()
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	seed := cfg.Noise.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	source, err := noise.New(cfg.Noise.Backend, seed)
	if err != nil {
		return err
	}
	generatorConfig, err := cfg.GeneratorConfig()
	if err != nil {
		return err
	}
	mode, err := cfg.VisualizationMode()
	if err != nil {
		return err
	}

	c, err := cloud.New(cfg.Cloud)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scene := &level.Recorder{}
	result, err := generator.New(generatorConfig, source, scene, seed).Generate(ctx)
	if err != nil {
		return err
	}
	logger.Debug("scene",
		zap.Int("tiles", len(scene.Tiles)),
		zap.Int("vegetation", len(scene.Vegetation)),
	)

	snapshot := export.NewSnapshot(result)
	if path := cfg.Output.Snapshot; path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if _, err := snapshot.WriteTo(file); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
		logger.Info("wrote snapshot", zap.String("path", path))
	}

	format := export.FormatOf(cfg.Output.Image)
	var img bytes.Buffer
	if err := export.WriteImage(&img, export.Scale(export.LevelImage(result.Level, mode), cfg.Output.ImageScale), format); err != nil {
		return err
	}
	if path := cfg.Output.Image; path != "" {
		if err := os.WriteFile(path, img.Bytes(), 0644); err != nil {
			return err
		}
		logger.Info("wrote image", zap.String("path", path), zap.Stringer("mode", mode))
	}

	if err := c.Publish(snapshot, img.Bytes(), format); err != nil {
		return err
	}
	if c != nil {
		logger.Info("published", zap.Stringer("cloud", c), zap.Stringer("id", snapshot.ID))
	}
	return nil
}

func listHistory(cfg *config.Config) error {
	c, err := cloud.New(cfg.Cloud)
	if err != nil {
		return err
	}
	if c == nil {
		return errors.New("history needs cloud.enabled (or -publish)")
	}

	var seed *int64
	if cfg.Noise.Seed != 0 {
		seed = &cfg.Noise.Seed
	}
	generations, err := c.History(seed)
	if err != nil {
		return err
	}
	for _, g := range generations {
		fmt.Printf("%s\tseed=%d\t%dx%d\trivers=%d (%d stranded)\ttrees=%d\t%s\n",
			g.ID, g.Seed, g.Rows, g.Cols, g.Rivers, g.Stranded, g.Trees,
			time.Unix(g.Created, 0).Format(time.RFC3339))
	}
	return nil
}
