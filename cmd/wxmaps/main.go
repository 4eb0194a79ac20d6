// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the wxmaps command.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/wneessen/wxmaps/internal/config"
	"github.com/wneessen/wxmaps/internal/i18n"
	"github.com/wneessen/wxmaps/internal/logger"
	"github.com/wneessen/wxmaps/internal/service"
	"github.com/wneessen/wxmaps/internal/weather"
	"github.com/wneessen/wxmaps/internal/weather/provider/nomads"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	watch := flag.Bool("watch", false, "render on the configured schedule until interrupted")
	datasetPath := flag.String("dataset", "", "render from a saved OPeNDAP ASCII dump instead of fetching")
	priorPath := flag.String("prior", "", "saved dump 24 hours before -dataset, for 24-hour products")
	validTime := flag.String("valid-time", "", "valid time of -dataset (RFC3339)")
	flag.Parse()

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log = logger.New(conf.LogLevel)
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	serv, err := service.New(conf, log, t)
	if err != nil {
		log.Error("failed to initialize wxmaps service", logger.Err(err))
		os.Exit(1)
	}

	log.Info(t.Get("starting wxmaps"), slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	switch {
	case *watch:
		sigChan := make(chan os.Signal, 1)
		serv.SignalSrc.Notify(sigChan, syscall.SIGHUP)
		go func() {
			defer serv.SignalSrc.Stop(sigChan)
			serv.HandleRenderSignal(ctx, sigChan)
		}()
		err = serv.Run(ctx)
	case *datasetPath != "":
		err = renderDataset(ctx, serv, *datasetPath, *priorPath, *validTime)
	default:
		var paths []string
		paths, err = serv.RenderAll(ctx)
		for _, path := range paths {
			fmt.Println(path)
		}
	}
	if err != nil {
		log.Error(t.Get("wxmaps failed"), logger.Err(err))
		cancel()
		os.Exit(1)
	}
	log.Info(t.Get("shutting down wxmaps"))
}

// loadConfig reads the file given on the command line, else the first config in the default location,
// else defaults and environment only.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func renderDataset(ctx context.Context, serv *service.Service, path, priorPath, validTime string) error {
	if validTime == "" {
		return fmt.Errorf("-valid-time is required with -dataset")
	}
	valid, err := time.Parse(time.RFC3339, validTime)
	if err != nil {
		return fmt.Errorf("invalid valid time: %w", err)
	}
	current, err := loadDataset(path, valid)
	if err != nil {
		return err
	}
	var prior *weather.Dataset
	if priorPath != "" {
		if prior, err = loadDataset(priorPath, valid.Add(-24*time.Hour)); err != nil {
			return err
		}
	}

	paths, err := serv.RenderDataset(ctx, current, prior)
	for _, p := range paths {
		fmt.Println(p)
	}
	return err
}

func loadDataset(path string, valid time.Time) (*weather.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return nomads.LoadDataset(f, valid, nil)
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "wxmaps", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
