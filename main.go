package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/soocke/facelog-go/app"
	"github.com/soocke/facelog-go/config"
	"github.com/soocke/facelog-go/debug"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "facelog:", err)
		os.Exit(1)
	}
}

func run() error {
	flags, err := config.ParseFlags(os.Args[1:], time.Now())
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	path := flags.ConfigPath
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if flags.Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger, closer := NewLogger(level, cfg.LogFile)
	defer closer.Close()

	if cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, logger)
		debug.StartMemLogger(10*time.Second, logger)
	}

	ctx := context.Background()
	c, err := app.BuildContainer(ctx, cfg, logger, app.Params{ProjectName: flags.Project, DateKey: flags.Date})
	if err != nil {
		return err
	}
	logger.Info("starting", "project", flags.Project, "date", flags.Date, "config", path)
	app.NewApp("Facelog", c).Start(ctx)
	return nil
}
