// Package main provides the data manager command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"charactervault/web/internal/cache"
	"charactervault/web/internal/config"
	"charactervault/web/internal/database"
	"charactervault/web/internal/datamanager"
)

func main() {
	config.LoadConfig()

	cfg, err := datamanager.ParseConfig(flag.CommandLine, os.Args[1:], config.AppConfig)
	if err != nil {
		exitf("Error: %v", err)
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, nil)
	if err != nil {
		exitf("Error: %v", err)
	}

	if store, err := cache.New(config.AppConfig.RedisURL); err == nil {
		cache.Init(store, config.AppConfig.CacheTTL)
	} else {
		fmt.Fprintf(os.Stderr, "Warning: cache unavailable, cached pages may be stale: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := datamanager.Run(ctx, db, cfg, os.Stdout); err != nil {
		exitf("Error: %v", err)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
