// Command tradecalc prices exchange trades: tick arithmetic, green-up stakes,
// liability and exit options for open positions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/bughtuch/tennis-trader-ai/internal/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: tradecalc [-config file] <command> [args]\n\nCommands:\n%s", usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = newApp(cfg, logger, os.Stdout).run(ctx, flag.Args())
	stop()
	if err != nil {
		logger.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
