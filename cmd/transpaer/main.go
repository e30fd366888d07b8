// Command transpaer runs one stage of the knowledge-graph build pipeline
// per invocation (spec §6.3): extract, filter, update, condense, coagulate,
// crystalize, oxidize, connect, or sample. Modeled on the teacher's
// cmd/main.go (config-file flag, environment fallback, default path), with
// a subcommand name added as the first positional argument since each
// invocation here runs a single batch stage rather than a resident daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/app"
	"github.com/transpaer/transpaer-knowledge/internal/config"
	"github.com/transpaer/transpaer-knowledge/internal/metrics"
)

const defaultConfigFile = "/etc/transpaer/config.yaml"

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "Path to configuration file")
	flag.Parse()

	if configFile == "" {
		if env := os.Getenv("TRANSPAER_CONFIG_FILE"); env != "" {
			configFile = env
		} else {
			configFile = defaultConfigFile
		}
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: transpaer [-config file] <extract|filter|update|condense|coagulate|crystalize|oxidize|connect|sample>")
		os.Exit(2)
	}
	subcommand := args[0]

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.WithField("config", configFile).Infof("transpaer: running %s", subcommand)

	var metricsServer *metrics.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsAddr, logger)
		metricsServer.Start()
		defer metricsServer.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("transpaer: shutdown signal received, cancelling run")
		cancel()
	}()

	a := app.New(cfg, logger)
	if err := a.Dispatch(ctx, subcommand); err != nil {
		logger.WithError(err).Errorf("transpaer: %s failed", subcommand)
		os.Exit(1)
	}
	logger.Infof("transpaer: %s complete", subcommand)
}
