// Package main provides the herbmind command-line entry point.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// app carries state shared by subcommands after the root pre-run.
type app struct {
	cfg         *config.Config
	catalog     *catalog.Cache
	closeSource func()
	envFile     string
	debug       bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "herbmind",
		Short:         "Symptom to traditional remedy recommendations",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			a.closeCatalog()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Path to a .env file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(newServeCmd(a), newAnalyzeCmd(a), newImportCmd(a))
	return root
}

func (a *app) init() error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.debug {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg
	setupLogging(cfg, os.Stderr)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("herbmind failed")
		stop()
		os.Exit(1)
	}
}
