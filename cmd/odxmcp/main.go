package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"odx/internal/app"
)

type serveOptions struct {
	configPath string
}

func bindRootFlags(flags *pflag.FlagSet, opts *serveOptions) {
	flags.StringVar(&opts.configPath, "config", opts.configPath, "path to optional config file (env vars take precedence)")
}

func main() {
	cfg := zap.NewProductionConfig()
	// stdout carries the MCP stream; all diagnostics go to stderr.
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := serveOptions{}

	root := &cobra.Command{
		Use:   "odxmcp",
		Short: "MCP adapter exposing Odoo models as tools and glossary resources",
	}

	bindRootFlags(root.PersistentFlags(), &opts)

	root.AddCommand(
		newServeCmd(logger, &opts),
		newValidateCmd(logger, &opts),
	)

	return root
}

func newServeCmd(logger *zap.Logger, opts *serveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application := app.New(logger)
			return application.Serve(ctx, app.ServeConfig{
				ConfigPath: opts.configPath,
			})
		},
	}
}

func newValidateCmd(logger *zap.Logger, opts *serveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and catalog without connecting to Odoo",
		RunE: func(cmd *cobra.Command, args []string) error {
			application := app.New(logger)
			summary, err := application.Validate(app.ServeConfig{
				ConfigPath: opts.configPath,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database: %s\ncatalog entries: %d (%d dynamic)\n",
				summary.Database, summary.Entries, summary.DynamicEntries)
			return nil
		},
	}
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
