package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CrowderSoup/monday-dashboard/config"
	"github.com/CrowderSoup/monday-dashboard/logging"
	"github.com/CrowderSoup/monday-dashboard/monday"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configFile string
}

func main() {
	// Commands stop on SIGINT/SIGTERM through their context: serve shuts down
	// and upload-dates stops between items.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCmd(opts)

	root := &cobra.Command{
		Use:   "monday-dashboard",
		Short: "Monday.com project dashboard and GraphQL proxy",
		Long: `monday-dashboard serves a project dashboard for a Monday.com account:
boards nested with their subitem boards, inferred project dates on a Gantt
chart, and a thin REST proxy over the Monday.com GraphQL API.

Without a subcommand it runs the server.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default reads .env when present)")
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newUploadCmd(opts))
	return root
}

// load reads configuration with overrides applied and builds the logger.
func (o *rootOptions) load(cmd *cobra.Command, overrides map[string]any) (*config.Config, *slog.Logger, error) {
	v, err := config.NewViper(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	for key, value := range overrides {
		v.Set(key, value)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return cfg, logger, nil
}

func newMondayClient(cfg *config.Config) *monday.Client {
	return monday.NewClient(cfg.MondayAPIToken,
		monday.WithEndpoint(cfg.MondayAPIURL),
		monday.WithAPIVersion(cfg.MondayAPIVersion),
		monday.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
	)
}
