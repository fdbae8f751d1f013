package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/CrowderSoup/monday-dashboard/database"
	"github.com/CrowderSoup/monday-dashboard/services"
)

func newUploadCmd(opts *rootOptions) *cobra.Command {
	var (
		planFile string
		delayMs  int
	)

	cmd := &cobra.Command{
		Use:   "upload-dates",
		Short: "Write timeline dates to Monday.com from a YAML plan",
		Long: `upload-dates reads a plan file and writes each project's dates into a
timeline column, one item at a time with a pause between writes. Failed
items are reported and the rest still run.

  boardId: "1234567890"
  columnId: timeline
  projects:
    - itemId: "111"
      name: Launch
      startDate: 2025-01-06
      endDate: 2025-02-14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			if cmd.Flags().Changed("delay-ms") {
				overrides["upload_delay_ms"] = delayMs
			}
			return runUpload(cmd, opts, planFile, overrides)
		},
	}
	cmd.Flags().StringVarP(&planFile, "file", "f", "", "YAML upload plan")
	cmd.Flags().IntVar(&delayMs, "delay-ms", 0, "pause between writes in milliseconds (overrides UPLOAD_DELAY_MS)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func loadPlan(path string) (services.UploadRequest, error) {
	var req services.UploadRequest
	raw, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read plan: %w", err)
	}
	if err := yaml.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	return req, req.Validate()
}

func runUpload(cmd *cobra.Command, opts *rootOptions, planFile string, overrides map[string]any) error {
	req, err := loadPlan(planFile)
	if err != nil {
		return err
	}

	cfg, logger, err := opts.load(cmd, overrides)
	if err != nil {
		return err
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	uploader := services.NewUploader(newMondayClient(cfg),
		services.WithDelay(cfg.UploadDelay()),
		services.WithJournal(database.NewJournalService(db)),
		services.WithLogger(logger),
	)

	summary, err := uploader.Upload(cmd.Context(), req)
	if summary != nil {
		out := cmd.OutOrStdout()
		for _, r := range summary.Results {
			label := r.ItemID
			if r.Name != "" {
				label = fmt.Sprintf("%s (%s)", r.Name, r.ItemID)
			}
			if r.Success {
				fmt.Fprintf(out, "ok    %s %s -> %s\n", label, r.StartDate, r.EndDate)
			} else {
				fmt.Fprintf(out, "FAIL  %s: %s\n", label, r.Error)
			}
		}
		fmt.Fprintf(out, "%s written, %s failed (batch %s)\n",
			english.Plural(summary.Succeeded, "item", ""), english.Plural(summary.Failed, "item", ""), summary.BatchID)
		if err == nil && summary.Failed > 0 {
			err = errors.New("some items failed")
		}
	}
	return err
}
