package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/common"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/config"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/engine"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/mail"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/sheets"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/xlsx"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Fetch the latest revenue extracts and update the tracking sheet",
		Long: `Fetches the most recent "upcoming" and "completed" revenue extract
attachments from the configured mailbox, aggregates their subtotals per
business unit and date, and writes the results into the tracking tab.
The two extracts are processed independently; a missing or broken one
never blocks the other.`,
		RunE: runReconcile,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "plan the writes without applying them")
	cmd.Flags().String("policy", "", "completed aggregation policy (last-non-blank, sum-all)")
	cmd.Flags().String("tab", "", "destination tab name (e.g. February)")

	_ = viper.BindPFlag("completed.policy", cmd.Flags().Lookup("policy"))
	_ = viper.BindPFlag("sheet.tab", cmd.Flags().Lookup("tab"))

	return cmd
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	engineConfig, err := config.LoadEngineConfig()
	if err != nil {
		return err
	}
	engineConfig.DryRun, _ = cmd.Flags().GetBool("dry-run")

	layout, err := config.LoadLayout()
	if err != nil {
		return err
	}

	mailConfig, err := config.LoadMailConfig()
	if err != nil {
		return err
	}
	mailbox, err := mail.NewClient(*mailConfig, logger)
	if err != nil {
		return common.NewUserError("mailbox configuration rejected", err)
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return err
	}
	store, err := sheets.NewStore(ctx, *sheetsConfig, logger)
	if err != nil {
		return common.NewUserError("could not reach the tracking spreadsheet", err)
	}

	eng, err := engine.New(mailbox, store, xlsx.NewDecoder(), layout, engineConfig, logger)
	if err != nil {
		return err
	}

	report, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, outcome := range []model.DocumentOutcome{report.Upcoming, report.Completed} {
		if outcome.Status == model.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		return common.NewUserError(fmt.Sprintf("%d of 2 documents failed; see the log for details", failed), nil)
	}
	return nil
}
