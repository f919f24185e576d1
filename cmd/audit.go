package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit [page]",
	Short: "Run the four-phase audit against the storefront",
	Long: `Audit every registered page, or a single page when a page key is given.

Each page runs through four phases: accessibility, navigation,
functionality, and error handling. Progress is checkpointed after every
phase and page, so an interrupted run can be picked up with --resume.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		go func() {
			select {
			case sig := <-sigCh:
				fmt.Printf("\n%s Received %s, stopping at the next checkpoint...\n", colorWarn("!"), sig.String())
				cancel()
			case <-ctx.Done():
			}
		}()

		if len(args) == 1 {
			return runPageAudit(ctx, appCtx, args[0])
		}

		resume, _ := cmd.Flags().GetBool("resume")
		return runFullAudit(ctx, appCtx, resume)
	},
}

func runPageAudit(ctx context.Context, appCtx *AppContext, key string) error {
	if err := validatePageKey(key); err != nil {
		return err
	}
	if !appCtx.Services.Registry.Has(key) {
		return &UnknownPageError{Key: key, Valid: appCtx.Services.Registry.Keys()}
	}

	status, err := appCtx.Services.Orchestrator.AuditPage(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to audit page %s: %w", key, err)
	}

	fmt.Println(colorSuccess("Page audit complete."))
	fmt.Printf("%s %s (%s)\n", colorInfo("Page:"), key, formatStatusWithColor(status))
	return nil
}

func runFullAudit(ctx context.Context, appCtx *AppContext, resume bool) error {
	stats, err := appCtx.Services.Orchestrator.FullAudit(ctx, resume)
	if err != nil {
		return err
	}

	fmt.Println(colorSuccess("Full audit complete."))
	fmt.Printf("%s %d page(s) in %s\n", colorInfo("Audited:"), stats.Pages, stats.Duration.Round(time.Second))
	fmt.Printf("%s %d/100\n", colorInfo("Health score:"), stats.HealthScore)
	fmt.Printf("%s %s\n", colorInfo("Report:"), stats.Report.MarkdownPath)

	if appCtx.Config.Audit.TelemetryEnabled {
		if err := recordTelemetry(appCtx, "audit", stats); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record telemetry: %v\n", err)
		}
	}

	return nil
}

func init() {
	auditCmd.Flags().Bool("resume", false, "Audit only the pages the current session still lists as remaining")
	auditCmd.Flags().IntVarP(&cliConfig.Audit.RequestTimeoutSecs, "timeout", "t", cliConfig.Audit.RequestTimeoutSecs, "ceiling for outgoing requests in seconds")
	auditCmd.Flags().BoolVar(&cliConfig.Audit.TelemetryEnabled, "telemetry", cliConfig.Audit.TelemetryEnabled, "append a telemetry record for completed full runs")
}
