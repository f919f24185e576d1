package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexless/storeaudit/internal/domain/session"
	sharedErrors "github.com/nexless/storeaudit/internal/shared/errors"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate the final audit report from the current session",
	Long: `Rebuild the final report artifacts (markdown and JSON summary) from the
persisted session state without re-running any tests. --pdf additionally
renders a PDF copy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		ctx := context.Background()

		withPDF, _ := cmd.Flags().GetBool("pdf")

		res, err := appCtx.Services.Reports.Generate(ctx, withPDF)
		if err != nil {
			if errors.Is(err, sharedErrors.ErrSessionNotFound) {
				return &NoSessionError{}
			}
			return fmt.Errorf("failed to generate report: %w", err)
		}

		fmt.Println(colorSuccess("Report generated."))
		fmt.Printf("%s %s\n", colorInfo("Markdown:"), res.MarkdownPath)
		fmt.Printf("%s %s\n", colorInfo("Summary:"), res.JSONPath)
		if res.PDFPath != "" {
			fmt.Printf("%s %s\n", colorInfo("PDF:"), res.PDFPath)
		}
		fmt.Printf("%s %d/100 (%s)\n", colorInfo("Health score:"), res.HealthScore, gradeLabel(res.HealthScore))
		return nil
	},
}

func gradeLabel(score int) string {
	grade := session.Grade(score)
	switch grade {
	case "EXCELLENT", "GOOD":
		return colorSuccess(grade)
	case "FAIR":
		return colorWarn(grade)
	default:
		return colorError(grade)
	}
}

func init() {
	reportCmd.Flags().Bool("pdf", false, "Additionally render the report as PDF")
}
