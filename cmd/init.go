package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a fresh audit session",
	Long: `Create a new audit session covering every registered page.

Any existing session document is replaced. The checkpoint counter is
preserved so checkpoint identifiers stay unique across sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		ctx := context.Background()

		sess, err := appCtx.Services.Orchestrator.Initialize(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		fmt.Println(colorSuccess("Session initialized."))
		fmt.Printf("%s %s\n", colorInfo("Session:"), sess.SessionID)
		fmt.Printf("%s %s\n", colorInfo("Audit dir:"), appCtx.AuditDir)
		fmt.Printf("%s %d pages planned\n", colorInfo("Audit plan:"), sess.Progress.TotalPages)
		return nil
	},
}
