package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nexless/storeaudit/internal/domain/session"
	"github.com/nexless/storeaudit/internal/registry"
	consts "github.com/nexless/storeaudit/internal/shared/constants"
	sharedErrors "github.com/nexless/storeaudit/internal/shared/errors"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current audit session and its progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		ctx := context.Background()
		out := cmd.OutOrStdout()

		sess, err := appCtx.Services.Sessions.Load(ctx)
		if err != nil {
			if errors.Is(err, sharedErrors.ErrSessionNotFound) {
				fmt.Fprintln(out, colorWarn("No active session found. Run 'storeaudit init' to start one."))
				return nil
			}
			return fmt.Errorf("failed to load session: %w", err)
		}

		printStatusOverview(out, appCtx, sess)
		printSeverityBreakdown(out, sess)
		printPageBreakdown(out, appCtx.Services.Registry, sess)
		return nil
	},
}

func printStatusOverview(out io.Writer, appCtx *AppContext, sess *session.Session) {
	score := sess.ErrorSummary.HealthScore()

	rows := []table.Row{
		{"Session", sess.SessionID},
		{"Audit dir", appCtx.AuditDir},
		{"Started", fmt.Sprintf("%s (%s)", sess.AuditStartTime.Local().Format("2006-01-02 15:04:05"), humanize.Time(sess.AuditStartTime))},
		{"Network", sess.RecoveryMetadata.NetworkState},
		{"Progress", fmt.Sprintf("%d/%d pages (%.1f%%)", len(sess.Progress.PagesCompleted), sess.Progress.TotalPages, sess.Progress.CompletionPercentage)},
		{"", progressBar(sess.Progress.CompletionPercentage)},
		{"Checkpoints", fmt.Sprintf("%d recorded, next #%s", len(sess.CheckpointHistory), readCounterState(appCtx.AuditDir))},
		{"Health score", fmt.Sprintf("%d/100 (%s)", score, session.Grade(score))},
	}
	if lc := sess.LastCheckpoint; lc != nil {
		rows = append(rows, table.Row{"Last checkpoint", fmt.Sprintf("%s (%s, %s)", lc.ID, formatStatusWithColor(lc.Status), humanize.Time(lc.Timestamp))})
	}
	if resume := sess.RecoveryMetadata.ResumePage; resume != "" {
		rows = append(rows, table.Row{"Resume at", resume})
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.AppendRows(rows)
	tbl.Render()
}

func printSeverityBreakdown(out io.Writer, sess *session.Session) {
	fmt.Fprintln(out)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Severity", "Findings"})
	tbl.AppendRows([]table.Row{
		{colorError("critical"), sess.ErrorSummary.Critical},
		{colorError("high"), sess.ErrorSummary.High},
		{colorWarn("medium"), sess.ErrorSummary.Medium},
		{colorInfo("low"), sess.ErrorSummary.Low},
	})
	tbl.AppendFooter(table.Row{"Total", sess.ErrorSummary.Total})
	tbl.Render()
}

func printPageBreakdown(out io.Writer, reg *registry.Registry, sess *session.Session) {
	fmt.Fprintln(out)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Page", "Category", "Risk", "State"})
	for i, page := range reg.Pages() {
		tbl.AppendRow(table.Row{i + 1, page.Key, page.Category, page.Risk, pageState(sess, page.Key)})
	}
	tbl.Render()
}

func pageState(sess *session.Session, key string) string {
	switch {
	case containsKey(sess.Progress.PagesCompleted, key):
		return colorSuccess("completed")
	case containsKey(sess.Progress.PagesInProgress, key):
		return colorInfo("in progress")
	default:
		return colorWarn("remaining")
	}
}

// progressBar renders a 20-cell bar for a 0-100 percentage.
func progressBar(pct float64) string {
	const barLength = 20

	filled := int(pct / 100 * barLength)
	if filled < 0 {
		filled = 0
	}
	if filled > barLength {
		filled = barLength
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barLength-filled)
}

// readCounterState peeks at the persisted checkpoint counter without
// advancing it.
func readCounterState(auditDir string) string {
	path, err := resolveAuditPath(auditDir, consts.SessionStateDir, consts.CounterFileName)
	if err != nil {
		return "?"
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "?"
	}
	return strings.TrimSpace(string(raw))
}

func containsKey(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
