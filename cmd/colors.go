package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatStatusWithColor(status string) string {
	switch strings.ToLower(status) {
	case "pass", "success":
		return colorSuccess(status)
	case "warn", "warning":
		return colorWarn(status)
	case "fail", "failed", "error":
		return colorError(status)
	case "in_progress", "info":
		return colorInfo(status)
	default:
		return status
	}
}
