package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexless/storeaudit/internal/application"
)

// AppContext bundles the resolved runtime configuration and the service
// container for command handlers.
type AppContext struct {
	Logger   *zap.SugaredLogger
	AuditDir string
	BaseURL  string
	Config   *CLIConfig
	Services *application.Container
}

// appContextKey is the context key for the AppContext attached to a command.
type appContextKey struct{}

// globalAppContext is the fallback for commands executed outside the normal
// cobra lifecycle (direct RunE invocation in tests).
var globalAppContext *AppContext

// storeAppContext attaches the AppContext to the command's context and keeps
// the global fallback in sync.
func storeAppContext(cmd *cobra.Command, appCtx *AppContext) {
	globalAppContext = appCtx

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appContextKey{}, appCtx))
}

// getAppContext returns the AppContext for the command, preferring the one
// carried on the command's context.
func getAppContext(cmd *cobra.Command) *AppContext {
	if cmd != nil {
		if ctx := cmd.Context(); ctx != nil {
			if appCtx, ok := ctx.Value(appContextKey{}).(*AppContext); ok {
				return appCtx
			}
		}
	}
	return globalAppContext
}
