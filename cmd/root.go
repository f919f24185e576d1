package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nexless/storeaudit/internal/application"
	"github.com/nexless/storeaudit/internal/logging"
	"github.com/nexless/storeaudit/internal/registry"
)

var cfgFile string
var logger *zap.SugaredLogger
var closeLogger = func() {}

var rootCmd = &cobra.Command{
	Use:   "storeaudit",
	Short: "Checkpointed black-box audit runner for the storefront web app",
	Long: `storeaudit drives a scripted four-phase audit (accessibility, navigation,
functionality, error handling) against a running storefront and persists
every step as a resumable checkpoint under the audit directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version must work without touching the filesystem
		if cmd.Name() == "version" {
			return nil
		}

		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".storeaudit")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()
		applyConfigDefaults(cmd)

		auditDir, err := resolveAuditDir(cmd)
		if err != nil {
			return err
		}
		baseURL := resolveBaseURL(cmd)

		// init logger: console warnings to stderr, full trail to master_audit.log
		l, cleanup, err := logging.New(auditDir)
		if err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logger = l
		closeLogger = cleanup

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		services, err := application.NewContainer(application.Config{
			AuditDir:       auditDir,
			BaseURL:        baseURL,
			Registry:       reg,
			Logger:         logger,
			RequestTimeout: time.Duration(cliConfig.Audit.RequestTimeoutSecs) * time.Second,
		})
		if err != nil {
			return err
		}

		storeAppContext(cmd, &AppContext{
			Logger:   logger,
			AuditDir: auditDir,
			BaseURL:  baseURL,
			Config:   cliConfig,
			Services: services,
		})

		logger.Infof("audit_dir=%s base_url=%s", auditDir, baseURL)

		return nil
	},
}

// loadRegistry builds the page registry, honoring a pages_file override from
// the config file.
func loadRegistry() (*registry.Registry, error) {
	if path := viper.GetString("pages_file"); path != "" {
		reg, err := registry.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load pages file %s: %w", path, err)
		}
		return reg, nil
	}
	return registry.Default()
}

func Execute() {
	err := rootCmd.Execute()
	closeLogger()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.storeaudit.yaml)")

	rootCmd.PersistentFlags().String("audit-dir", "", "directory for session state, results, and reports (default ./audit_logs)")
	rootCmd.PersistentFlags().String("base-url", "", "base URL of the storefront under audit (default http://localhost:3000)")

	// add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(versionCmd)
}
