package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultBaseURL            = "http://localhost:3000"
	defaultAuditDir           = "./audit_logs"
	defaultRequestTimeoutSecs = 10
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Defaults DefaultValues
	Audit    AuditRuntimeConfig
}

// DefaultValues represent operator-level defaults, typically derived from the
// config file.
type DefaultValues struct {
	RequestTimeoutSecs int
	TelemetryEnabled   bool
}

// AuditRuntimeConfig consolidates flag-driven settings for the audit command.
type AuditRuntimeConfig struct {
	RequestTimeoutSecs int
	TelemetryEnabled   bool
}

type defaultOverrides struct {
	RequestTimeoutSecs *int
	TelemetryEnabled   *bool
	AuditDir           string
	BaseURL            string
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Defaults: DefaultValues{
			RequestTimeoutSecs: defaultRequestTimeoutSecs,
			TelemetryEnabled:   false,
		},
		Audit: AuditRuntimeConfig{
			RequestTimeoutSecs: defaultRequestTimeoutSecs,
			TelemetryEnabled:   false,
		},
	}
}

func loadDefaultOverrides() defaultOverrides {
	overrides := defaultOverrides{}

	if viper.IsSet("defaults.request_timeout_secs") {
		val := viper.GetInt("defaults.request_timeout_secs")
		overrides.RequestTimeoutSecs = &val
	}

	if viper.IsSet("defaults.telemetry") {
		val := viper.GetBool("defaults.telemetry")
		overrides.TelemetryEnabled = &val
	}

	if viper.IsSet("audit_dir") {
		overrides.AuditDir = viper.GetString("audit_dir")
	}

	if viper.IsSet("base_url") {
		overrides.BaseURL = viper.GetString("base_url")
	}

	return overrides
}

// applyConfigDefaults merges config file defaults into the runtime config when
// the user did not explicitly override the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	overrides := loadDefaultOverrides()

	if overrides.AuditDir != "" {
		setStringFlagIfUnset(cmd.Flags(), "audit-dir", overrides.AuditDir)
	}

	if overrides.BaseURL != "" {
		setStringFlagIfUnset(cmd.Flags(), "base-url", overrides.BaseURL)
	}

	if overrides.RequestTimeoutSecs != nil {
		applyIntDefault(auditCmd.Flags(), "timeout", *overrides.RequestTimeoutSecs, func(v int) {
			cliConfig.Defaults.RequestTimeoutSecs = v
			cliConfig.Audit.RequestTimeoutSecs = v
		})
	}

	if overrides.TelemetryEnabled != nil {
		applyBoolDefault(auditCmd.Flags(), "telemetry", *overrides.TelemetryEnabled, func(v bool) {
			cliConfig.Defaults.TelemetryEnabled = v
			cliConfig.Audit.TelemetryEnabled = v
		})
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}
