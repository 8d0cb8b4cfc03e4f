package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kdsmith18542/pluralkit/internal/logging"
	"github.com/kdsmith18542/pluralkit/locale"
	"github.com/kdsmith18542/pluralkit/observability"
	"github.com/kdsmith18542/pluralkit/pluralize"
	"github.com/kdsmith18542/pluralkit/source"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v         *viper.Viper
	logger    *logging.Logger
	telemetry bool
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:               "pluralkit",
		Short:             "pluralkit - Count-aware English pluralization",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (TOML, YAML or JSON)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")
	pf.String("rules", "", "Rule bundles: a directory or an s3://, gs://, azblob:// URI")
	pf.String("locale", "en", "Locale whose bundle is used")
	pf.Bool("telemetry", false, "Record OpenTelemetry traces, metrics and logs")

	root.AddCommand(a.inflectCmd())
	root.AddCommand(a.pluralCmd())
	root.AddCommand(a.singularCmd())
	root.AddCommand(a.bundleCmd())

	return root
}

// setup resolves configuration with the following precedence:
// 1. Command line flags
// 2. Environment variables (PLURALKIT_LOG_LEVEL)
// 3. Config file
// 4. Default values
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	a.v.SetEnvPrefix("PLURALKIT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if cfgPath := a.v.GetString("config"); cfgPath != "" {
		a.v.SetConfigFile(cfgPath)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %q: %w", cfgPath, err)
		}
	}

	logCfg := logging.Config{
		Level:  a.v.GetString("log-level"),
		Format: a.v.GetString("log-format"),
		Output: cmd.ErrOrStderr(),
	}

	if a.v.GetBool("telemetry") {
		if err := observability.Init(observability.Config{
			ServiceName:    "pluralkit",
			ServiceVersion: version,
			Environment:    "cli",
			EnableTracing:  true,
			EnableMetrics:  true,
			EnableLogging:  true,
		}); err != nil {
			return err
		}
		pluralize.EnableObservability()
		logCfg.LoggerProvider = observability.LoggerProvider()
		a.telemetry = true
	}

	a.logger = logging.NewLogger(logCfg)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if !a.telemetry {
		return nil
	}
	pluralize.RegisterObserver(nil)
	observability.SetObserver(nil)
	return observability.Shutdown(ctx)
}

// engine returns the engine for the configured locale, loading bundles from
// the configured rule source when there is one.
func (a *app) engine(ctx context.Context) (*pluralize.Engine, error) {
	rules := a.v.GetString("rules")
	code := a.v.GetString("locale")
	if rules == "" {
		return pluralize.Default(), nil
	}

	src, err := source.Open(ctx, rules)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	m := locale.NewManagerEmpty()
	m.SetLogger(a.logger)
	if err := m.LoadFromSource(ctx, src); err != nil {
		return nil, err
	}

	if !m.HasLocale(code) {
		a.logger.Warn("no bundle for locale, using built-in rules", "locale", code, "rules", rules)
	}
	a.logger.Debug("loaded rule bundles", "locales", m.AvailableLocales(), "rules", rules)

	return m.Engine(code), nil
}
