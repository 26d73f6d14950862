// Package cmd provides the root command and CLI setup for cs2kt.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cs2kt.dev/pkg/cs2kt/internal/adapter"
	"cs2kt.dev/pkg/cs2kt/internal/controller"
	"cs2kt.dev/pkg/cs2kt/internal/domain"
	"cs2kt.dev/pkg/cs2kt/internal/domain/rules"
	"cs2kt.dev/pkg/cs2kt/internal/domain/typemap"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

var fsAdapter adapter.SourceFSAdapter
var csharpAdapter adapter.CSharpFileAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsDirFlag is a root-level flag shared by commands that read/write reports.
var reportsDirFlag string

// outputDirFlag is where translated Kotlin files are written.
var outputDirFlag string

// noCacheFlag disables incremental caching when set.
var noCacheFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	csharpAdapter = adapter.NewLocalCSharpFileAdapter()
	reportStore = adapter.NewYAMLReportStore()
	workflow = &configuredWorkflow{}
}

const rootLongDescription = `cs2kt translates C# sources into Kotlin source text.

The translation is syntax directed: every C# file becomes one Kotlin file
below the output directory, and constructs that have no direct Kotlin
counterpart are kept as commented source so nothing is lost silently.`

const translateLongDescription = `Translate every C# file below the source directory (default: current
directory, or $CS2KOTLIN_SRC) into Kotlin files below the output directory.

Unchanged files are skipped using the saved reports unless --no-cache is set.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cs2kt",
		Short:         "C# to Kotlin source translator",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&outputDirFlag, outputFlagName, "o", defaultOutputDir, "output directory for translated Kotlin files")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputFlagName)

	flags.StringVarP(&reportsDirFlag, reportsFlagName, "r", defaultReportsDir, "directory for translation reports")
	bindFlagToConfig(flags.Lookup(reportsFlagName), reportsFlagName)

	flags.BoolVar(&noCacheFlag, noCacheFlagName, defaultNoCache, "disable cached incremental runs (re-translate everything)")
	bindFlagToConfig(flags.Lookup(noCacheFlagName), noCacheFlagName)

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// sourceArg returns the positional source, or the configured one.
func sourceArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return viper.GetString(sourceFlagName)
}

// configuredWorkflow builds the real workflow on first use, once flags and
// config are parsed.
type configuredWorkflow struct {
	once sync.Once
	wf   domain.Workflow
	err  error
}

func (c *configuredWorkflow) get() (domain.Workflow, error) {
	c.once.Do(func() {
		c.wf, c.err = buildWorkflow()
	})

	return c.wf, c.err
}

func (c *configuredWorkflow) Translate(ctx context.Context, args domain.TranslateArgs) error {
	wf, err := c.get()
	if err != nil {
		return err
	}

	return wf.Translate(ctx, args)
}

func (c *configuredWorkflow) Estimate(ctx context.Context, args domain.EstimateArgs) error {
	wf, err := c.get()
	if err != nil {
		return err
	}

	return wf.Estimate(ctx, args)
}

func (c *configuredWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	wf, err := c.get()
	if err != nil {
		return err
	}

	return wf.View(ctx, args)
}

func (c *configuredWorkflow) Show(ctx context.Context, args domain.ShowArgs) error {
	wf, err := c.get()
	if err != nil {
		return err
	}

	return wf.Show(ctx, args)
}

func buildWorkflow() (domain.Workflow, error) {
	catalog, err := loadCatalog(viper.GetStringSlice(catalogsConfigKey))
	if err != nil {
		return nil, err
	}

	mapper := typemap.New(typemap.WithNames(viper.GetStringMapString(typesConfigKey)))
	translator := domain.NewTranslator(mapper, rules.Default(), viper.GetInt(indentConfigKey))

	return domain.NewWorkflow(fsAdapter, csharpAdapter, reportStore, ui, translator, catalog), nil
}

// loadCatalog merges the catalog files at paths over the built-in catalog.
func loadCatalog(paths []string) (*semantic.Catalog, error) {
	catalog, err := semantic.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("load default catalog: %w", err)
	}

	extra := make([]*semantic.Catalog, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}

		parsed, err := semantic.ParseCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}

		extra = append(extra, parsed)
	}

	return catalog.Merge(extra...), nil
}
