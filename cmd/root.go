// Package cmd provides the root command and CLI setup for gnaw.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gnaw.dev/pkg/gnaw/internal/adapter"
	"gnaw.dev/pkg/gnaw/internal/controller"
	"gnaw.dev/pkg/gnaw/internal/domain"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

var goFileAdapter adapter.GoFileAdapter
var fsAdapter adapter.SourceFSAdapter
var testAdapter adapter.TestRunnerAdapter
var reportStore adapter.ReportStore
var sandbox domain.Sandbox
var engine domain.Engine
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// logVerboseFlag raises the log level to debug.
var logVerboseFlag bool

func init() {
	configureRootFlags(rootCmd)
	configureLogger("", viper.GetBool(logVerboseKey))

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	testAdapter = adapter.NewLocalTestRunnerAdapter()
	reportStore = adapter.NewReportStore()
	sandbox = domain.NewSandbox(fsAdapter, testAdapter)
	engine = domain.NewEngine(fsAdapter, goFileAdapter, sandbox, ui)
}

const rootLongDescription = `Gnaw is a mutation testing tool for Go that assesses the quality of a test
suite by introducing small changes (mutants) to source files and verifying
that the tests catch them. Each mutant runs against an isolated copy of the
module; the original files are never modified.`

const runLongDescription = `Run mutation testing against the given Go source files.

Each mutant is executed in a sandbox copy of the enclosing module with the
configured test command. A report per target is written to the reports
directory.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gnaw",
		Short: "Go mutation testing tool",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for mutation testing reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&logVerboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)
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
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
