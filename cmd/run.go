package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gnaw.dev/pkg/gnaw/internal/domain"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

var (
	runParallelFlag    int
	runTestCommandFlag string
	runOperatorsFlag   []string
	runFunctionsFlag   []string
	runMaxMutantsFlag  int
	runTimeoutFlag     int
	runSeedFlag        int64
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file.go> [more files...]",
		Short: "Run mutation testing",
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := parsePaths(args)

			// Only an explicitly passed seed switches to sampled selection.
			var seed *int64
			if cmd.Flags().Changed(seedFlagName) {
				seed = &runSeedFlag
			}

			runArgs := domain.RunArgs{
				TestCommand:     viper.GetString(testCommandConfigKey),
				OperatorNames:   viper.GetStringSlice(operatorsConfigKey),
				TargetFunctions: viper.GetStringSlice(functionsConfigKey),
				MaxMutants:      viper.GetInt(maxMutantsConfigKey),
				Timeout:         configTimeout(),
				Seed:            seed,
			}

			reports, err := engine.RunAll(cmd.Context(), targets, runArgs, viper.GetInt(runParallelConfigKey))

			ui.Close()

			if err != nil {
				return err
			}

			reportsDir := m.Path(viper.GetString(outputFlagName))

			for _, report := range reports {
				if _, err := reportStore.SaveReport(reportsDir, report); err != nil {
					return fmt.Errorf("save report for %s: %w", report.TargetPath, err)
				}

				ui.DisplayReport(report)
			}

			return nil
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of targets tested in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().StringVarP(&runTestCommandFlag, testCommandFlagName, "c", viper.GetString(testCommandConfigKey), "shell command that runs the test suite")
	bindFlagToConfig(cmd.Flags().Lookup(testCommandFlagName), testCommandConfigKey)

	cmd.Flags().StringSliceVar(&runOperatorsFlag, operatorsFlagName, viper.GetStringSlice(operatorsConfigKey), "mutation operators to apply (default: all)")
	bindFlagToConfig(cmd.Flags().Lookup(operatorsFlagName), operatorsConfigKey)

	cmd.Flags().StringSliceVar(&runFunctionsFlag, functionsFlagName, viper.GetStringSlice(functionsConfigKey), "restrict mutations to these functions")
	bindFlagToConfig(cmd.Flags().Lookup(functionsFlagName), functionsConfigKey)

	cmd.Flags().IntVar(&runMaxMutantsFlag, maxMutantsFlagName, viper.GetInt(maxMutantsConfigKey), "maximum mutants tested per target")
	bindFlagToConfig(cmd.Flags().Lookup(maxMutantsFlagName), maxMutantsConfigKey)

	cmd.Flags().IntVar(&runTimeoutFlag, timeoutFlagName, viper.GetInt(timeoutConfigKey), "per-mutant test timeout in seconds")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), timeoutConfigKey)

	cmd.Flags().Int64Var(&runSeedFlag, seedFlagName, 0, "seed for reproducible mutant sampling under the cap")
}
