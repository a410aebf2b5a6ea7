package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gnaw.dev/pkg/gnaw/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <file.go> [more files...]",
		Short: "List applicable mutants without executing them",
		Long: `Generate the full mutant set for each target and show how many mutants
each operator would produce, without running any tests.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, target := range parsePaths(args) {
				estimation, err := engine.Estimate(domain.RunArgs{
					TargetPath:      target,
					OperatorNames:   viper.GetStringSlice(operatorsConfigKey),
					TargetFunctions: viper.GetStringSlice(functionsConfigKey),
				})
				if err != nil {
					return err
				}

				ui.DisplayEstimation(estimation)
			}

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
