package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously generated mutation reports",
		Long:  "View previously generated mutation reports from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			reports, err := reportStore.LoadReports(m.Path(viper.GetString(outputFlagName)))
			if err != nil {
				return err
			}

			for _, report := range reports {
				ui.DisplayReport(report)
			}

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
