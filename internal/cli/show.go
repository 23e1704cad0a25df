package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"xc60-deals/internal/app"
)

var (
	showLimit        int
	showRegistration string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the latest persisted deal ranking or one vehicle's history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showLimit <= 0 {
			return fmt.Errorf("--limit must be greater than zero")
		}

		opts := app.ShowOptions{
			Limit:        showLimit,
			Registration: showRegistration,
		}

		return getApp().Show(cmd.Context(), opts)
	},
}

func init() {
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "Number of rows to display")
	showCmd.Flags().StringVar(&showRegistration, "registration", "", "Show stored snapshots of one registration")
}
