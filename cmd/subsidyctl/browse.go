package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"subsidy-dashboard/internal/tui"
)

func (a *app) browseCmd() *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive terminal dashboard",
		Long: `Browse recipients, merchants and transactions in a full-screen dashboard.

Keys: tab switches page, enter opens the detail dialog, / searches,
w cycles the transaction date window, a and x approve or reject the
selected pending transaction, r refreshes and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Logs would corrupt the alternate screen.
			f, err := tea.LogToFile(logFile, "subsidyctl")
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()

			svc, err := a.services()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), svc)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "subsidyctl.log", "where log output goes while the dashboard is open")
	return cmd
}
