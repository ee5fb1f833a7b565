package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subsidy-dashboard/internal/auth"
)

func (a *app) tokenCmd() *cobra.Command {
	var userID, name, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed operator token with the configured JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch role {
			case auth.RoleAdmin, auth.RoleOperator, auth.RoleViewer:
			default:
				return fmt.Errorf("unknown role %q (want admin, operator or viewer)", role)
			}
			token, err := auth.NewJWTManager(a.cfg).GenerateToken(userID, name, role)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the token")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", auth.RoleOperator, "admin, operator or viewer")
	return cmd
}
