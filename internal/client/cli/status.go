package cli

import (
	"fmt"

	"github.com/dmitrijs2005/pinkeeper/internal/client/client"
	"github.com/spf13/cobra"
)

func (a *App) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.authService.Status(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if rec == nil {
				fmt.Fprintln(w, "No active credential")
				return nil
			}
			fmt.Fprintf(w, "Identity:  %s\n", rec.Identity)
			fmt.Fprintf(w, "Issued at: %s\n", rec.IssuedAt.Format("2006-01-02T15:04:05.000Z07:00"))
			fmt.Fprintf(w, "Revision:  %d\n", rec.Revision)
			fmt.Fprintf(w, "Backup:    %s\n", rec.RetrievalURL)
			return nil
		},
	}
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the active credential (records are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.authService.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *App) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "ping",
		Short:       "Check that the backup service accepts the configured credentials",
		Args:        cobra.NoArgs,
		Annotations: remote(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.authService.Ping(cmd.Context()) {
				return client.ErrUnavailable
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Backup service reachable")
			return nil
		},
	}
}
