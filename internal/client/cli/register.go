package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) registerCommand() *cobra.Command {
	var email, phone string

	cmd := &cobra.Command{
		Use:         "register",
		Short:       "Issue a new credential digest for an email and phone",
		Args:        cobra.NoArgs,
		Annotations: remote(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = GetSimpleText(a.reader, "-Enter email", cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			if phone == "" {
				if phone, err = GetSimpleText(a.reader, "-Enter phone", cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			res, err := a.authService.Register(cmd.Context(), email, phone)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Registration successful")
			fmt.Fprintf(w, "Digest:    %s\n", res.Digest)
			fmt.Fprintf(w, "Backup:    %s\n", res.RetrievalURL)
			fmt.Fprintf(w, "Issued at: %s\n", res.IssuedAt.Format(time.RFC3339))
			fmt.Fprintln(w, "Keep the digest: it is required to log in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number (at least 10 digits)")
	return cmd
}
