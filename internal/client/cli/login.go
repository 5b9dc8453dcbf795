package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pinkeeper/internal/common"
	"github.com/dmitrijs2005/pinkeeper/internal/cryptox"
	"github.com/spf13/cobra"
)

var (
	ErrNotVerified  = errors.New("digest not verified")
	ErrDigestFormat = fmt.Errorf("digest must be %d lowercase hex characters", cryptox.DigestLength)
)

func (a *App) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [digest]",
		Short: "Verify a credential digest against the active local record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var candidate string
			if len(args) == 1 {
				candidate = args[0]
			} else {
				secret, err := GetSecret(cmd.OutOrStdout(), "Enter digest")
				if err != nil {
					return err
				}
				candidate = string(secret)
				common.WipeByteArray(secret)
			}
			candidate = strings.TrimSpace(candidate)

			if !cryptox.IsDigest(candidate) {
				return ErrDigestFormat
			}

			ok, err := a.authService.Login(cmd.Context(), candidate)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if !ok {
				return ErrNotVerified
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Login successful")
			return nil
		},
	}
}
