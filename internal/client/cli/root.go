package cli

import (
	"github.com/dmitrijs2005/pinkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/pinkeeper/internal/client/config"
	"github.com/spf13/cobra"
)

const (
	annotationRemote    = "pinkeeper/remote"
	annotationNoService = "pinkeeper/no-service"
)

// RootCommand assembles the command tree. Persistent flags are bound to
// a.config, so they override file and environment settings.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pinkeeper",
		Short:         "Issue and verify identity-bound credential digests",
		Long:          `pinkeeper derives a SHA-256 credential digest from an email, a phone number and the current time, mirrors it to a remote backup service and keeps it locally for later verification.`,
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, remote := cmd.Annotations[annotationRemote]
			_, noService := cmd.Annotations[annotationNoService]
			return a.setup(cmd.Context(), remote, !noService)
		},
	}

	config.BindFlags(root.PersistentFlags(), a.config)

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.statusCommand(),
		a.logoutCommand(),
		a.pingCommand(),
		a.versionCommand(),
	)
	return root
}

func remote() map[string]string {
	return map[string]string{annotationRemote: "true"}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoService: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
