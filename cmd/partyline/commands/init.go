package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a signing identity and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := appCtx.Identities.Exists()
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("identity already exists in %s (use --force to rotate)", appCtx.Config.Home)
			}
			id, fp, err := appCtx.IDs.GenerateIdentity(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Identity created.\nPublic key: %s\nFingerprint: %s\n", id.PublicKeyEncoded(), fp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing identity")
	return cmd
}
