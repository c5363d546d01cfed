package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the encoded public key and fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.IDs.LoadIdentity(passphrase)
			if err != nil {
				return err
			}
			fp, err := appCtx.IDs.FingerprintIdentity(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Public key: %s\nFingerprint: %s\n", id.PublicKeyEncoded(), fp)
			return nil
		},
	}
}
