package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"partyline/internal/app"
)

var (
	home       string
	passphrase string
	configPath string
	serverURL  string
	logLevel   string
	insecure   bool

	appCtx *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:          "partyline",
		Short:        "Signed party line client for a consensus contract server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".partyline")
			}

			path, optional := configPath, false
			if path == "" {
				path, optional = filepath.Join(home, app.ConfigFilename), true
			}
			cfg, err := app.LoadConfig(app.DefaultConfig(home), path, optional)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("server") {
				cfg.Server = serverURL
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("insecure") {
				cfg.InsecureSkipVerify = insecure
			}

			appCtx, err = app.NewWire(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.partyline)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys (optional)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (default <home>/config.toml)")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "contract server URL (default "+app.DefaultServer+")")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().BoolVar(&insecure, "insecure", true, "accept self-signed server certificates")

	root.AddCommand(initCmd(), fingerprintCmd(), connectCmd(), decodeCmd())
	return root.Execute()
}
