package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/tackify/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg := web.DefaultConfig()
			if configPath != "" {
				loaded, err := web.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			return web.New(cfg, logger).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	return cmd
}
