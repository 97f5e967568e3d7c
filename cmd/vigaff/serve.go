package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigaff/internal/server"
)

const defaultServeAddr = server.DefaultAddr

var (
	serveAddr         string
	serveAllowOrigins []string
	serveTimeout      time.Duration
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cipher and attacks over an HTTP JSON API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().StringSliceVar(&serveAllowOrigins, "allow-origins", nil, "CORS origins (default: any)")
	cmd.Flags().DurationVar(&serveTimeout, "timeout", server.DefaultTimeout, "per-request time limit")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyStringSliceConfig(cmd, "allow-origins", &serveAllowOrigins, fileCfg.Server.AllowOrigins)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	return server.Run(server.Options{
		Addr:         serveAddr,
		AllowOrigins: serveAllowOrigins,
		Timeout:      serveTimeout,
		Keys:         st,
	})
}
