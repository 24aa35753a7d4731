package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mchmarny/smartnav/pkg/server"
	"github.com/mchmarny/smartnav/pkg/site"
)

func newServeCmd() *cobra.Command {
	var (
		sitePath string
		port     int
		tlsCert  string
		tlsKey   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages with the navigation rendered per request",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := site.Load(sitePath)
			if err != nil {
				return err
			}

			opts := []server.Option{server.WithPort(port)}
			if tlsCert != "" || tlsKey != "" {
				opts = append(opts, server.WithTLS(server.TLSConfig{CertFile: tlsCert, KeyFile: tlsKey}))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return s.Run(ctx, opts...)
		},
	}

	cmd.Flags().StringVar(&sitePath, "site", "site.yaml", "Site document with the menu tree")
	cmd.Flags().IntVar(&port, "port", server.DefaultPort, "Port to run the server on")
	cmd.Flags().StringVar(&tlsCert, "tls-cert", "", "TLS certificate file")
	cmd.Flags().StringVar(&tlsKey, "tls-key", "", "TLS key file")

	return cmd
}
