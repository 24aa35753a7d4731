package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/smartnav/pkg/logger"
)

var (
	version = "dev"     // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "smartnav",
		Short: "smartnav renders navigation menus from declarative trees",
		Long: `smartnav reads a site document describing a nested navigation menu and
renders it as HTML lists, either once for a given page or for every request
of a small HTTP server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.SetDefaultLogger(cmd.Root().Name(), version)
		},
	}

	root.AddCommand(newRenderCmd(), newServeCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.NewStructuredLogger("smartnav", version, os.Getenv(logger.EnvVarLogLevel)).
			Error("command failed", "error", err, "commit", commit, "date", date)
		os.Exit(1)
	}
}
