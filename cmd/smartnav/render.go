package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/smartnav/pkg/host"
	"github.com/mchmarny/smartnav/pkg/site"
)

func newRenderCmd() *cobra.Command {
	var (
		sitePath string
		pagePath string
		outFile  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the navigation of one page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := site.Load(sitePath)
			if err != nil {
				return err
			}

			h, err := host.New(pagePath, s.Funcs)
			if err != nil {
				return err
			}

			nav, err := s.Navigation(h)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", pagePath, err)
			}

			if outFile == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), nav)
				return err
			}

			if err := os.WriteFile(outFile, []byte(nav+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing file failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&sitePath, "site", "site.yaml", "Site document with the menu tree")
	cmd.Flags().StringVar(&pagePath, "path", "/", "Path of the page the menu is rendered for")
	cmd.Flags().StringVar(&outFile, "out", "", "Output file path (stdout when empty)")

	return cmd
}
