package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesyncim/vlc"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print vlcplay and libvlc versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vlcplay %s (commit: %s, built: %s)\n", version, commit, buildDate)
			if !vlc.IsAvailable() {
				fmt.Fprintln(out, "libvlc: not available")
				return nil
			}
			fmt.Fprintf(out, "libvlc: %s (%s)\n", vlc.Version(), vlc.Compiler())
			return nil
		},
	}
}
