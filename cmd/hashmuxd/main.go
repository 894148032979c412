package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hashmuxd",
		Short: "Route-table HTTP server with content negotiation",
		Long: `hashmuxd serves a demonstration route table built on the hashmux
dispatch core: declaration-ordered route keys in <path>[#<method>] form,
pattern path variables, negotiated request and response bodies, and a
self-describing endpoint listing the table.

Configuration comes from HASHMUX_* environment variables; run
"hashmuxd serve --help" for the flag overrides.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
