package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neoflux-dev/neoflux/internal/diag"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┐┌┌─┐┌─┐┌─┐┬  ┬ ┬─┐ ┬
  │││├┤ │ │├┤ │  │ │┌┴┬┘
  ┘└┘└─┘└─┘└  ┴─┘└─┘┴ └─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "neoflux",
		Short: "Tooling for the neoflux reactive state engine",
		Long: `Neoflux is a fine-grained reactive state engine for Go.

This CLI ships the tooling around it:

  • bench     — propagation latency across graph topologies
  • inspect   — live dependency-graph inspector with WebSocket feed
  • store     — move store snapshots between files and backends
  • demo      — a small reactive graph you can watch run`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		benchCmd(),
		inspectCmd(),
		storeCmd(),
		demoCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var d *diag.Diagnostic
		if errors.As(err, &d) {
			fmt.Fprint(os.Stderr, d.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the neoflux ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
