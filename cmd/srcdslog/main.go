// Command srcdslog decodes Source dedicated server logs: it can listen for
// UDP-forwarded lines (logaddress_add), follow a server's local log files,
// or parse saved logs in batch.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "srcdslog",
	Short: "Decode Source dedicated server logs",
	Long: `srcdslog decodes Source engine dedicated server logs (TF2, CS:S, etc.)
into structured events.

Log lines are decoded in two stages: the wire framing (line marker, optional
log secret, timestamp) and the message body grammar (chat, connects, map
changes, rcon and more). Lines that match no known shape can be handled with
custom YAML pattern files.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Print warnings and debug output to stderr")
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(tailCmd)
	rootCmd.AddCommand(parseCmd)
}

// buildLogger returns a logger for library debug output, or nil when not
// verbose (the library then discards its logs).
func buildLogger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
