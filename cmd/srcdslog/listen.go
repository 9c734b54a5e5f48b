package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
)

var (
	// listen flags
	listenAddr         string
	listenFormat       string
	listenTypes        []string
	listenExcludeTypes []string
	listenRaw          bool
	listenSecret       string
	listenPatterns     []string
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive forwarded log lines over UDP and output events",
	Long: `Listen for log lines forwarded by a Source dedicated server and output
parsed events.

Point the server at this machine with:
  logaddress_add <ip>:<port>

Events are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq.

Examples:
  # Listen on the default port
  srcdslog listen

  # Listen on a specific address
  srcdslog listen --addr 0.0.0.0:27500

  # Only chat and connect/disconnect events
  srcdslog listen --types chat,player_connected,player_disconnected

  # Verify the server's sv_logsecret
  srcdslog listen --secret hunter2

  # Human-readable output
  srcdslog listen --format pretty

  # Pipe to jq for filtering
  srcdslog listen | jq 'select(.type == "chat")'`,
	RunE: runListen,
}

func init() {
	listenCmd.Flags().StringVarP(&listenAddr, "addr", "a", ":27500",
		"UDP address to listen on")
	listenCmd.Flags().StringVarP(&listenFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	listenCmd.Flags().StringSliceVarP(&listenTypes, "types", "t", nil,
		"Event types to show (comma-separated: chat,player_connected,...)")
	listenCmd.Flags().StringSliceVar(&listenExcludeTypes, "exclude-types", nil,
		"Event types to hide (comma-separated)")
	listenCmd.Flags().BoolVar(&listenRaw, "raw", false,
		"Include raw log lines in output")
	listenCmd.Flags().StringVar(&listenSecret, "secret", "",
		"Expected sv_logsecret value; lines with a different secret are rejected")
	listenCmd.Flags().StringSliceVarP(&listenPatterns, "pattern", "p", nil,
		"YAML pattern file for custom event types (repeatable)")
	_ = listenCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runListen(cmd *cobra.Command, args []string) error {
	if !ValidFormats[listenFormat] {
		return fmt.Errorf("unknown format: %s", listenFormat)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := buildCommonOptions(listenTypes, listenExcludeTypes, listenRaw, listenSecret, listenPatterns)
	if err != nil {
		return err
	}

	events, errs, err := srcdslog.ListenWithOptions(ctx, listenAddr, opts...)
	if err != nil {
		return err
	}

	return outputLoop(ctx, listenFormat, events, errs)
}

// buildCommonOptions turns the flag values shared by listen/tail/parse into
// library options.
func buildCommonOptions(types, excludeTypes []string, raw bool, secret string, patterns []string) ([]srcdslog.Option, error) {
	includes, err := NormalizeEventTypes(types)
	if err != nil {
		return nil, err
	}
	excludes, err := NormalizeEventTypes(excludeTypes)
	if err != nil {
		return nil, err
	}
	if err := RejectOverlap(includes, excludes); err != nil {
		return nil, err
	}

	opts := []srcdslog.Option{
		srcdslog.WithFilter(includes, excludes),
		srcdslog.WithIncludeRawLine(raw),
	}
	if secret != "" {
		opts = append(opts, srcdslog.WithExpectedSecret(secret))
	}
	if logger := buildLogger(); logger != nil {
		opts = append(opts, srcdslog.WithLogger(logger))
	}

	p, err := buildParser(patterns)
	if err != nil {
		return nil, err
	}
	if p != nil {
		opts = append(opts, srcdslog.WithParser(p))
	}

	return opts, nil
}

// outputLoop drains the event and error channels until both close or the
// context ends.
func outputLoop(ctx context.Context, format string, events <-chan srcdslog.Event, errs <-chan error) error {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil // Channel closed
			}
			if err := OutputEvent(format, event, os.Stdout); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil // Channel closed
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}

		case <-ctx.Done():
			return nil
		}
	}
}
