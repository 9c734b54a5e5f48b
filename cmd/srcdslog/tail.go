package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
)

var (
	// tail flags
	tailLogDir       string
	tailFormat       string
	tailTypes        []string
	tailExcludeTypes []string
	tailRaw          bool
	tailFromStart    bool
	tailPollInterval time.Duration
	tailPatterns     []string
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow a server's local log files and output events",
	Long: `Follow a Source dedicated server's local console log files in real-time
and output parsed events.

The server opens a fresh log file on every map change; tail detects the
rotation and switches to the newest file automatically.

Events are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq.

Examples:
  # Follow logs in a specific directory
  srcdslog tail --log-dir /srv/tf2/tf/logs

  # Use the SRCDSLOG_LOGDIR environment variable
  export SRCDSLOG_LOGDIR=/srv/tf2/tf/logs
  srcdslog tail

  # Only chat events, human-readable
  srcdslog tail --types chat --format pretty

  # Replay the current log file from the start
  srcdslog tail --from-start

  # Pipe to jq for filtering
  srcdslog tail | jq 'select(.type == "player_connected")'`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVarP(&tailLogDir, "log-dir", "d", "",
		"Server log directory (defaults to $SRCDSLOG_LOGDIR)")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	tailCmd.Flags().StringSliceVarP(&tailTypes, "types", "t", nil,
		"Event types to show (comma-separated: chat,player_connected,...)")
	tailCmd.Flags().StringSliceVar(&tailExcludeTypes, "exclude-types", nil,
		"Event types to hide (comma-separated)")
	tailCmd.Flags().BoolVar(&tailRaw, "raw", false,
		"Include raw log lines in output")
	tailCmd.Flags().BoolVar(&tailFromStart, "from-start", false,
		"Read the current log file from the beginning before tailing")
	tailCmd.Flags().DurationVar(&tailPollInterval, "poll-interval", 2*time.Second,
		"How often to check for log rotation")
	tailCmd.Flags().StringSliceVarP(&tailPatterns, "pattern", "p", nil,
		"YAML pattern file for custom event types (repeatable)")
	_ = tailCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runTail(cmd *cobra.Command, args []string) error {
	if !ValidFormats[tailFormat] {
		return fmt.Errorf("unknown format: %s", tailFormat)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := buildCommonOptions(tailTypes, tailExcludeTypes, tailRaw, "", tailPatterns)
	if err != nil {
		return err
	}
	opts = append(opts,
		srcdslog.WithLogDir(tailLogDir),
		srcdslog.WithPollInterval(tailPollInterval),
	)
	if tailFromStart {
		opts = append(opts, srcdslog.WithReplayFromStart())
	}

	events, errs, err := srcdslog.FollowWithOptions(ctx, opts...)
	if err != nil {
		return err
	}

	return outputLoop(ctx, tailFormat, events, errs)
}
