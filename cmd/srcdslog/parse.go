package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
)

var (
	// parse flags
	parseFormat       string
	parseTypes        []string
	parseExcludeTypes []string
	parseRaw          bool
	parseSecret       string
	parsePatterns     []string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Parse saved log files and output events",
	Long: `Parse saved Source dedicated server log files and output parsed events.
Reads from stdin when no files are given.

Examples:
  # Parse a saved log file
  srcdslog parse /srv/tf2/tf/logs/L0209000.log

  # Parse several files in order
  srcdslog parse logs/L0209000.log logs/L0209001.log

  # Parse from stdin
  cat console.log | srcdslog parse

  # Count chat lines per player
  srcdslog parse console.log --types chat | jq -r '.player.name' | sort | uniq -c`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	parseCmd.Flags().StringSliceVarP(&parseTypes, "types", "t", nil,
		"Event types to show (comma-separated: chat,player_connected,...)")
	parseCmd.Flags().StringSliceVar(&parseExcludeTypes, "exclude-types", nil,
		"Event types to hide (comma-separated)")
	parseCmd.Flags().BoolVar(&parseRaw, "raw", false,
		"Include raw log lines in output")
	parseCmd.Flags().StringVar(&parseSecret, "secret", "",
		"Expected sv_logsecret value; lines with a different secret are skipped")
	parseCmd.Flags().StringSliceVarP(&parsePatterns, "pattern", "p", nil,
		"YAML pattern file for custom event types (repeatable)")
	_ = parseCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runParse(cmd *cobra.Command, args []string) error {
	if !ValidFormats[parseFormat] {
		return fmt.Errorf("unknown format: %s", parseFormat)
	}

	opts, err := buildCommonOptions(parseTypes, parseExcludeTypes, parseRaw, parseSecret, parsePatterns)
	if err != nil {
		return err
	}

	emit := func(ev srcdslog.Event) error {
		return OutputEvent(parseFormat, ev, os.Stdout)
	}

	if verbose {
		opts = append(opts, srcdslog.WithErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}))
	}

	ctx := context.Background()

	if len(args) == 0 {
		return srcdslog.ParseReader(ctx, os.Stdin, emit, opts...)
	}

	for _, path := range args {
		if err := srcdslog.ParseFile(ctx, path, emit, opts...); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
