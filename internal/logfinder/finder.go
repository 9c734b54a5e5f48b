// Package logfinder locates Source dedicated server console log files.
//
// With "log on" the server writes one file per map under <mod>/logs
// (L0209000.log, L0209001.log, ...); with con_logfile it appends to a
// single console.log. There is no portable default install location, so
// the directory must come from the caller or the environment.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvLogDir is the environment variable name for specifying the log
// directory.
const EnvLogDir = "SRCDSLOG_LOGDIR"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// logGlobs are the file name patterns the server writes, in match order.
var logGlobs = []string{"L*.log", "console.log"}

// FindLogDir returns the server log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. SRCDSLOG_LOGDIR environment variable
//
// Returns ErrLogDirNotFound if neither is set or the directory is invalid.
// The returned path has symlinks resolved for consistency.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveLogDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory is invalid", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveLogDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	return "", fmt.Errorf("%w: set a log directory explicitly or via %s", ErrLogDirNotFound, EnvLogDir)
}

// logCandidate holds a log file path and its cached modification time.
// This avoids race conditions where files are deleted between stat and sort.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLatestLogFile returns the path to the most recently modified log file
// in the given directory. The server opens a fresh file on every map change,
// so "most recent" tracks the live log.
//
// Returns ErrNoLogFiles if no log files are found.
func FindLatestLogFile(dir string) (string, error) {
	var matches []string
	for _, glob := range logGlobs {
		m, err := filepath.Glob(filepath.Join(dir, glob))
		if err != nil {
			return "", fmt.Errorf("globbing log files: %w", err)
		}
		matches = append(matches, m...)
	}

	if len(matches) == 0 {
		return "", ErrNoLogFiles
	}

	// Stat files once and cache results to avoid race conditions
	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			// Skip files that can't be stat'd (deleted, permission issues)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, logCandidate{
			path:    m,
			modTime: info.ModTime().UnixNano(),
		})
	}

	if len(candidates) == 0 {
		return "", ErrNoLogFiles
	}

	// Sort by cached modification time (newest first)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})

	return candidates[0].path, nil
}

// resolveLogDir resolves symlinks and validates the directory.
// Returns the resolved path if valid, empty string otherwise.
func resolveLogDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}
	return resolved
}
