// Command cosmogony builds a hierarchical atlas of administrative zones
// from an OpenStreetMap PBF extract, or merges previously-built atlases.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/osm-without-borders/cosmogony/internal/logging"
)

// usageError marks a malformed invocation (bad flags, missing required
// input) so Execute can map it to exit code 2 instead of 1.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "cosmogony",
	Short:         "Build a typed, hierarchical atlas of administrative zones from OpenStreetMap",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// Execute runs the root command and terminates the process with the exit
// code spec §6 defines: 0 success, 1 I/O or parse error, 2 usage error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(os.Stderr, "usage error:", ue.Error())
		os.Exit(2)
	}
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}

func newLogger() (*zap.SugaredLogger, error) {
	log, err := logging.New(logLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.Sugar(), nil
}
