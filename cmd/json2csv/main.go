// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/json2csv/internal/errinspect"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// A read blocked on stdin does not see the cancellation; restore the
	// default handler so a second interrupt terminates the process.
	context.AfterFunc(ctx, stop)

	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "json2csv [INPUT]",
		Short: "Convert a stream of JSON documents to CSV",
		Long: `json2csv converts whitespace-separated JSON documents into CSV rows.

The header is detected from the first documents of the input (see --samples)
or given with --fields. Nested values can be flattened into dotted columns and
one top-level array can be unwound into one row per element.

INPUT is a file path; when omitted or "-", standard input is read. Gzip, zstd
and lz4 input is detected and decompressed automatically.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	bindFlags(rootCmd.PersistentFlags(), opts)

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "convert [INPUT]",
			Short: "Convert JSON documents to CSV (default command)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, args, opts)
			},
		},
		&cobra.Command{
			Use:   "headers [INPUT]",
			Short: "Print the columns json2csv would write",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runHeaders(cmd, args, opts)
			},
		},
	)

	return rootCmd
}

func run(cmd *cobra.Command, args []string, opts *cliOptions) error {
	if opts.getHeaders {
		return runHeaders(cmd, args, opts)
	}
	return runConvert(cmd, args, opts)
}

// printError writes the error and, when one applies, a hint line.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprint(w, "Error:")
	fmt.Fprintf(w, " %v\n", err)

	if hint := errinspect.Hint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	inspector := errinspect.NewErrorChainInspector(errinspect.NewInspector())

	if inspector.IsInterrupted(err) {
		return 130 // Stopped by SIGINT or SIGTERM
	}

	if inspector.IsConfigError(err) {
		return 1 // Usage or configuration error
	}

	if inspector.IsDataError(err) {
		return 2 // Invalid input data
	}

	if inspector.IsIOError(err) {
		return 3 // Read or write failure
	}

	return 1 // General error
}
