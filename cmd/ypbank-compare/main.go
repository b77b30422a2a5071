// Command ypbank-compare reports whether two transaction files, possibly in
// different formats, hold the same records in the same order.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/LerianStudio/lib-ypbank/ypbank"
	"github.com/LerianStudio/lib-ypbank/ypbank/compare"
	"github.com/LerianStudio/lib-ypbank/ypbank/format"
	"github.com/LerianStudio/lib-ypbank/internal/cli"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

const commandName = "ypbank-compare"

type options struct {
	file1    string
	format1  string
	file2    string
	format2  string
	logLevel string
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          commandName,
		Short:        "Compare two YPBank transaction files record by record",
		Long:         "Compare two YPBank transaction files record by record. Differences are reported on stdout and do not change the exit code.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&opts.file1, "file1", "", "path of the first file")
	cli.AddFormatFlag(cmd, &opts.format1, "format1", "format of the first file")
	cmd.Flags().StringVar(&opts.file2, "file2", "", "path of the second file")
	cli.AddFormatFlag(cmd, &opts.format2, "format2", "format of the second file")
	cli.AddLogLevelFlag(cmd, &opts.logLevel)

	_ = cmd.MarkFlagRequired("file1")
	_ = cmd.MarkFlagRequired("file2")

	return cmd
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) (err error) {
	format1, err := cli.ParseFormat("format1", opts.format1)
	if err != nil {
		return err
	}

	format2, err := cli.ParseFormat("format2", opts.format2)
	if err != nil {
		return err
	}

	ctx, r, err := cli.Start(ctx, commandName, opts.logLevel, stderr,
		attribute.String("ypbank.format1", format1.String()),
		attribute.String("ypbank.format2", format2.String()),
	)
	if err != nil {
		return err
	}

	defer func() { r.Finish(ctx, err) }()

	logger := ypbank.NewLoggerFromContext(ctx)

	left, err := format.Load(ctx, logger, opts.file1, format1)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.file1, err)
	}

	right, err := format.Load(ctx, logger, opts.file2, format2)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.file2, err)
	}

	result := compare.Transactions(left, right)

	return compare.WriteReport(ctx, logger, stdout, compare.Labels{Left: opts.file1, Right: opts.file2}, result)
}
