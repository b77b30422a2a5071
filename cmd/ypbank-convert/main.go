// Command ypbank-convert reads a transaction file in one format and writes
// the same records to stdout in another.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/LerianStudio/lib-ypbank/ypbank"
	"github.com/LerianStudio/lib-ypbank/ypbank/format"
	"github.com/LerianStudio/lib-ypbank/internal/cli"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

const commandName = "ypbank-convert"

type options struct {
	input        string
	inputFormat  string
	outputFormat string
	logLevel     string
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
		Short:        "Convert YPBank transaction records between text, CSV and binary formats",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&opts.input, "input", "", "path of the file to convert")
	cli.AddFormatFlag(cmd, &opts.inputFormat, "input-format", "format of the input file")
	cli.AddFormatFlag(cmd, &opts.outputFormat, "output-format", "format written to stdout")
	cli.AddLogLevelFlag(cmd, &opts.logLevel)

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) (err error) {
	inputFormat, err := cli.ParseFormat("input-format", opts.inputFormat)
	if err != nil {
		return err
	}

	outputFormat, err := cli.ParseFormat("output-format", opts.outputFormat)
	if err != nil {
		return err
	}

	ctx, r, err := cli.Start(ctx, commandName, opts.logLevel, stderr,
		attribute.String("ypbank.input_format", inputFormat.String()),
		attribute.String("ypbank.output_format", outputFormat.String()),
	)
	if err != nil {
		return err
	}

	defer func() { r.Finish(ctx, err) }()

	logger := ypbank.NewLoggerFromContext(ctx)

	txs, err := format.Load(ctx, logger, opts.input, inputFormat)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.input, err)
	}

	if err := format.Write(ctx, logger, stdout, outputFormat, txs); err != nil {
		return fmt.Errorf("write %s output: %w", outputFormat, err)
	}

	return nil
}
