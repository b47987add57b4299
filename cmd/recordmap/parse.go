package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"record-mapper/internal/logctx"
	"record-mapper/internal/parser"
	"record-mapper/internal/recordio"
	"record-mapper/internal/stream"
)

// jsonRecord is one line of parse output and format input.
type jsonRecord struct {
	Record string        `json:"record"`
	Line   int           `json:"line,omitempty"`
	Values parser.Values `json:"values"`
}

func newParseCmd(a *app) *cobra.Command {
	var (
		output    string
		keepGoing bool
	)

	cmd := &cobra.Command{
		Use:   "parse [input-file]",
		Short: "Read a flat file and write one JSON object per record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := logctx.FromContext(ctx)

			lf, err := a.loadLayout(ctx, a.cfg.Layout)
			if err != nil {
				return err
			}

			def, err := a.selectStream(lf)
			if err != nil {
				return err
			}

			in, err := openInput(cmd, first(args))
			if err != nil {
				return err
			}

			r, err := stream.NewReader(ctx, def, in)
			if err != nil {
				_ = in.Close()
				return err
			}
			defer r.Close()

			out, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			defer out.Close()

			enc := json.NewEncoder(out)
			count, failed := 0, 0

			for {
				rec, err := r.Read()
				if errors.Is(err, io.EOF) {
					break
				}

				if err != nil {
					if !keepGoing || !recoverable(err) {
						return err
					}

					failed++
					logger.Warn("skipping bad record", slog.Any("error", err))

					continue
				}

				if err := enc.Encode(jsonRecord{Record: rec.Name, Line: rec.Line, Values: rec.Values}); err != nil {
					return fmt.Errorf("failed to write record: %w", err)
				}

				count++
			}

			logger.Info("parsed", slog.Int("records", count), slog.Int("failed", failed), slog.Int("skipped", r.Skipped()))

			if failed > 0 {
				return fmt.Errorf("%d records could not be parsed", failed)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue after bad records")

	return cmd
}

// recoverable is true for errors after which the reader can continue.
func recoverable(err error) bool {
	var ioe *recordio.RecordIOError
	if errors.As(err, &ioe) {
		return ioe.IsMalformed()
	}

	return true
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
