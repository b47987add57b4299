package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"record-mapper/internal/logctx"
	"record-mapper/internal/stream"
)

func newFormatCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "format [input-file]",
		Short: "Read JSON records and write them as a flat file",
		Long: `Read JSON objects of the form {"record": "name", "values": {...}}, as written
by the parse command, and write them with the selected stream's layout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()

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
			defer in.Close()

			out, err := openOutput(cmd, output)
			if err != nil {
				return err
			}

			w, err := stream.NewWriter(ctx, def, out)
			if err != nil {
				_ = out.Close()
				return err
			}

			defer func() {
				err = errors.Join(err, w.Close())
			}()

			dec := json.NewDecoder(in)
			count := 0

			for {
				var rec jsonRecord

				if err := dec.Decode(&rec); err != nil {
					if errors.Is(err, io.EOF) {
						break
					}

					return fmt.Errorf("record %d: invalid JSON: %w", count+1, err)
				}

				if err := w.Write(rec.Record, rec.Values); err != nil {
					return fmt.Errorf("record %d: %w", count+1, err)
				}

				count++
			}

			logctx.FromContext(ctx).Info("formatted", slog.Int("records", count))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
