package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"record-mapper/internal/layout"
	"record-mapper/internal/mapping"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newLayoutCmd(a *app) *cobra.Command {
	var dump, asYAML bool

	cmd := &cobra.Command{
		Use:   "layout [layout-file]",
		Short: "Print the resolved positions and sizes of each record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := a.loadLayout(cmd.Context(), a.layoutPath(args))
			if err != nil {
				return err
			}

			def, err := a.selectStream(lf)
			if err != nil {
				return err
			}

			s, err := layout.Compile(def)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if asYAML {
				data, err := mapping.Marshal(&mapping.LayoutFile{Version: lf.Version, Streams: []mapping.StreamDef{*def}})
				if err != nil {
					return err
				}

				_, err = out.Write(data)

				return err
			}

			for _, rec := range s.Records {
				if dump {
					dumpConfig.Fdump(out, rec.Nodes)
					continue
				}

				printRecord(out, rec)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the resolved nodes")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the selected stream as a normalized layout file")
	cmd.MarkFlagsMutuallyExclusive("dump", "yaml")

	return cmd
}

func printRecord(w io.Writer, rec *layout.Record) {
	mode := "default"
	if rec.Explicit {
		mode = "explicit"
	}

	fmt.Fprintf(w, "record %s (%s positions, size %s)\n", rec.Name, mode, sizeRange(rec.MinSize, rec.MaxSize))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Property", "Kind", "Type", "Position", "Size", "Occurs", "Until"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	rec.Walk(func(n *layout.Node, depth int) {
		typ := ""
		if n.Kind != layout.KindSegment {
			typ = n.Type.String()
		}

		until := ""
		if n.HasUntil {
			until = strconv.Itoa(n.Until)
		}

		table.Append([]string{
			strings.Repeat("  ", depth) + n.Name,
			n.Kind.String(),
			typ,
			strconv.Itoa(n.Position),
			sizeRange(n.MinSize, n.MaxSize),
			occurs(rec, n),
			until,
		})
	})

	table.Render()
}

func bound(n int) string {
	if n == layout.Unbounded {
		return "*"
	}

	return strconv.Itoa(n)
}

func sizeRange(lo, hi int) string {
	if lo == hi {
		return bound(lo)
	}

	return bound(lo) + ".." + bound(hi)
}

func occurs(rec *layout.Record, n *layout.Node) string {
	s := sizeRange(n.MinOccurs, n.MaxOccurs)
	if n.OccursRef != layout.NoNode {
		s += " (" + rec.Node(n.OccursRef).Path.String() + ")"
	}

	return s
}
