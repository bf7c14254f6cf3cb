package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteTreeDefinitions prints rating tree definitions using the configured output format.
func WriteTreeDefinitions(defs []schema.TreeDefinition, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTreesCSV(w, defs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTreesTable(w, defs, cfg)
		}, "Wrote table")
	}
}

func writeTreesCSV(w io.Writer, defs []schema.TreeDefinition) error {
	header := []string{"tree", "position", "depth", "label", "weight", "leaf"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, def := range defs {
			for pos, n := range def.Nodes {
				record := []string{
					def.Name,
					strconv.Itoa(pos),
					strconv.Itoa(n.Depth),
					n.Label,
					strconv.FormatFloat(n.Weight, 'f', -1, 64),
					strconv.FormatBool(n.Leaf),
				}
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}

func writeTreesTable(w io.Writer, defs []schema.TreeDefinition, cfg *contract.Config) error {
	maxWidth := getMaxTableLabelWidth(cfg, 1)
	for _, def := range defs {
		if _, err := fmt.Fprintf(w, "🌳 %s (depth %d, %d leaves)\n", def.Name, def.Depth, len(def.Leaves)); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Weight", "Label"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})
		var data [][]string
		for _, n := range def.Nodes {
			data = append(data, []string{
				strconv.FormatFloat(n.Weight, 'f', -1, 64),
				indentLabel(n.Label, n.Depth, maxWidth),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}
