package outwriter

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/mediascore/schema"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// WriteHistoryStatus prints build history status information.
func WriteHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Builds: %d\n", status.TotalBuilds)
	if status.TotalBuilds > 0 {
		_, _ = fmt.Fprintf(w, "Last Build ID: %d\n", status.LastBuildID)
		_, _ = fmt.Fprintf(w, "Last Build: %s\n", status.LastBuildTime.Format(statusTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Build: %s\n", status.OldestBuild.Format(statusTimeFormat))
		_, _ = fmt.Fprintf(w, "Total Documents Rated: %d\n", status.TotalDocuments)
	}
	writeTableSizes(w, status.TableSizes)
}

// WriteDocumentStatus prints document store status information.
func WriteDocumentStatus(w io.Writer, status schema.DocumentStoreStatus) {
	_, _ = fmt.Fprintf(w, "Document Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Migration Version: %d\n", status.Version)
	writeTableSizes(w, status.TableSizes)
}

func writeTableSizes(w io.Writer, sizes map[string]int64) {
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(sizes))
	for table := range sizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, sizes[table])
	}
}
