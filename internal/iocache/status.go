package iocache

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/psicosocial/schema"
)

// PrintStoreStatus prints survey store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Responses: %d\n", status.TotalResponses)
	if status.TotalResponses > 0 {
		_, _ = fmt.Fprintf(w, "Last Response: %s\n", status.LastResponseTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Response: %s\n", status.OldestResponseTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
