package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	tablePadding = 2
	// maxCellWidth keeps long titles and payloads from stretching a column.
	maxCellWidth = 48
)

// writeTable renders rows as aligned columns. Cells are flattened to one
// line and truncated, since titles and bodies may hold tabs and newlines.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = tableCell(cell)
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}
	return writer.Flush()
}

func tableCell(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if len(runes) > maxCellWidth {
		return string(runes[:maxCellWidth-1]) + "…"
	}
	return value
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
