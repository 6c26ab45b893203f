package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const tablePadding = 2

// FormatTable lays rows out in columns under a styled header. Column widths
// follow the widest display width in each column; the last column is not
// padded.
func (s *Styles) FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for col, header := range headers {
		widths[col] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for col := range min(len(row), len(widths)) {
			widths[col] = max(widths[col], runewidth.StringWidth(row[col]))
		}
	}

	total := 0
	for _, width := range widths {
		total += width + tablePadding
	}
	total = max(total-tablePadding, 0)

	var builder strings.Builder
	builder.WriteString(s.TableHeader.Render(formatRow(headers, widths)) + "\n")
	builder.WriteString(s.TableBorder.Render(strings.Repeat("-", total)) + "\n")
	for _, row := range rows {
		builder.WriteString(formatRow(row, widths) + "\n")
	}
	return builder.String()
}

func formatRow(cells []string, widths []int) string {
	var builder strings.Builder
	for col, cell := range cells {
		if col == len(cells)-1 || col >= len(widths) {
			builder.WriteString(cell)
			break
		}
		builder.WriteString(runewidth.FillRight(cell, widths[col]+tablePadding))
	}
	return builder.String()
}
