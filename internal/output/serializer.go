// Package output renders a capability catalog as JSON, a fixed-width
// table, or a bullet list.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// Format selects a catalog rendering.
type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatList  Format = "list"
)

// ParseFormat validates a format selector.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatTable, FormatList:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, table, or list)", s)
	}
}

// Write renders the catalog to w in the given format.
func Write(w io.Writer, catalog []capability.Entry, format Format) error {
	switch format {
	case FormatTable:
		return writeTable(w, catalog)
	case FormatList:
		return writeList(w, catalog)
	default:
		return writeJSON(w, catalog)
	}
}

func writeJSON(w io.Writer, catalog []capability.Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if catalog == nil {
		catalog = []capability.Entry{}
	}
	return enc.Encode(catalog)
}

const descriptionColumnWidth = 50

func writeTable(w io.Writer, catalog []capability.Entry) error {
	if len(catalog) == 0 {
		_, err := fmt.Fprintln(w, "No capabilities found.")
		return err
	}

	if _, err := fmt.Fprintf(w, "%-30s %-10s %-50s %-6s %-50s\n", "Name", "Type", "File", "Line", "Description"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 146)); err != nil {
		return err
	}

	for _, entry := range catalog {
		if _, err := fmt.Fprintf(w, "%-30s %-10s %-50s %-6d %-50s\n",
			entry.Name, entry.Kind, entry.File, entry.Line,
			truncateDescription(entry.Description)); err != nil {
			return err
		}
	}
	return nil
}

func writeList(w io.Writer, catalog []capability.Entry) error {
	if len(catalog) == 0 {
		_, err := fmt.Fprintln(w, "No capabilities found.")
		return err
	}

	for _, entry := range catalog {
		if _, err := fmt.Fprintf(w, "- %s: %s\n", entry.Name, entry.Description); err != nil {
			return err
		}
	}
	return nil
}

// truncateDescription caps a description at the table column width,
// appending an ellipsis when it was cut.
func truncateDescription(description string) string {
	if len(description) > descriptionColumnWidth {
		return description[:descriptionColumnWidth-3] + "..."
	}
	return description
}
