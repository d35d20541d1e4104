// Package output owns the CLI's table rendering so asset, audit and history
// listings all share one look.
package output

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable prints rows as an aligned table on stdout.
func RenderTable(headers []string, rows [][]interface{}) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.SetStyle(table.StyleLight)

	hdr := make(table.Row, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	w.AppendHeader(hdr)

	for _, row := range rows {
		w.AppendRow(table.Row(row))
	}
	w.Render()
}
