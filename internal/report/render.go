// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Render writes a result as an ASCII table. DDL results print their
// message instead of a table; an empty result prints a placeholder so
// the report is visibly empty rather than silent.
func Render(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "%s\n", res.Title); err != nil {
		return err
	}

	if res.Message != "" {
		_, err := fmt.Fprintf(w, "%s\n", res.Message)
		return err
	}

	if len(res.Cells) == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(res.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range res.Cells {
		table.Append(row)
	}
	table.Render()

	return nil
}
