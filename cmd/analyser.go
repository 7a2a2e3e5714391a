package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Analysis holds one command's tabular output: a header row followed by data
// rows, plus a one-line summary.
type Analysis struct {
	results [][]string
	summary string
}

func (a Analysis) String() string {
	if len(a.results) == 0 {
		return a.summary
	}
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

// HTML renders the analysis as an HTML table for email delivery.
func (a Analysis) HTML() string {
	if len(a.results) == 0 {
		return fmt.Sprintf("<div>%s</div>\n", a.summary)
	}
	out := "<table>\n<thead>\n<tr>\n"
	for _, header := range a.results[0] {
		out += fmt.Sprintf("<th>%s</th>", header)
	}
	out += "\n</tr>\n</thead>\n<tbody>\n"
	for _, row := range a.results[1:] {
		out += "<tr>\n"
		for _, column := range row {
			out += fmt.Sprintf("<td>%s</td>\n", column)
		}
		out += "</tr>\n"
	}
	out += "</tbody>\n</table>\n"
	out += fmt.Sprintf("<div>%s</div>\n", a.summary)
	return out
}
