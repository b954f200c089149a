package batch

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders the report for a terminal, followed by one row per failed
// file. colored selects an ANSI style.
func (r *Report) Table(colored bool) string {
	style := table.StyleRounded
	if colored {
		style = table.StyleColoredBright
	}

	status := "SUCCESS"
	if !r.OK() {
		status = "FAILURE"
	}
	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.AppendHeader(table.Row{"Run", "Files", "Converted", "Failed", "Read", "Written", "Elapsed", "Status"})
	tw.AppendRow(table.Row{
		r.RunID,
		strconv.Itoa(r.Files),
		strconv.Itoa(r.Converted),
		strconv.Itoa(len(r.Failed)),
		humanize.Bytes(uint64(r.BytesIn)),
		humanize.Bytes(uint64(r.BytesOut)),
		r.Elapsed.Round(time.Millisecond).String(),
		status,
	})
	cols := make([]table.ColumnConfig, 0, 6)
	for i := 2; i <= 7; i++ {
		cols = append(cols, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(cols)

	if len(r.Failed) == 0 {
		return tw.Render()
	}

	fw := table.NewWriter()
	fw.SetStyle(style)
	fw.AppendHeader(table.Row{"File", "Kind", "Error"})
	for _, f := range r.Failed {
		fw.AppendRow(table.Row{f.Path, f.Kind.String(), f.Err.Error()})
	}

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteString("\n")
	b.WriteString(fw.Render())
	return b.String()
}
