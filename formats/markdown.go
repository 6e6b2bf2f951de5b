package formats

import (
	"fmt"
	"io"
	"strings"
)

// markdownEscaper keeps cell content from breaking the table layout
var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// Markdown renders GitHub flavored pipe tables
var Markdown = &Format{
	Name: "markdown",
	Rows: func(w io.Writer, rows []Row) error {
		var b strings.Builder
		writeMarkdownRow(&b, rowHeaders)
		writeMarkdownRule(&b, len(rowHeaders))
		for _, r := range rows {
			writeMarkdownRow(&b, rowCells(r))
		}
		_, err := io.WriteString(w, b.String())
		return err
	},
	Steps: func(w io.Writer, steps []Step) error {
		var b strings.Builder
		for i, s := range steps {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "## Step %d\n\n`%s` (%d rows)\n\n", s.Step, describeState(s.State), s.Rows)
			writeMarkdownRow(&b, []string{"EVENT", "IDS"})
			writeMarkdownRule(&b, 2)
			for _, e := range s.Events {
				writeMarkdownRow(&b, []string{e.String(), eventIDs(e)})
			}
		}
		_, err := io.WriteString(w, b.String())
		return err
	},
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(markdownEscaper.Replace(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func writeMarkdownRule(b *strings.Builder, n int) {
	b.WriteString("|")
	for i := 0; i < n; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
}

func init() {
	mustRegister(Markdown)
}
