package formats

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	stepStyle   = lipgloss.NewStyle().Bold(true)
)

// Table renders bordered tables for terminals. Styles degrade to plain text
// when the output is not a terminal.
var Table = &Format{
	Name: "table",
	Rows: func(w io.Writer, rows []Row) error {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(rowHeaders...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, r := range rows {
			t.Row(rowCells(r)...)
		}

		_, err := fmt.Fprintln(w, t.Render())
		return err
	},
	Steps: func(w io.Writer, steps []Step) error {
		for _, s := range steps {
			title := stepStyle.Render(fmt.Sprintf("step %d: %s", s.Step, describeState(s.State)))
			if _, err := fmt.Fprintln(w, title); err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("EVENT", "IDS").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})
			for _, e := range s.Events {
				t.Row(e.String(), eventIDs(e))
			}
			if _, err := fmt.Fprintf(w, "%s\n%d rows\n", t.Render(), s.Rows); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	mustRegister(Table)
}
