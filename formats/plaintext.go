package formats

import (
	"fmt"
	"io"
	"strings"
)

// PlainText renders one line per row, grouped under section headings, and
// one line per event
var PlainText = &Format{
	Name: "plaintext",
	Rows: func(w io.Writer, rows []Row) error {
		var b strings.Builder
		section := ""
		for i, r := range rows {
			if i == 0 || r.Section != section {
				section = r.Section
				fmt.Fprintf(&b, "[%s]\n", section)
			}
			fmt.Fprintf(&b, "%4d  %s%s\n", r.Row, r.Label, favoriteSuffix(r.Favorite))
		}
		_, err := io.WriteString(w, b.String())
		return err
	},
	Steps: func(w io.Writer, steps []Step) error {
		var b strings.Builder
		for _, s := range steps {
			fmt.Fprintf(&b, "step %d: %s\n", s.Step, describeState(s.State))
			for _, e := range s.Events {
				if ids := eventIDs(e); ids != "" {
					fmt.Fprintf(&b, "  %s ids %s\n", e, ids)
					continue
				}
				fmt.Fprintf(&b, "  %s\n", e)
			}
			fmt.Fprintf(&b, "  => %d rows\n", s.Rows)
		}
		_, err := io.WriteString(w, b.String())
		return err
	},
}

func favoriteSuffix(favorite bool) string {
	if favorite {
		return " " + favoriteMark(favorite)
	}
	return ""
}

func init() {
	mustRegister(PlainText)
}
