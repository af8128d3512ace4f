package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

var noteMarks = map[string]string{
	"success":  "[+]",
	"positive": "[+]",
	"warning":  "[!]",
	"info":     "[i]",
}

// ConsoleFormatter renders a document as aligned plain text tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	heading := strings.ToUpper(doc.Title)
	fmt.Fprintln(&buf, heading)
	fmt.Fprintln(&buf, strings.Repeat("=", len(heading)))

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, f := range doc.Summary {
		fmt.Fprintf(w, "%s:\t%s\n", f.Label, f.Value)
	}
	w.Flush()

	if len(doc.Notes) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "INSIGHTS")
		for _, n := range doc.Notes {
			mark, ok := noteMarks[n.Kind]
			if !ok {
				mark = "[-]"
			}
			fmt.Fprintf(&buf, "%s %s: %s\n", mark, n.Title, n.Text)
		}
	}

	if len(doc.Recommendations) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "RECOMMENDATIONS")
		for _, r := range doc.Recommendations {
			fmt.Fprintf(&buf, "  - %s\n", r)
		}
	}

	for _, t := range doc.Tables {
		if len(t.Rows) == 0 {
			continue
		}
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, strings.ToUpper(t.Title))
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, strings.Join(t.Header, "\t")+"\t")
		for _, row := range t.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
		}
		tw.Flush()
	}
	return buf.Bytes(), nil
}
