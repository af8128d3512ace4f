package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVFormatter writes the document's primary table (the schedule or yearly
// projection) with a header row.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(doc *Document) ([]byte, error) {
	if len(doc.Tables) == 0 {
		return nil, fmt.Errorf("%s has no tabular data", doc.Title)
	}
	table := doc.Tables[0]

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(table.Header); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
