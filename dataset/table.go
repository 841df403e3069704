package dataset

import "github.com/use-agent/fundscout/models"

// Table is the tabular form of a crawl. Columns are the union of the keys
// seen across all records, in order of first appearance. A cell is nil when
// its record lacks the column; otherwise it holds a string, or a []string
// for tags.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Build lays records out as rows in crawl order.
func Build(records []*models.CampaignRecord) *Table {
	t := &Table{Columns: []string{}, Rows: make([][]any, 0, len(records))}

	index := make(map[string]int)
	rows := make([][]models.Field, 0, len(records))
	for _, rec := range records {
		fields := rec.Fields()
		for _, f := range fields {
			if _, ok := index[f.Key]; !ok {
				index[f.Key] = len(t.Columns)
				t.Columns = append(t.Columns, f.Key)
			}
		}
		rows = append(rows, fields)
	}

	for _, fields := range rows {
		row := make([]any, len(t.Columns))
		for _, f := range fields {
			row[index[f.Key]] = f.Value
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the position of name, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Objects returns each row as a map holding only its present cells.
func (t *Table) Objects() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]any, len(row))
		for i, cell := range row {
			if cell != nil {
				obj[t.Columns[i]] = cell
			}
		}
		out = append(out, obj)
	}
	return out
}
