package dataset

import (
	"encoding/json"
	"os"
)

// JSONWriter writes an array with one object per record; absent columns
// are left out of the object.
type JSONWriter struct{}

func (JSONWriter) Ext() string { return "json" }

func (JSONWriter) Write(path string, t *Table) error {
	b, err := json.MarshalIndent(t.Objects(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
