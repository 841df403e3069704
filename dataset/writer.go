package dataset

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// Writer persists a table to a file.
type Writer interface {
	// Ext is the file extension, without the dot.
	Ext() string

	// Write replaces path with the serialised table.
	Write(path string, t *Table) error
}

// NewWriter returns the writer for format: "csv", "json" or "sqlite".
func NewWriter(format string) (Writer, error) {
	switch format {
	case "", "csv":
		return CSVWriter{}, nil
	case "json":
		return JSONWriter{}, nil
	case "sqlite":
		return SQLiteWriter{}, nil
	default:
		return nil, fmt.Errorf("dataset: unknown format %q", format)
	}
}

// Save writes t to dir/name with w and returns the path written.
func Save(w Writer, dir, name string, t *Table) (string, error) {
	path := filepath.Join(dir, name)
	if err := w.Write(path, t); err != nil {
		return "", fmt.Errorf("dataset: write %s: %w", path, err)
	}
	return path, nil
}

// cellString flattens a cell for text-only formats. Tags are stored as a
// JSON array so the list survives a round trip.
func cellString(cell any) (string, bool) {
	switch v := cell.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []string:
		b, _ := json.Marshal(v)
		return string(b), true
	default:
		return fmt.Sprint(v), true
	}
}
