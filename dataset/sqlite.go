package dataset

import (
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteWriter stores the table as "campaigns" in a fresh SQLite database,
// one TEXT column per table column. Absent cells are NULL.
type SQLiteWriter struct{}

func (SQLiteWriter) Ext() string { return "db" }

func (SQLiteWriter) Write(path string, t *Table) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if len(t.Columns) == 0 {
		_, err = db.Exec(`CREATE TABLE campaigns ("url" TEXT)`)
		return err
	}

	quoted := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}

	if _, err := db.Exec(`CREATE TABLE campaigns (` + strings.Join(quoted, " TEXT, ") + ` TEXT)`); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	stmt, err := tx.Prepare(`INSERT INTO campaigns (` + strings.Join(quoted, ", ") + `) VALUES (` + placeholders + `)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]any, len(row))
		for i, cell := range row {
			if s, ok := cellString(cell); ok {
				args[i] = s
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}
