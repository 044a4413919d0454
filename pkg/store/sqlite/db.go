package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS treasury_snapshots (
		taken_at TIMESTAMP NOT NULL PRIMARY KEY,
		balance_cfa TEXT NOT NULL,
		balance_mad TEXT NOT NULL,
		global_cfa TEXT NOT NULL,
		global_mad TEXT NOT NULL
	);
`

var bootQueries = []string{
	snapshotSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return db, nil
}
