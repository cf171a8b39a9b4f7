package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations for the fired ledger.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fired (
	item_id    TEXT NOT NULL,
	day_offset INTEGER NOT NULL,
	fired_on   TEXT NOT NULL,
	fired_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (item_id, day_offset, fired_on)
);

CREATE INDEX IF NOT EXISTS idx_fired_fired_on ON fired(fired_on);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
