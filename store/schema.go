package store

const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL DEFAULT '',
	meeting_date  TEXT NOT NULL DEFAULT '',
	document_type TEXT NOT NULL DEFAULT 'none',
	file_path     TEXT,
	document_url  TEXT,
	pasted_text   TEXT,
	minutes_md    TEXT,
	ai_summary    TEXT,
	created_at    TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_meetings_missing_summary
	ON meetings (id) WHERE ai_summary IS NULL;
`
