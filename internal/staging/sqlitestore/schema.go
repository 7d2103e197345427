package sqlitestore

// schema defines the staging tables. Amounts are stored as decimal strings
// and dates as ISO-8601 text so no precision is lost in transit.
const schema = `
CREATE TABLE IF NOT EXISTS staged_transactions (
    id            TEXT PRIMARY KEY,
    user_id       TEXT NOT NULL,
    kind          TEXT NOT NULL,
    amount        TEXT NOT NULL,
    description   TEXT NOT NULL,
    date          TEXT NOT NULL,
    category_hint TEXT NOT NULL DEFAULT '',
    source        TEXT NOT NULL DEFAULT '',
    imported      INTEGER NOT NULL DEFAULT 1,
    committed     INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Supports "all uncommitted, imported rows for user X"
CREATE INDEX IF NOT EXISTS idx_staged_user_pending
    ON staged_transactions(user_id, committed, imported);

CREATE TABLE IF NOT EXISTS ledger_entries (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id       TEXT NOT NULL,
    kind          TEXT NOT NULL,
    category_id   TEXT NOT NULL DEFAULT '',
    amount        TEXT NOT NULL,
    description   TEXT NOT NULL,
    date          TEXT NOT NULL,
    source_id     TEXT NOT NULL,
    recorded_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_ledger_user
    ON ledger_entries(user_id, kind);
`
