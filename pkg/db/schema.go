package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- Translations: durable cache tier, keyed by normalized word
CREATE TABLE IF NOT EXISTS translations (
    word TEXT PRIMARY KEY,
    translation TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Pages: processed pages of the current document session
CREATE TABLE IF NOT EXISTS pages (
    page_num INTEGER PRIMARY KEY,
    image TEXT NOT NULL,
    width INTEGER NOT NULL DEFAULT 0,
    height INTEGER NOT NULL DEFAULT 0,
    words TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
