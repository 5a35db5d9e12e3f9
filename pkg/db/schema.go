package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- URLs table: normalized URL components of every page requested
CREATE TABLE IF NOT EXISTS urls (
    url_id INTEGER PRIMARY KEY AUTOINCREMENT,
    original_url TEXT NOT NULL UNIQUE,
    canonical_url TEXT,
    scheme TEXT NOT NULL,
    domain TEXT NOT NULL,
    path TEXT,
    fragment TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_urls_domain ON urls(domain);
CREATE INDEX IF NOT EXISTS idx_urls_canonical ON urls(canonical_url);

-- URL query parameters: PageSize, SortBy, WholeDoc, ProvIds...
CREATE TABLE IF NOT EXISTS url_query_params (
    param_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    value TEXT,
    FOREIGN KEY (url_id) REFERENCES urls(url_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_params_url ON url_query_params(url_id);
CREATE INDEX IF NOT EXISTS idx_params_key ON url_query_params(key);

-- Runs: one row per scrape invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    listing_url TEXT NOT NULL,
    pages_fetched INTEGER DEFAULT 0,
    stop_reason TEXT,
    statute_count INTEGER DEFAULT 0,
    provision_count INTEGER DEFAULT 0,
    failed_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

-- URL accesses: every request made during a run
CREATE TABLE IF NOT EXISTS url_accesses (
    access_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url_id INTEGER NOT NULL,
    run_id INTEGER,
    accessed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    status_code INTEGER,
    error_type TEXT,
    success BOOLEAN NOT NULL,
    FOREIGN KEY (url_id) REFERENCES urls(url_id) ON DELETE CASCADE,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_accesses_url ON url_accesses(url_id);
CREATE INDEX IF NOT EXISTS idx_accesses_run ON url_accesses(run_id);
CREATE INDEX IF NOT EXISTS idx_accesses_success ON url_accesses(success);

-- Statutes: listing entries in first-seen order
CREATE TABLE IF NOT EXISTS statutes (
    statute_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    acronym TEXT NOT NULL,
    detail_url TEXT,
    status_code INTEGER,
    toc_found BOOLEAN DEFAULT 0,
    fetched BOOLEAN DEFAULT 0,
    error_message TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, name)
);

CREATE INDEX IF NOT EXISTS idx_statutes_run ON statutes(run_id);
CREATE INDEX IF NOT EXISTS idx_statutes_acronym ON statutes(acronym);

-- Provisions: TOC entries of a fetched statute, in page order
CREATE TABLE IF NOT EXISTS provisions (
    provision_id INTEGER PRIMARY KEY AUTOINCREMENT,
    statute_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    prov_id TEXT NOT NULL,
    number TEXT NOT NULL,
    title TEXT NOT NULL,
    url TEXT NOT NULL,
    content TEXT,
    has_content BOOLEAN DEFAULT 0,
    FOREIGN KEY (statute_id) REFERENCES statutes(statute_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_provisions_statute ON provisions(statute_id);
CREATE INDEX IF NOT EXISTS idx_provisions_number ON provisions(number);
`
