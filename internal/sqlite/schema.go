package sqlite

// importsTable records every JSONL import so that a database built up over
// several runs can say where each of its tables came from.
const importsTable = "biasmetrics_imports"

const createImports = `CREATE TABLE IF NOT EXISTS biasmetrics_imports (
    import_id TEXT PRIMARY KEY,
    table_name TEXT NOT NULL,
    source TEXT NOT NULL,
    rows INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

const createImportsIndex = `CREATE INDEX IF NOT EXISTS idx_biasmetrics_imports_table
    ON biasmetrics_imports(table_name);`

var schemaStatements = []string{createImports, createImportsIndex}
