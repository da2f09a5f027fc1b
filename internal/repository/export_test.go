package repository

// IsDuplicateEntryError exposes isDuplicateEntryError to external tests.
var IsDuplicateEntryError = isDuplicateEntryError

// SQLiteDSN exposes sqliteDSN to external tests.
var SQLiteDSN = sqliteDSN
