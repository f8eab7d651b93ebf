package database

import "errors"

// ErrNotConfigured indicates storage credentials were not supplied and no
// connection pool exists.
var ErrNotConfigured = errors.New("database not configured")
