package ports

import "errors"

// ErrNotFound signals that a referenced entity does not exist. Adapters
// translate their driver-level miss (pgx.ErrNoRows, missing redis key) into
// this sentinel so callers never import driver packages.
var ErrNotFound = errors.New("not found")
