package database

import "errors"

// ErrNotReady is returned by Check until the startup ping succeeds and
// after shutdown begins.
var ErrNotReady = errors.New("database not ready")
