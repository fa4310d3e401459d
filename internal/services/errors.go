package services

import "errors"

var (
	errDatabaseNotConfigured = errors.New("database is not configured")
	errStorageNotConfigured  = errors.New("storage is not configured")
)
