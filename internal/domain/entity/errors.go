package entity

import "errors"

var (
	ErrUnsupportedFile      = errors.New("only .xlsx and .csv files are supported")
	ErrEmptySpreadsheet     = errors.New("spreadsheet is empty")
	ErrNoValidRows          = errors.New("no valid rows to import")
	ErrBatchNotReady        = errors.New("import batch is not ready")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrTransitionInProgress = errors.New("status transition already in progress")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
)
