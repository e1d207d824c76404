package apperrors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNoDataset        = errors.New("no dataset loaded")
	ErrStoreUnavailable = errors.New("tabular store unavailable")
	ErrNotConfigured    = errors.New("collaborator not configured")
	ErrEmptyUpload      = errors.New("upload contains no rows")
)
