package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrProfileNotFound         = errors.New("user profile not found")
	ErrSourceProfileNotFound   = errors.New("source profile not found")
	ErrInvalidProfileType      = errors.New("invalid profile type")
	ErrExtractionFailed        = errors.New("failed to extract text from PDF")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrArchiveFailed           = errors.New("archiving uploaded file failed")
)
