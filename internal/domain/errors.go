package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidProfileKind    = errors.New("invalid profile kind")
	ErrInvalidDocumentKind   = errors.New("invalid document kind")
	ErrLastMaterialProfile   = errors.New("cannot delete the last material profile")
	ErrProfileNameRequired   = errors.New("profile name is required")
	ErrInvalidBackupFormat   = errors.New("invalid backup file format")
	ErrInvalidMaterialImport = errors.New("invalid material import format")
	ErrEmptyMaterialImport   = errors.New("imported material list is empty")
	ErrConfirmationRequired  = errors.New("explicit confirmation required")
	ErrPDFEngine             = errors.New("pdf engine failed")
)
