package guest

import "errors"

var (
	ErrGuestNotFound           = errors.New("guest not found")
	ErrCodeNotFound            = errors.New("invitation code not found")
	ErrDuplicateCode           = errors.New("invitation code already in use")
	ErrInvalidStatus           = errors.New("unknown guest status")
	ErrInvalidTransition       = errors.New("status transition not allowed")
	ErrNameMismatch            = errors.New("name does not match the invitation")
	ErrCodeGenerationExhausted = errors.New("could not generate a unique invitation code")
	ErrInvalidPagination       = errors.New("page must be >= 1 and limit must be > 0")
	ErrInvalidSortField        = errors.New("unsupported sort field")
	ErrInvalidSortOrder        = errors.New("sort order must be asc or desc")
	ErrUnknownExportFormat     = errors.New("unknown export format")
)
