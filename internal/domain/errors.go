package domain

import "errors"

var (
	ErrInvalidYearMonth = errors.New("invalid year-month")
	ErrInvalidExport    = errors.New("invalid payments export")
)
