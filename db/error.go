package db

import "errors"

var (
	ErrNotFound         = errors.New("db: record does not exist")
	ErrDuplicateID      = errors.New("db: record already exists")
	ErrTableFull        = errors.New("db: table is full")
	ErrInvalidSortField = errors.New("db: invalid sort field")
	ErrInvalidText      = errors.New("db: text field is empty or contains a tab or newline")
)
