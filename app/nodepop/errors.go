package nodepop

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrTestError     = errors.New("test error to check the 500 page")
)
