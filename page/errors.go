package page

import "errors"

var (
	// ErrSizeRange indicates the page size is zero, negative, or above MaxSize.
	ErrSizeRange = errors.New("page: size must be between 1 and 25")

	// ErrNegativeStart indicates the start index is negative.
	ErrNegativeStart = errors.New("page: negative start index")
)
