// Package page computes bounded page windows over in-memory sequences.
//
// The ledger keeps its collections as plain slices; callers page through
// them with a start index and a page size. Bounds does the arithmetic
// once so every list operation shares the same cursor semantics.
package page

import "fmt"

// MaxSize is the largest number of items a single page may return.
const MaxSize = 25

// Bounds computes the window for one page over a sequence of total items.
//
// It returns the offset of the first item, the number of items in the
// page, and the start index of the next page. A next index of 0 means
// there are no further pages; because a non-final page always ends
// strictly before total, 0 is never produced while items remain, so the
// sentinel cannot collide with a computed cursor. Callers should still
// rely on total and count rather than the sentinel alone.
//
// A start at or past the end yields an empty page with the true total,
// so callers can distinguish "no data" from "ran off the end".
func Bounds(total, start, size int) (offset, count, next int, err error) {
	if size <= 0 || size > MaxSize {
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrSizeRange, size)
	}
	if start < 0 {
		return 0, 0, 0, fmt.Errorf("%w: start %d", ErrNegativeStart, start)
	}
	if total == 0 || start >= total {
		return 0, 0, 0, nil
	}

	count = total - start
	if count > size {
		count = size
	}
	next = start + count
	if next >= total {
		next = 0
	}
	return start, count, next, nil
}
