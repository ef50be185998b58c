package region

import "errors"

var (
	// ErrPageUnreadable means the page image could not be read. No partial
	// output is produced for that page.
	ErrPageUnreadable = errors.New("page image unreadable")

	// ErrDegenerateGeometry means a candidate has geometry that features
	// cannot be computed over (zero-area bounding box, empty hull). Only the
	// affected candidate is skipped.
	ErrDegenerateGeometry = errors.New("degenerate candidate geometry")

	// ErrSourceUnavailable means the source page became unreadable between
	// detection and materialization.
	ErrSourceUnavailable = errors.New("source page unavailable")
)
