package models

// PageWindow bounds a query result set. From is an element offset, Size the
// page size; the effective offset snaps to a page boundary so repeated
// requests with the same parameters always see the same page.
type PageWindow struct {
	From int
	Size int
}

// NewPageWindow validates raw offset/limit values. Returns false for a
// negative offset or a non-positive size.
func NewPageWindow(from, size int) (PageWindow, bool) {
	if from < 0 || size < 1 {
		return PageWindow{}, false
	}
	return PageWindow{From: from, Size: size}, true
}

// Offset returns the row offset of the page containing From.
func (p PageWindow) Offset() int {
	return (p.From / p.Size) * p.Size
}

// Limit returns the page size.
func (p PageWindow) Limit() int {
	return p.Size
}
