package game

import "golang.org/x/exp/slices"

type Bookmark struct {
	Label   string
	StartMs int64
	EndMs   int64
}

// NewBookmark orders start and end so that StartMs <= EndMs.
func NewBookmark(label string, startMs, endMs int64) Bookmark {
	if endMs < startMs {
		startMs, endMs = endMs, startMs
	}
	return Bookmark{Label: label, StartMs: startMs, EndMs: endMs}
}

func (b Bookmark) Ranged() bool {
	return b.StartMs != b.EndMs
}

func SortBookmarks(bookmarks []Bookmark) {
	slices.SortStableFunc(bookmarks, func(a, b Bookmark) int {
		switch {
		case a.StartMs < b.StartMs:
			return -1
		case a.StartMs > b.StartMs:
			return 1
		}
		return 0
	})
}

func IndexOfBookmark(bookmarks []Bookmark, b Bookmark) int {
	return slices.Index(bookmarks, b)
}
