package editor

import (
	"errors"

	"git.lost.host/meutraa/hopedit/internal/game"
	"golang.org/x/exp/slices"
)

var ErrNoBookmark = errors.New("no such bookmark")

func (c *Context) AddBookmark(label string, startMs, endMs int64) error {
	b := game.NewBookmark(label, startMs, endMs)
	return c.push("ADD BOOKMARK", Edit{Kind: BookmarkEdit, After: game.Chart{Bookmarks: []game.Bookmark{b}}})
}

func (c *Context) RemoveBookmark(b game.Bookmark) error {
	if game.IndexOfBookmark(c.Chart.Bookmarks, b) < 0 {
		return ErrNoBookmark
	}
	return c.push("DELETE BOOKMARK", Edit{Kind: BookmarkEdit, Before: game.Chart{Bookmarks: []game.Bookmark{b}}})
}

func (c *Context) RenameBookmark(b game.Bookmark, label string) error {
	if game.IndexOfBookmark(c.Chart.Bookmarks, b) < 0 {
		return ErrNoBookmark
	}
	renamed := b
	renamed.Label = label
	return c.push("EDIT BOOKMARK", Edit{
		Kind:   BookmarkEdit,
		Before: game.Chart{Bookmarks: []game.Bookmark{b}},
		After:  game.Chart{Bookmarks: []game.Bookmark{renamed}},
	})
}

// ReplaceBookmarks swaps every bookmark for the given list.
func (c *Context) ReplaceBookmarks(bookmarks []game.Bookmark) error {
	return c.push("PASTE BOOKMARKS", Edit{
		Kind:   BookmarkEdit,
		Before: game.Chart{Bookmarks: slices.Clone(c.Chart.Bookmarks)},
		After:  game.Chart{Bookmarks: slices.Clone(bookmarks)},
	})
}
