// Package errors provides sentinel errors for content discovery.
package errors

import "errors"

var (
	// ErrContentDirNotFound indicates the configured content directory does not exist.
	ErrContentDirNotFound = errors.New("content directory not found")

	// ErrWalkFailed indicates traversal of the content directory failed.
	ErrWalkFailed = errors.New("content directory walk failed")

	// ErrFileReadFailed indicates reading a discovered page failed.
	ErrFileReadFailed = errors.New("page read failed")

	// ErrFrontMatter indicates a page has malformed front matter.
	ErrFrontMatter = errors.New("invalid front matter")
)
