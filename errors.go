package commonmark

import "errors"

// Sentinel errors for library operations.
//
// CommonMark defines no syntactic errors: every byte sequence is a valid
// document, so Parse never fails on content. The sentinels below cover API
// misuse only.
var (
	ErrNilNode     = errors.New("cannot render nil node")
	ErrNotDocument = errors.New("render requires a document root")
)
