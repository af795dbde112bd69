package ioerr

import "context"

// Whence mirrors the three reference points a Seek call can use (§6).
type Whence int

const (
	Current Whence = iota
	Set
	End
)

// SeekableStream is the interface spec.md describes "for completeness":
// consumed by adjacent code, not by the regex or coalescer core (§6).
type SeekableStream interface {
	Tell() (int64, error)
	CanSeek() bool
	Seek(ctx context.Context, offset int64, whence Whence) (int64, error)
	CanTruncate() bool
	Truncate(ctx context.Context, offset int64) error
}
