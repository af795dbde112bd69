//go:build !windows

package pcre

// #cgo pkg-config: libpcre
import "C"
