//go:build windows && pcre_pkg_config

package pcre

// #cgo pkg-config: libpcre
import "C"
